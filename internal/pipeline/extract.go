package pipeline

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
)

const fieldSeparator = ';'

type rawTable struct {
	Headers []string
	Records [][]string
}

// decodeLatin1 converts the export's ISO-8859-1 bytes to UTF-8. Every byte
// is a valid Latin-1 code point, so only the reader can fail.
func decodeLatin1(r io.Reader) ([]byte, error) {
	blob, err := io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(r))
	if err != nil {
		return nil, fmt.Errorf("decode latin-1: %w", err)
	}
	return blob, nil
}

// extractRaw skips the export's title lines and reads the header plus all
// data records. Short records are kept; missing fields read as blank.
func extractRaw(r io.Reader, skipRows int) (rawTable, error) {
	blob, err := decodeLatin1(r)
	if err != nil {
		return rawTable{}, err
	}

	br := bufio.NewReader(bytes.NewReader(blob))
	for i := 0; i < skipRows; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return rawTable{}, fmt.Errorf("file has fewer than %d metadata lines", skipRows)
			}
			return rawTable{}, err
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = fieldSeparator
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return rawTable{}, fmt.Errorf("missing header row after %d metadata lines", skipRows)
		}
		return rawTable{}, fmt.Errorf("read header: %w", err)
	}

	out := rawTable{Headers: headers}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rawTable{}, fmt.Errorf("read record %d: %w", len(out.Records)+1, err)
		}
		out.Records = append(out.Records, record)
	}
	return out, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
