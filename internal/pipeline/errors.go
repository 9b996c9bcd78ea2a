package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"fiscal/internal"
)

// ErrNoData means the file parsed but no row survived filtering.
var ErrNoData = errors.New("no liquidation rows after filtering")

type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

type ColumnNotFoundError struct {
	Role    internal.Role
	Missing []internal.Role
}

func (e *ColumnNotFoundError) Error() string {
	if len(e.Missing) <= 1 {
		return fmt.Sprintf("required column not found: %s", e.Role)
	}
	names := make([]string, 0, len(e.Missing))
	for _, r := range e.Missing {
		names = append(names, string(r))
	}
	return fmt.Sprintf("required column not found: %s (missing: %s)", e.Role, strings.Join(names, ", "))
}
