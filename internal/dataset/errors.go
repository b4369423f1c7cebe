package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is returned when a required logical column is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedValue is returned when a field cannot be parsed.
	ErrMalformedValue = errors.New("malformed value")
	// ErrUnsupportedFormat is returned for file extensions no loader handles.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// LoadError reports why a dataset could not be loaded. It is fatal at startup.
type LoadError struct {
	Path string
	Op   string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("load dataset: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("load dataset %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func loadErr(path, op string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		if le.Path == "" {
			le.Path = path
		}
		return le
	}
	return &LoadError{Path: path, Op: op, Err: err}
}
