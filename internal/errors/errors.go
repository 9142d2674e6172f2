// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a repository is neither cached nor available upstream.
var ErrNotFound = errors.New("repository not found")

// ErrInvalidRepoFormat is returned when a lookup token is neither numeric nor in 'owner/repo' format.
type ErrInvalidRepoFormat struct {
	Repo string
}

func (e *ErrInvalidRepoFormat) Error() string {
	return fmt.Sprintf("invalid repository format: %q, expected 'owner/repo'", e.Repo)
}

// UpstreamError wraps a failed GitHub API call. StatusCode is 0 when no response was received.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("github %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("github %s: status %d: %v", e.Op, e.StatusCode, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
