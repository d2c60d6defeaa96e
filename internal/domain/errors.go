package domain

import "fmt"

// FetchError is a transient failure of a single page request: either a
// non-200 response or a transport-level error. The retrier inspects it and
// the API layer reports it once retries are exhausted.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
