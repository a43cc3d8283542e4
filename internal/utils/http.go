package utils

import "fmt"

// StatusError is returned by remote clients for unexpected HTTP statuses.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	// Body holds a truncated preview of the response, if any.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status from %s: %s", e.URL, e.Status)
	}
	return fmt.Sprintf("bad status from %s: %s: %s", e.URL, e.Status, e.Body)
}
