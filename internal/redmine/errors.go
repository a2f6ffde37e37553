package redmine

import (
	"errors"
	"fmt"
)

// RemoteError is a non-2xx response from the Redmine API. The status code
// and response body are preserved so callers can render a useful message.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("redmine: API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("redmine: API returned status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the remote API.
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == 404
}
