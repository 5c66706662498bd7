package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ErrNotFound is returned when a query or patch matches no document.
var ErrNotFound = errors.New("store: document not found")

// APIError carries the upstream status and body for server-side logging.
// Handlers must not forward Body to callers.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store: %s failed: status=%d body=%s", e.Op, e.Status, e.Body)
}

func newAPIError(op string, resp *resty.Response) *APIError {
	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > 2048 {
		body = body[:2048]
	}
	return &APIError{Op: op, Status: resp.StatusCode(), Body: body}
}
