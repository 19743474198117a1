package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/bnema/subs-cli/internal/domain"
)

// Error is a non-2xx answer from the backend. Message is the server's own
// message when it sent one, otherwise the HTTP status text.
type Error struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
	RequestID  string
}

func (e *Error) Error() string {
	message := e.Message
	if details := e.fieldDetails(); details != "" {
		message += " (" + details + ")"
	}
	return fmt.Sprintf("api: %s (status %d)", message, e.StatusCode)
}

// Is lets callers match a rejected token with domain.ErrNotAuthenticated.
func (e *Error) Is(target error) bool {
	return target == domain.ErrNotAuthenticated && e.StatusCode == http.StatusUnauthorized
}

func (e *Error) fieldDetails() string {
	if len(e.Fields) == 0 {
		return ""
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
	}
	return strings.Join(parts, "; ")
}

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func decodeError(resp *http.Response, requestID string) error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		RequestID:  requestID,
	}

	var payload errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err == nil {
		if strings.TrimSpace(payload.Message) != "" {
			apiErr.Message = payload.Message
		}
		apiErr.Fields = payload.Errors
	}

	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("status %d", resp.StatusCode)
	}
	return apiErr
}

// notFoundAs maps a 404 from the backend onto a domain sentinel.
func notFoundAs(err error, sentinel error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
