package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/equilibra/eqboard/internal/domain"
)

// Error is the single failure kind returned by the client. It covers
// transport failures, non-2xx responses and undecodable bodies.
// Fields are ordered to minimize memory padding.
type Error struct {
	Err        error // Transport or decode cause; nil for HTTP rejections
	Method     string
	URL        string
	Message    string // Human-readable reason
	StatusCode int    // 0 when no response was received
}

// Error returns the human-readable reason.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Method, e.URL)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes every gateway error match domain.ErrRemote.
func (e *Error) Is(target error) bool {
	return target == domain.ErrRemote
}

// Transport reports whether the request never produced a response.
func (e *Error) Transport() bool {
	return e.StatusCode == 0
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// errorBody is the shape of structured error responses. detail is either a
// string or a list of validation issues.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

// newStatusError builds an Error from a non-2xx response.
func newStatusError(method, url string, resp *http.Response, body []byte) *Error {
	msg := errorMessage(body)
	if msg == "" {
		msg = statusLine(resp)
	}
	return &Error{
		Method:     method,
		URL:        url,
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}

// errorMessage extracts the reason from a structured error body, or "".
func errorMessage(body []byte) string {
	var eb errorBody
	if len(body) == 0 || json.Unmarshal(body, &eb) != nil {
		return ""
	}
	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && s != "" {
			return s
		}
		var issues []validationIssue
		if err := json.Unmarshal(eb.Detail, &issues); err == nil {
			msgs := make([]string, 0, len(issues))
			for _, is := range issues {
				if is.Msg != "" {
					msgs = append(msgs, is.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	return eb.Message
}

// statusLine returns "<status> <statusText>", e.g. "404 Not Found".
func statusLine(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
