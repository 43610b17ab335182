package apiclient

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const DefaultErrorMessage = "API request failed"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// maxErrorBody bounds how much of a failed response is read for a message.
const maxErrorBody = 64 << 10

// APIError is a non-2xx response. Message is the backend's "detail" or
// "message" field when present, otherwise DefaultErrorMessage.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: DefaultErrorMessage}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}

	switch {
	case body.Detail != "":
		apiErr.Message = body.Detail
	case body.Message != "":
		apiErr.Message = body.Message
	}
	return apiErr
}
