package judge

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/robalobadob/silhouette-quiz/internal/quiz"
)

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("judge: %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("judge: %d %s", e.Code, e.Message)
}

// Unwrap maps 404 to quiz.ErrSessionNotFound so callers can use errors.Is.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return quiz.ErrSessionNotFound
	}
	return nil
}

// errorBody matches the service's {"error": "..."} payloads.
type errorBody struct {
	Error string `json:"error"`
}

// statusError reads at most 4 KiB of body and builds a StatusError from it.
func statusError(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
	var body errorBody
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return &StatusError{Code: res.StatusCode, Message: msg}
}
