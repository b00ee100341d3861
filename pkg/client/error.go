package client

import (
	"encoding/json"
	"fmt"
	"io"
)

// An Error reprensents an HTTP error returned by the server.
type Error struct {
	StatusCode int
	Err        struct {
		Tag     string `json:"tag"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

func parseError(r io.Reader, code int) error {
	var apierr Error
	dec := json.NewDecoder(r)
	if err := dec.Decode(&apierr); err != nil {
		apierr.Err.Message = fmt.Sprintf("unexpected status code %d", code)
	}
	apierr.StatusCode = code
	return &apierr
}

func (e *Error) Error() string {
	return e.Err.Message
}
