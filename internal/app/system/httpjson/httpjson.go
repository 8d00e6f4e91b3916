// Package httpjson holds the JSON request/response conventions shared by
// every feature handler: a single error envelope, response writing, and
// bounded request decoding.
//
// Error bodies are always {"message": "..."} with the HTTP status
// conveying the kind: 400 invalid input or malformed id, 401 missing
// credential, 403 invalid credential or insufficient role, 404 not
// found, 409 conflict, 500 unexpected failure. Internal detail is
// logged server-side, never returned to the client.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes caps JSON request bodies. Camp and registration payloads
// are small; anything above this is a client error.
const maxBodyBytes = 1 << 20

// errorBody is the wire shape of every error response.
type errorBody struct {
	Message string `json:"message"`
}

// Write renders v as JSON with the given status. Encoding failures are
// ignored; by the time Encode fails the status line is already gone.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error renders the standard error envelope.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, errorBody{Message: message})
}

// Decode reads a JSON body into dst, enforcing the body size cap and
// rejecting unknown garbage after the document.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// A second document after the first means the body is malformed.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
