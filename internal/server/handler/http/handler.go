package http

import (
	"encoding/json"
	"net/http"

	"github.com/atinyakov/mesto/internal/apperror"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// HandlerFunc is an HTTP handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Validator checks a decoded request against its `validate` tags.
type Validator interface {
	Struct(s any) error
}

// Adapt turns h into an http.HandlerFunc whose errors go through errs.
func Adapt(errs *apperror.Responder, h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			errs.Respond(w, r, err)
		}
	}
}

// decodeJSON reads the body into dst, rejecting unknown fields and trailing
// data, then validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v Validator, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperror.InvalidInput(apperror.MsgInvalidJSON).Wrap(err)
	}
	if dec.More() {
		return apperror.InvalidInput(apperror.MsgInvalidJSON)
	}
	return v.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	apperror.WriteJSON(w, status, body)
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}
