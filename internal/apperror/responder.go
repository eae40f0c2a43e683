package apperror

import (
	"encoding/json"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Responder is the last stage of the error pipeline. It records every
// failure on the error log and writes the normalized JSON body.
type Responder struct {
	log *zap.Logger
}

// NewResponder returns a Responder that logs to log. A nil logger disables
// error logging.
func NewResponder(log *zap.Logger) *Responder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Responder{log: log}
}

// Respond logs err and writes the matching status and body to w.
func (rs *Responder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	status, body := Normalize(err)

	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		rs.log.Error("request failed", fields...)
	} else {
		rs.log.Info("request rejected", fields...)
	}

	WriteJSON(w, status, body)
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
