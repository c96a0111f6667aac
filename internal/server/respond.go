package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRange, errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidReference:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidLayer, errors.ErrCodeOverlap, errors.ErrCodeEmptyColumn,
		errors.ErrCodeMissingFormationTop, errors.ErrCodeMalformedRecord:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		var mbe *http.MaxBytesError
		if stderrors.As(err, &mbe) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{errorDetail{errors.ErrCodeInvalidInput, err.Error()}})
			return
		}
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	s.writeJSON(w, status, errorBody{errorDetail{code, msg}})
}

// decode reads a JSON body of at most maxBody bytes into v.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if stderrors.As(err, &mbe) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
