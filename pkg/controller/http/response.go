package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/usecase"
	"github.com/secmon-lab/grcengine/pkg/utils/errutil"
	"github.com/secmon-lab/grcengine/pkg/utils/safe"
)

// errBadRequest marks request bodies that could not be decoded
var errBadRequest = goerr.New("bad request")

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer safe.Close(r.Context(), body)

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return goerr.Wrap(errBadRequest, "failed to decode request body", goerr.V("cause", err.Error()))
	}
	return nil
}

// statusOf maps use case errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, usecase.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrMatrixNotFound),
		errors.Is(err, model.ErrFormNotFound),
		errors.Is(err, usecase.ErrAssessmentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}
