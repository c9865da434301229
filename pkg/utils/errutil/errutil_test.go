package errutil_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/grcengine/pkg/utils/errutil"
)

func TestHandleReturnsSameError(t *testing.T) {
	err := goerr.New("boom", goerr.V("matrix_id", "x"))
	got := errutil.Handle(context.Background(), err, "failed")
	gt.Error(t, got).Is(err)
}

func TestHandleNil(t *testing.T) {
	gt.NoError(t, errutil.Handle(context.Background(), nil, "nothing"))
}

func TestHandleHTTPWritesJSON(t *testing.T) {
	w := httptest.NewRecorder()
	errutil.HandleHTTP(context.Background(), w, goerr.New("bad input"), http.StatusBadRequest)

	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	gt.Value(t, w.Header().Get("Content-Type")).Equal("application/json")

	var body map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
	gt.Value(t, body["error"]).Equal("bad input")
}
