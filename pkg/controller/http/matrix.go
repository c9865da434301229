package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/domain/model/matrix"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
)

type matrixResponse struct {
	ID          types.MatrixID     `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Definition  *matrix.Definition `json:"definition,omitempty"`
	Matrix      [][]matrix.Cell    `json:"matrix,omitempty"`
}

type buildMatrixRequest struct {
	Definition *matrix.Definition   `json:"definition"`
	Orient     []matrix.Orientation `json:"orient"`
}

type buildMatrixResponse struct {
	Matrix [][]matrix.Cell `json:"matrix"`
}

func toMatrixResponse(record *model.MatrixRecord) matrixResponse {
	return matrixResponse{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
	}
}

func (s *Server) listMatrices(w http.ResponseWriter, r *http.Request) {
	records := s.uc.Matrix.ListMatrices()

	resp := struct {
		Matrices []matrixResponse `json:"matrices"`
	}{
		Matrices: make([]matrixResponse, len(records)),
	}
	for i, record := range records {
		resp.Matrices[i] = toMatrixResponse(record)
	}

	writeJSON(r.Context(), w, http.StatusOK, resp)
}

// getMatrix returns a library matrix built and oriented by the repeated
// "orient" query parameter
func (s *Server) getMatrix(w http.ResponseWriter, r *http.Request) {
	id := types.MatrixID(chi.URLParam(r, "id"))

	var orient []matrix.Orientation
	for _, v := range r.URL.Query()["orient"] {
		orient = append(orient, matrix.Orientation(v))
	}

	built, err := s.uc.Matrix.BuildMatrixByID(id, orient...)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := toMatrixResponse(built.Record)
	resp.Definition = built.Record.Definition
	resp.Matrix = built.Cells
	writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) buildMatrix(w http.ResponseWriter, r *http.Request) {
	var req buildMatrixRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	cells, err := s.uc.Matrix.BuildMatrix(req.Definition, req.Orient...)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, buildMatrixResponse{Matrix: cells})
}
