package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/domain/model/matrix"
	"github.com/secmon-lab/grcengine/pkg/domain/model/scoring"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
	"github.com/secmon-lab/grcengine/pkg/usecase"
)

type assessmentRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	MatrixID    types.MatrixID  `json:"matrix_id"`
	Probability *int            `json:"probability"`
	Impact      *int            `json:"impact"`
	FormID      types.FormID    `json:"form_id"`
	Answers     scoring.Answers `json:"answers"`
}

type assessmentResponse struct {
	ID          types.AssessmentID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	MatrixID    types.MatrixID     `json:"matrix_id"`
	Probability *int               `json:"probability,omitempty"`
	Impact      *int               `json:"impact,omitempty"`
	RiskLevel   *matrix.Level      `json:"risk_level,omitempty"`
	FormID      types.FormID       `json:"form_id,omitempty"`
	Answers     scoring.Answers    `json:"answers,omitempty"`
	Result      *scoring.Result    `json:"result,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (req *assessmentRequest) toInput() *usecase.AssessmentInput {
	return &usecase.AssessmentInput{
		Name:        req.Name,
		Description: req.Description,
		MatrixID:    req.MatrixID,
		Probability: req.Probability,
		Impact:      req.Impact,
		FormID:      req.FormID,
		Answers:     req.Answers,
	}
}

func toAssessmentResponse(a *model.Assessment) assessmentResponse {
	return assessmentResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		MatrixID:    a.MatrixID,
		Probability: a.Probability,
		Impact:      a.Impact,
		RiskLevel:   a.RiskLevel,
		FormID:      a.FormID,
		Answers:     a.Answers,
		Result:      a.Result,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// listAssessments lists assessments, filtered by the "matrix_id" query
// parameter when present
func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	matrixID := types.MatrixID(r.URL.Query().Get("matrix_id"))

	assessments, err := s.uc.Assessment.ListAssessments(r.Context(), matrixID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := struct {
		Assessments []assessmentResponse `json:"assessments"`
	}{
		Assessments: make([]assessmentResponse, len(assessments)),
	}
	for i, a := range assessments {
		resp.Assessments[i] = toAssessmentResponse(a)
	}

	writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.uc.Assessment.CreateAssessment(r.Context(), req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusCreated, toAssessmentResponse(created))
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	id := types.AssessmentID(chi.URLParam(r, "id"))

	assessment, err := s.uc.Assessment.GetAssessment(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, toAssessmentResponse(assessment))
}

func (s *Server) updateAssessment(w http.ResponseWriter, r *http.Request) {
	id := types.AssessmentID(chi.URLParam(r, "id"))

	var req assessmentRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.uc.Assessment.UpdateAssessment(r.Context(), id, req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, toAssessmentResponse(updated))
}

func (s *Server) deleteAssessment(w http.ResponseWriter, r *http.Request) {
	id := types.AssessmentID(chi.URLParam(r, "id"))

	if err := s.uc.Assessment.DeleteAssessment(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
