package http

import (
	"net/http"

	"github.com/secmon-lab/grcengine/pkg/domain/model/scoring"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
	"github.com/secmon-lab/grcengine/pkg/usecase"
)

type factorResponse struct {
	ID        types.FactorID `json:"id"`
	PromptKey string         `json:"prompt_key"`
	// Disabled slots are null
	Choices []*string `json:"choices"`
}

type groupResponse struct {
	ID        types.GroupID        `json:"id"`
	PromptKey string               `json:"prompt_key"`
	Category  types.FactorCategory `json:"category"`
	Factors   []factorResponse     `json:"factors"`
}

type formResponse struct {
	ID     types.FormID    `json:"id"`
	Name   string          `json:"name"`
	Groups []groupResponse `json:"groups"`
}

type scoreRequest struct {
	FormID  types.FormID    `json:"form_id"`
	Answers scoring.Answers `json:"answers"`
}

func toFormResponse(form *scoring.Form) formResponse {
	resp := formResponse{
		ID:     form.ID,
		Name:   form.Name,
		Groups: make([]groupResponse, len(form.Groups)),
	}

	for i, g := range form.Groups {
		group := groupResponse{
			ID:        g.ID,
			PromptKey: g.PromptKey,
			Category:  g.Category,
			Factors:   make([]factorResponse, len(g.Factors)),
		}
		for j, f := range g.Factors {
			choices := make([]*string, scoring.SlotCount)
			for slot, label := range f.Choices {
				if label != "" {
					choices[slot] = &label
				}
			}
			group.Factors[j] = factorResponse{
				ID:        f.ID,
				PromptKey: f.PromptKey,
				Choices:   choices,
			}
		}
		resp.Groups[i] = group
	}

	return resp
}

func (s *Server) listForms(w http.ResponseWriter, r *http.Request) {
	forms := s.uc.Scoring.ListForms()

	resp := struct {
		Forms []formResponse `json:"forms"`
	}{
		Forms: make([]formResponse, len(forms)),
	}
	for i, form := range forms {
		resp.Forms[i] = toFormResponse(form)
	}

	writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.uc.Scoring.Score(r.Context(), req.FormID, req.Answers)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, result)
}

func (s *Server) scoreBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []scoreRequest
	if err := s.decodeJSON(w, r, &reqs); err != nil {
		handleError(w, r, err)
		return
	}

	requests := make([]usecase.ScoreRequest, len(reqs))
	for i, req := range reqs {
		requests[i] = usecase.ScoreRequest{FormID: req.FormID, Answers: req.Answers}
	}

	results, err := s.uc.Scoring.ScoreBatch(r.Context(), requests)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, struct {
		Results []*scoring.Result `json:"results"`
	}{Results: results})
}
