package httpapi

import (
	"net/http"

	"github.com/aletheia-net/aletheia/internal/server/models"
	"github.com/aletheia-net/aletheia/internal/server/services"
)

func (s *Server) handleMysteriousName(w http.ResponseWriter, r *http.Request) {
	name := s.oracle.MysteriousName(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

type featRequest struct {
	Feat string `json:"feat"`
}

type featResponse struct {
	Result *services.FeatResult `json:"result"`
	Stats  models.Stats         `json:"stats"`
}

func (s *Server) handleFeat(w http.ResponseWriter, r *http.Request) {
	var req featRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, stats, err := s.oracle.Feat(r.Context(), userID(r.Context()), req.Feat)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, featResponse{Result: result, Stats: stats})
}

func (s *Server) handleMirrorScenario(w http.ResponseWriter, r *http.Request) {
	scenario, err := s.oracle.Scenario(r.Context(), userID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, scenario)
}

type mirrorEvaluateRequest struct {
	Situation  string `json:"situation"`
	Choice     string `json:"choice"`
	TestedStat string `json:"testedStat"`
}

type mirrorEvaluateResponse struct {
	Outcome *services.MirrorOutcome `json:"outcome"`
	Stats   models.Stats            `json:"stats"`
}

func (s *Server) handleMirrorEvaluate(w http.ResponseWriter, r *http.Request) {
	var req mirrorEvaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	outcome, stats, err := s.oracle.Evaluate(r.Context(), userID(r.Context()), req.Situation, req.Choice, req.TestedStat)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, mirrorEvaluateResponse{Outcome: outcome, Stats: stats})
}

func (s *Server) handleWisdom(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.oracle.DailyWisdom(r.Context()))
}
