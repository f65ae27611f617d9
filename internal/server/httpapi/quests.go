package httpapi

import (
	"net/http"

	"github.com/aletheia-net/aletheia/internal/server/models"
)

func (s *Server) handleListQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := s.quests.List(r.Context(), r.PathValue("userId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, quests)
}

type generateQuestsRequest struct {
	Goals []string `json:"goals"`
}

type generateQuestsResponse struct {
	Quests  []*models.Quest `json:"quests"`
	Message string          `json:"message,omitempty"`
}

func (s *Server) handleGenerateQuests(w http.ResponseWriter, r *http.Request) {
	var req generateQuestsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	quests, message, err := s.quests.Generate(r.Context(), userID(r.Context()), req.Goals)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, generateQuestsResponse{Quests: quests, Message: message})
}

type completeQuestResponse struct {
	Quest *models.Quest `json:"quest"`
	Stats models.Stats  `json:"stats"`
}

func (s *Server) handleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	quest, stats, err := s.quests.Complete(r.Context(), userID(r.Context()), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, completeQuestResponse{Quest: quest, Stats: stats})
}
