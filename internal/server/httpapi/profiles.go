package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/aletheia-net/aletheia/internal/common"
	"github.com/aletheia-net/aletheia/internal/server/services"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.users.GetProfile(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	DisplayName *string         `json:"displayName"`
	AvatarURL   *string         `json:"avatarUrl"`
	CoverURL    *string         `json:"coverUrl"`
	Manifesto   *string         `json:"manifesto"`
	Entropy     *int            `json:"entropy"`
	Tasks       json.RawMessage `json:"tasks"`
	Inventory   json.RawMessage `json:"inventory"`
}

// handleUpdateProfile lets a user edit their own profile only.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id != userID(r.Context()) {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	profile, err := s.users.UpdateProfile(r.Context(), id, services.ProfileUpdate{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		CoverURL:    req.CoverURL,
		Manifesto:   req.Manifesto,
		Entropy:     req.Entropy,
		Tasks:       req.Tasks,
		Inventory:   req.Inventory,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

type followRequest struct {
	TargetID string `json:"targetId"`
}

func (s *Server) handleFollowToggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id != userID(r.Context()) {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	var req followRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	following, err := s.users.FollowToggle(r.Context(), id, req.TargetID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"following": following})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := s.users.Leaderboard(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, board)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	ns, err := s.users.Notifications(r.Context(), r.PathValue("userId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ns)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.users.MarkNotificationRead(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"read": true})
}

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	as, err := s.users.Achievements(r.Context(), r.PathValue("userId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, as)
}
