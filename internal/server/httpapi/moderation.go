package httpapi

import (
	"net/http"

	"github.com/aletheia-net/aletheia/internal/common"
)

type reportRequest struct {
	TargetUserID *string `json:"targetUserId"`
	TargetPostID *int64  `json:"targetPostId"`
	Reason       string  `json:"reason"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.moderation.Report(r.Context(), userID(r.Context()), req.TargetUserID, req.TargetPostID, req.Reason)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, report)
}

type presignResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (s *Server) handlePresign(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.uploads.GetPresignedPutUrl(r.Context(), userID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, presignResponse{Key: key, URL: url})
}

type uploadURLResponse struct {
	URL string `json:"url"`
}

// handleUploadURL resolves a storage key (as stored in avatarUrl/coverUrl)
// to a short-lived display URL.
func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		s.writeError(w, r, common.ErrorValidation)
		return
	}

	url, err := s.uploads.GetPresignedGetUrl(r.Context(), key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, uploadURLResponse{URL: url})
}
