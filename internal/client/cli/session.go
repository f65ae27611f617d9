package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aletheia-net/aletheia/internal/filex"
)

const (
	sessionDir  = ".aletheia"
	sessionFile = "session.json"
)

// session is what survives a CLI restart.
type session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// saveSession persists the bearer token and profile id so a restarted CLI
// can resume without logging in again.
func saveSession(token, userID string) error {
	dir, err := filex.EnsureHomeDir(sessionDir)
	if err != nil {
		return err
	}
	b, err := json.Marshal(session{Token: token, UserID: userID})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, sessionFile), b, 0o600)
}

// loadSession returns the stored session, or nil when none was saved.
func loadSession() *session {
	dir, err := filex.EnsureHomeDir(sessionDir)
	if err != nil {
		return nil
	}
	b, err := os.ReadFile(filepath.Join(dir, sessionFile))
	if err != nil {
		return nil
	}
	var s session
	if err := json.Unmarshal(b, &s); err != nil || s.Token == "" {
		return nil
	}
	return &s
}

// clearSession removes the stored session.
func clearSession() {
	dir, err := filex.EnsureHomeDir(sessionDir)
	if err != nil {
		return
	}
	_ = os.Remove(filepath.Join(dir, sessionFile))
}
