// Package api is the REST client the CLI uses to talk to the Aletheia
// server. It mirrors the server's JSON surface and error envelope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/aletheia-net/aletheia/internal/server/models"
)

// Client calls the Aletheia REST API. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New constructs a Client for the given base URL.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current bearer token.
func (c *Client) Token() string { return c.token }

// apiError is the server's error envelope.
type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e apiError
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("server: %s", e.Error)
		}
		return fmt.Errorf("server: unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// AuthResult is the server's reply to register and login.
type AuthResult struct {
	Token   string          `json:"token"`
	Profile *models.Profile `json:"profile"`
}

// Register creates an account and installs the returned token.
func (c *Client) Register(ctx context.Context, username, password, manifesto string) (*AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username, "password": password, "manifesto": manifesto,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Login authenticates and installs the returned token.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username, "password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Health reports whether the server answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Profile fetches a profile by id.
func (c *Client) Profile(ctx context.Context, id string) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodGet, "/profile/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileUpdate carries the fields of a partial profile overwrite. Nil
// fields keep their stored values.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
	CoverURL    *string `json:"coverUrl,omitempty"`
	Manifesto   *string `json:"manifesto,omitempty"`
	Entropy     *int    `json:"entropy,omitempty"`
}

// UpdateProfile applies a partial overwrite of the user's own profile.
func (c *Client) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodPost, "/profile/"+id+"/update", upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FollowToggle follows or unfollows the target. Returns whether the user
// follows the target afterwards.
func (c *Client) FollowToggle(ctx context.Context, selfID, targetID string) (bool, error) {
	var out struct {
		Following bool `json:"following"`
	}
	err := c.do(ctx, http.MethodPost, "/profile/"+selfID+"/follow", map[string]string{"targetId": targetID}, &out)
	return out.Following, err
}

// Leaderboard fetches the top profiles.
func (c *Client) Leaderboard(ctx context.Context) ([]*models.Profile, error) {
	var out []*models.Profile
	if err := c.do(ctx, http.MethodGet, "/leaderboard", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Quests lists the user's quests.
func (c *Client) Quests(ctx context.Context, userID string) ([]*models.Quest, error) {
	var out []*models.Quest
	if err := c.do(ctx, http.MethodGet, "/quests/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateResult is the server's reply to quest generation; Message is set
// when the server declined to generate.
type GenerateResult struct {
	Quests  []*models.Quest `json:"quests"`
	Message string          `json:"message"`
}

// GenerateQuests asks the oracle for new quests.
func (c *Client) GenerateQuests(ctx context.Context, goals []string) (*GenerateResult, error) {
	var out GenerateResult
	if err := c.do(ctx, http.MethodPost, "/ai/quest/generate", map[string]any{"goals": goals}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteResult is the server's reply to quest completion.
type CompleteResult struct {
	Quest *models.Quest `json:"quest"`
	Stats models.Stats  `json:"stats"`
}

// CompleteQuest marks a quest done and returns the updated stats.
func (c *Client) CompleteQuest(ctx context.Context, questID int64) (*CompleteResult, error) {
	var out CompleteResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/quests/%d/complete", questID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Feed fetches the post feed, newest first.
func (c *Client) Feed(ctx context.Context) ([]*models.Post, error) {
	var out []*models.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePost publishes a post.
func (c *Client) CreatePost(ctx context.Context, content string) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodPost, "/posts", map[string]string{"content": content}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleLike toggles the user's like on a post.
func (c *Client) ToggleLike(ctx context.Context, postID int64) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/toggle-like", postID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Notifications lists the user's notifications.
func (c *Client) Notifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	var out []*models.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Wisdom fetches the quote of the day.
func (c *Client) Wisdom(ctx context.Context) (text, author string, err error) {
	var out struct {
		Text   string `json:"text"`
		Author string `json:"author"`
	}
	if err := c.do(ctx, http.MethodGet, "/ai/wisdom", nil, &out); err != nil {
		return "", "", err
	}
	return out.Text, out.Author, nil
}

// MysteriousName asks the oracle for an RPG-style name.
func (c *Client) MysteriousName(ctx context.Context) (string, error) {
	var out struct {
		Name string `json:"name"`
	}
	if err := c.do(ctx, http.MethodPost, "/ai/mysterious-name", nil, &out); err != nil {
		return "", err
	}
	return out.Name, nil
}

// PresignUpload asks the server for a presigned PUT URL.
func (c *Client) PresignUpload(ctx context.Context) (key, url string, err error) {
	var out struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/uploads/presign", nil, &out); err != nil {
		return "", "", err
	}
	return out.Key, out.URL, nil
}

// ResolveUploadURL turns a storage key into a short-lived display URL.
func (c *Client) ResolveUploadURL(ctx context.Context, key string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/uploads/url?key="+url.QueryEscape(key), nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
