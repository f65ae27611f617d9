// Package cli implements the interactive terminal client for Aletheia.
package cli

import (
	"bufio"
	"context"
	"net/http"
	"os"

	"github.com/aletheia-net/aletheia/internal/client/api"
	"github.com/aletheia-net/aletheia/internal/client/config"
	"github.com/aletheia-net/aletheia/internal/server/models"
)

type App struct {
	config  *config.Config
	api     *api.Client
	profile *models.Profile
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	httpClient := &http.Client{Timeout: c.RequestTimeout}
	return &App{
		config: c,
		api:    api.New(c.ServerBaseURL, httpClient),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.profile != nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
