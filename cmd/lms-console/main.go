package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/htran/lms-console/internal/api"
	"github.com/htran/lms-console/internal/app"
	"github.com/htran/lms-console/internal/credential"
	"github.com/htran/lms-console/internal/logging"
	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/realtime"
	"github.com/htran/lms-console/internal/session"
	"github.com/htran/lms-console/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lms-console:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to config file")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	// First run: persist the defaults so users have a file to edit.
	if _, statErr := os.Stat(*configPath); os.IsNotExist(statErr) {
		if saveErr := model.SaveConfig(*configPath, cfg); saveErr != nil {
			fmt.Fprintln(os.Stderr, "lms-console: writing default config:", saveErr)
		}
	}

	cleanup, err := logging.Setup(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer cleanup()

	st, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer st.Close()

	timeout := time.Duration(cfg.API.TimeoutSec) * time.Second
	client := api.NewClient(cfg.API.BaseURL, timeout)

	holder := session.NewHolder()
	manager := realtime.NewManager(realtime.Config{URL: socketURL(cfg)})
	manager.Bind(holder)

	initial := restoreSession(client)

	program := tea.NewProgram(
		app.New(client, st, holder, manager, initial),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	holder.Clear()
	return nil
}

// socketURL returns the websocket endpoint, deriving it from the API
// base URL when not configured explicitly.
func socketURL(cfg *model.AppConfig) string {
	if cfg.API.SocketURL != "" {
		return cfg.API.SocketURL
	}

	u := cfg.API.BaseURL
	u = strings.TrimSuffix(u, "/api/v1")
	u = strings.Replace(u, "https://", "wss://", 1)
	u = strings.Replace(u, "http://", "ws://", 1)
	return u + "/socket"
}

// restoreSession rebuilds a session from the keyring token, if one is
// stored and still valid. Any failure falls back to the login screen.
func restoreSession(client *api.Client) *model.Session {
	token, err := credential.Get(credential.KeyAuthToken)
	if err != nil || token == "" {
		return nil
	}

	userID, err := api.ParseTokenClaims(token)
	if err != nil {
		zap.S().Infow("stored token rejected", "error", err)
		_ = credential.Delete(credential.KeyAuthToken)
		return nil
	}

	client.SetToken(token)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := client.GetUser(ctx, userID)
	if err != nil {
		zap.S().Infow("session restore failed", "error", err)
		client.ClearToken()
		return nil
	}

	return &model.Session{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		Token:  token,
	}
}
