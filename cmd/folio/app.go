package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/folio/internal/api"
	"github.com/Veraticus/folio/internal/cli"
	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/config"
	"github.com/Veraticus/folio/internal/dashboard"
	"github.com/Veraticus/folio/internal/model"
	"github.com/Veraticus/folio/internal/storage"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// session is the per-command wiring of config, backend client, local storage
// and the dashboard shell.
type session struct {
	cfg    *config.Config
	client *api.Client
	store  *storage.SQLiteStorage
	notify *cli.Notifier
	shell  *dashboard.Shell
}

// newSession resolves config and builds the backend client. Local storage is
// opened only when withStorage is set; the shell journals batch runs to it.
func newSession(ctx context.Context, withStorage bool) (*session, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := api.New(api.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		Retries:   cfg.Retries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	s := &session{
		cfg:    cfg,
		client: client,
		notify: cli.NewNotifier(os.Stderr),
	}

	if withStorage {
		s.store, err = storage.Open(ctx, cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		s.shell = dashboard.NewShell(client, s.notify, s.store)
	} else {
		s.shell = dashboard.NewShell(client, s.notify, nil)
	}
	return s, nil
}

func (s *session) Close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// mutate runs a single write through the shell, which reloads on success.
func (s *session) mutate(ctx context.Context, label string, fn func(context.Context) error) error {
	return s.shell.Mutate(ctx, label, fn)
}

// withSession opens a session without storage for the duration of fn.
func withSession(ctx context.Context, fn func(*session) error) error {
	s, err := newSession(ctx, false)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// withStoreSession is withSession with local storage opened.
func withStoreSession(ctx context.Context, fn func(*session) error) error {
	s, err := newSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// parseDateFlag reads a YYYY-MM-DD flag value; empty means today.
func parseDateFlag(name, value string) (model.Date, error) {
	if value == "" {
		return model.Today(), nil
	}
	d, err := model.ParseDate(value)
	if err != nil {
		return model.Date{}, common.Validationf("--%s: %v", name, err)
	}
	return d, nil
}

// invalid turns a model validation failure into an ErrValidation so it is
// reported before any request is made.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return common.Validationf("%v", err)
}
