package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/luxgrid/luxgrid-admin/config"
	"github.com/luxgrid/luxgrid-admin/internal/backend"
	"github.com/luxgrid/luxgrid-admin/internal/configuration"
	"github.com/luxgrid/luxgrid-admin/internal/logging"
	"github.com/luxgrid/luxgrid-admin/internal/notify"
	"github.com/luxgrid/luxgrid-admin/internal/panels"
	"github.com/luxgrid/luxgrid-admin/internal/policy"
	"github.com/luxgrid/luxgrid-admin/internal/projects"
	"github.com/luxgrid/luxgrid-admin/internal/session"
)

// app bundles the services wired once at process start.
type app struct {
	sessions      session.Provider
	projects      *projects.Store
	configuration *configuration.Store
	panels        *panels.Store
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: admin <login|logout|signup|confirm|resend|whoami|projects|panels|configuration> ...")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.SetLevel(cfg.App.LogLevel)

	ctx := context.Background()
	a, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	switch os.Args[1] {
	case "login":
		a.runLogin(ctx, os.Args[2:])
	case "logout":
		a.runLogout(ctx)
	case "signup":
		a.runSignup(ctx, os.Args[2:])
	case "confirm":
		a.runConfirm(ctx, os.Args[2:])
	case "resend":
		a.runResend(ctx, os.Args[2:])
	case "whoami":
		a.runWhoami(ctx)
	case "projects":
		a.runProjects(ctx, os.Args[2:])
	case "panels":
		a.runPanels(ctx, os.Args[2:])
	case "configuration":
		a.runConfiguration(ctx)
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	sessions, err := session.NewCognitoProvider(ctx, cfg.Cognito.Region, cfg.Cognito.ClientID, cfg.Cognito.SessionFile)
	if err != nil {
		return nil, err
	}

	table := policy.Default()
	if cfg.Backend.PolicyFile != "" {
		table, err = policy.LoadFile(cfg.Backend.PolicyFile)
		if err != nil {
			return nil, err
		}
	}

	client := backend.New(backend.Config{
		BaseURL:     cfg.Backend.BaseURL,
		StagePrefix: cfg.Backend.StagePrefix,
		Timeout:     cfg.Backend.Timeout,
		RatePerSec:  cfg.Backend.RatePerSec,
		RateBurst:   cfg.Backend.RateBurst,
	}, sessions, table, notify.LogNotifier{}, func() {
		log.Println("session expired, please log in again")
		os.Exit(1)
	})

	a := &app{
		sessions:      sessions,
		projects:      projects.NewStore(client),
		configuration: configuration.NewStore(client, 15*time.Minute),
		panels:        panels.NewStore(client),
	}
	a.configuration.BindAuthEvents(sessions.Events())
	return a, nil
}
