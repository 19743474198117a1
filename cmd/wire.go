package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/subs-cli/internal/adapters/api"
	dashboardrender "github.com/bnema/subs-cli/internal/adapters/render/dashboard"
	tomlrepo "github.com/bnema/subs-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/subs-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/subs-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/subs-cli/internal/adapters/secrets/pass"
	"github.com/bnema/subs-cli/internal/application"
	"github.com/bnema/subs-cli/internal/config"
	"github.com/bnema/subs-cli/internal/logging"
	"github.com/bnema/subs-cli/internal/ports"
)

type app struct {
	config          *config.Config
	logger          *zap.Logger
	sessions        *application.SessionService
	subscriptions   *application.SubscriptionService
	renderDashboard func(application.Dashboard, dashboardrender.RenderOptions) (string, error)
	renderDetail    func(application.SubscriptionView, dashboardrender.RenderOptions) (string, error)
	now             func() time.Time
}

// wire builds the object graph from config and restores any stored session.
// The Session is the API client's token source and the SessionService's
// state, so both see sign-in and sign-out immediately.
func (a *app) wire(ctx context.Context, opts rootOptions, logOutput io.Writer) error {
	cfg, v, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Format, logOutput)
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}

	secretStore, err := newSecretStore(cfg.Secrets, logger.Named("secrets"))
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	repo, err := tomlrepo.NewSessionRepository(v)
	if err != nil {
		return fmt.Errorf("wire session repository: %w", err)
	}

	evaluator, err := cfg.Evaluator()
	if err != nil {
		return fmt.Errorf("wire renewal evaluator: %w", err)
	}

	session := application.NewSession()
	client, err := api.NewClient(cfg.API.BaseURL, &http.Client{}, session, cfg.API.Timeout, logger.Named("api"))
	if err != nil {
		return fmt.Errorf("wire api client: %w", err)
	}

	clock := ports.SystemClock{}
	subscriptions, err := application.NewSubscriptionService(client, evaluator, clock, logger.Named("subscriptions"))
	if err != nil {
		return fmt.Errorf("wire subscription service: %w", err)
	}

	a.config = cfg
	a.logger = logger
	a.sessions = application.NewSessionService(session, client, secretStore, repo, clock, client.BaseURL(), logger.Named("session"))
	a.subscriptions = subscriptions
	a.renderDashboard = dashboardrender.Render
	a.renderDetail = dashboardrender.RenderDetail
	a.now = clock.Now

	if err := a.sessions.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	logger.Debug("wired",
		zap.String("config", v.ConfigFileUsed()),
		zap.String("api", client.BaseURL()),
		zap.String("secrets", cfg.Secrets.Backend),
	)
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newSecretStore(cfg config.SecretsConfig, logger *zap.Logger) (ports.SecretStore, error) {
	switch cfg.Backend {
	case config.SecretsBackendFile:
		return filestore.NewStore(cfg.Dir), nil
	case config.SecretsBackendPass:
		return passstore.NewStore(cfg.PassBinary), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.PassBinary, cfg.Dir, logger)
	}
}
