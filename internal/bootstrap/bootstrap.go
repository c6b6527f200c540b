// Package bootstrap wires configuration into the generation, asset and
// brandbook services shared by the API server and the CLI.
package bootstrap

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"brandkit/internal/adapter/repo"
	"brandkit/internal/assets"
	"brandkit/internal/brandbook"
	"brandkit/internal/generation"
	"brandkit/internal/infra"
	"brandkit/internal/infra/credentials"
	"brandkit/internal/providers/genapi"
	"brandkit/internal/storage"
)

// Services holds everything built from a Config. Close releases the database
// pool when one was opened.
type Services struct {
	Client      *genapi.Client
	Generator   *generation.Service
	Deriver     *assets.Deriver
	Assembler   *brandbook.Assembler
	Credentials *credentials.Store
	Store       *storage.FileStore

	pool *pgxpool.Pool
}

// Build constructs the services. Persistence problems are logged and leave the
// services running without a database.
func Build(ctx context.Context, cfg *infra.Config, logger infra.Logger) (*Services, error) {
	svc := &Services{}

	var repository *repo.BrandbookRepositoryPG
	if cfg.PersistenceEnabled() {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("bootstrap: database unavailable, brandbooks will not be recorded")
		} else {
			runner := infra.NewSQLRunner(pool, logger)
			r := repo.NewBrandbookRepository(runner)
			if err := r.EnsureSchema(ctx); err != nil {
				logger.Error().Err(err).Msg("bootstrap: schema setup failed, brandbooks will not be recorded")
				pool.Close()
			} else {
				svc.pool = pool
				svc.Credentials = credentials.NewStore(runner)
				repository = r
			}
		}
	}

	apiKey, err := svc.Credentials.ResolveAPIKey(ctx, cfg.GenAPIKey)
	if err != nil {
		logger.Warn().Err(err).Msg("bootstrap: failed to load api key from store")
	}

	client, err := genapi.NewClient(genapi.Options{
		APIKey:     apiKey,
		BaseURL:    cfg.GenAPIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPClientTimeout},
		Logger:     &logger,
	})
	if err != nil {
		svc.Close()
		return nil, err
	}
	if !client.HasCredentials() {
		logger.Warn().Str("base_url", client.BaseURL()).Msg("bootstrap: gen-api key missing, provider calls will be rejected")
	}
	svc.Client = client

	svc.Generator = generation.NewService(client, generation.Options{
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		TextPoll:   generation.PollOptions{MaxAttempts: cfg.TextPollAttempts, Interval: cfg.TextPollInterval},
		ImagePoll:  generation.PollOptions{MaxAttempts: cfg.ImagePollAttempts, Interval: cfg.ImagePollInterval},
		Logger:     &logger,
	})

	publicDir := cfg.PublicDir
	if abs, err := filepath.Abs(publicDir); err == nil {
		publicDir = abs
	}
	store, err := storage.NewFileStore(publicDir, "/")
	if err != nil {
		logger.Warn().Err(err).Str("dir", publicDir).Msg("bootstrap: public dir unavailable, logo variants disabled")
	} else {
		svc.Store = store
		svc.Deriver = assets.NewDeriver(client, store, &logger)
	}

	opts := []brandbook.Option{
		brandbook.WithLogger(&logger),
		brandbook.WithFetcher(assetFetcher{store: svc.Store, client: client}),
	}
	if repository != nil {
		opts = append(opts, brandbook.WithRepository(repository))
	}
	svc.Assembler = brandbook.NewAssembler(svc.Generator, svc.Deriver, opts...)

	return svc, nil
}

// assetFetcher reads served files from disk and downloads everything else.
type assetFetcher struct {
	store  *storage.FileStore
	client *genapi.Client
}

func (f assetFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if key, ok := f.store.KeyForURL(url); ok {
		return f.store.Read(ctx, key)
	}
	data, _, err := f.client.Download(ctx, url)
	return data, err
}

// PersistenceEnabled reports whether a database pool is open.
func (s *Services) PersistenceEnabled() bool {
	return s != nil && s.pool != nil
}

// Close releases the database pool.
func (s *Services) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}
