package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"hiring-signals/internal/feedback"
	"hiring-signals/internal/inference"
	"hiring-signals/internal/inference/gemini"
	"hiring-signals/internal/inference/huggingface"
	"hiring-signals/internal/jobs"
	"hiring-signals/internal/matcher"
	"hiring-signals/internal/services/health"
	"hiring-signals/internal/shared/config"
	"hiring-signals/internal/shared/server"
	"hiring-signals/internal/shared/storage/db"
	"hiring-signals/internal/supabase"
)

const (
	InterviewAPIService  = "interview-api"
	ResumeMatcherService = "resume-matcher"
)

// Datastore bundles the job catalog, feedback file catalog and assessment store
// for the configured backend.
type Datastore struct {
	Backend  string
	Supabase *supabase.Client
	DB       *sql.DB
	Jobs     jobs.Catalog
	Files    feedback.FileCatalog
	Store    feedback.Store
}

// OpenDatastore connects to the backend selected by cfg.DataBackend.
func OpenDatastore(ctx context.Context, cfg config.Config, opts db.Options) (*Datastore, error) {
	if err := cfg.ValidateDatastore(); err != nil {
		return nil, err
	}

	if cfg.DataBackend == config.BackendPostgres {
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromConfig(opts, cfg.DBPool))
		if err != nil {
			return nil, err
		}
		return &Datastore{
			Backend: config.BackendPostgres,
			DB:      sqlDB,
			Jobs:    &jobs.PGCatalog{DB: sqlDB},
			Files:   &feedback.PGFileCatalog{DB: sqlDB},
			Store:   &feedback.PGStore{DB: sqlDB},
		}, nil
	}

	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.HTTPTimeout)
	if err != nil {
		return nil, err
	}
	return &Datastore{
		Backend:  config.BackendREST,
		Supabase: client,
		Jobs:     &jobs.RESTCatalog{Client: client},
		Files:    &feedback.RESTFileCatalog{Client: client},
		Store:    &feedback.RESTStore{Client: client},
	}, nil
}

// Ping verifies the backend is reachable. For the hosted store it reads one
// row of the feedback file table.
func (d *Datastore) Ping(ctx context.Context) error {
	if d.DB != nil {
		return d.DB.PingContext(ctx)
	}
	if d.Supabase != nil {
		return d.Supabase.Probe(ctx, "interview_feedback_files")
	}
	return errors.New("datastore not configured")
}

// Close releases the database pool, if any.
func (d *Datastore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// NewFeedbackService wires the feedback pipeline over ds.
func NewFeedbackService(cfg config.Config, ds *Datastore, store feedback.Store) (*feedback.Service, error) {
	summarizer, err := huggingface.NewClient(cfg.HFAPIURL, cfg.HFAPIToken, cfg.SummarizerModel, cfg.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("summarizer: %w", err)
	}
	classifier, err := huggingface.NewClient(cfg.HFAPIURL, cfg.HFAPIToken, cfg.ClassifierModel, cfg.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	if store == nil {
		store = ds.Store
	}
	processor := feedback.NewProcessor(ds.Files, feedback.NewHTTPFetcher(cfg.HTTPTimeout), summarizer, classifier)
	return feedback.NewService(processor, store), nil
}

// InterviewAPI holds the dependencies of the interview feedback service.
type InterviewAPI struct {
	Config    config.Config
	Router    *gin.Engine
	Datastore *Datastore
	Resolver  *jobs.Resolver
	Service   *feedback.Service
}

// BuildInterviewAPI wires the interview feedback service.
func BuildInterviewAPI(ctx context.Context, cfg config.Config) (*InterviewAPI, error) {
	ds, err := OpenDatastore(ctx, cfg, db.DefaultServerOptions())
	if err != nil {
		return nil, err
	}
	svc, err := NewFeedbackService(cfg, ds, nil)
	if err != nil {
		_ = ds.Close()
		return nil, err
	}
	resolver := jobs.NewResolver(ds.Jobs, nil)

	app := &InterviewAPI{
		Config:    cfg,
		Datastore: ds,
		Resolver:  resolver,
		Service:   svc,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Service:          InterviewAPIService,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Health:           health.NewService(InterviewAPIService, map[string]health.Checker{"datastore": ds}),
		Handlers:         []server.RouteRegistrar{feedback.NewHandler(resolver, svc)},
	})
	return app, nil
}

// NewEmbedder returns the sentence embedder selected by cfg.EmbeddingsProvider.
func NewEmbedder(ctx context.Context, cfg config.Config) (inference.Embedder, error) {
	if cfg.EmbeddingsProvider == config.EmbeddingsGemini {
		e, err := gemini.NewEmbedder(ctx, cfg.GeminiAPIKey, cfg.GeminiEmbedModel)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	c, err := huggingface.NewClient(cfg.HFAPIURL, cfg.HFAPIToken, cfg.EmbeddingsModel, cfg.HTTPTimeout)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ResumeMatcher holds the dependencies of the resume ranking service.
type ResumeMatcher struct {
	Config config.Config
	Router *gin.Engine
	Ranker *matcher.Ranker
}

// BuildResumeMatcher wires the resume ranking service.
func BuildResumeMatcher(ctx context.Context, cfg config.Config) (*ResumeMatcher, error) {
	embedder, err := NewEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	ranker := matcher.NewRanker(embedder)

	app := &ResumeMatcher{Config: cfg, Ranker: ranker}
	app.Router = server.NewRouter(server.RouterDeps{
		Service:          ResumeMatcherService,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Handlers:         []server.RouteRegistrar{matcher.NewHandler(ranker, cfg.DefaultTopN, cfg.MaxUploadBytes())},
	})
	return app, nil
}
