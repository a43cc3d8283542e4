package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/ai"
	"github.com/spigell/hire-scorer/internal/ai/gemini"
	"github.com/spigell/hire-scorer/internal/ai/huggingface"
	"github.com/spigell/hire-scorer/internal/embedding"
	"github.com/spigell/hire-scorer/internal/github"
	"github.com/spigell/hire-scorer/internal/logger"
	"github.com/spigell/hire-scorer/internal/pipeline"
	"github.com/spigell/hire-scorer/internal/review"
	"github.com/spigell/hire-scorer/internal/secrets"
	"github.com/spigell/hire-scorer/internal/store"
)

// env holds what every command needs.
type env struct {
	config *Config
	logger *zap.Logger
	store  *store.Store
}

func setup(ctx context.Context) *env {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	db, err := store.Open(ctx, config.Database, logger)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err), zap.String("path", config.Database))
	}

	if config.Criteria != nil {
		if err := db.SetDefaultCriteria(*config.Criteria); err != nil {
			logger.Fatal("invalid criteria in config", zap.Error(err))
		}
	}

	return &env{config: config, logger: logger, store: db}
}

func (r *env) close() {
	if err := r.store.Close(); err != nil {
		r.logger.Warn("closing the database", zap.Error(err))
	}
	_ = r.logger.Sync()
}

func (r *env) githubClient() (*github.Client, error) {
	cfg := r.config.GitHub
	if cfg == nil {
		cfg = &GitHubConfig{}
	}

	token, err := secrets.Optional(secrets.Source{
		Name: "github token",
		File: cfg.TokenFile,
		Env:  "GITHUB_TOKEN",
	})
	if err != nil {
		return nil, err
	}

	return github.New(r.logger, github.Options{
		Token:             token,
		APIURL:            cfg.APIURL,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}), nil
}

func (r *env) semanticEngine() (*embedding.Engine, error) {
	cfg := r.config.Embedding
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	token, err := secrets.Optional(secrets.Source{
		Name: "embedding token",
		File: cfg.TokenFile,
		Env:  "HF_TOKEN",
	})
	if err != nil {
		return nil, err
	}
	if token == "" {
		r.logger.Warn("embedding token is not set, semantic scores stay neutral",
			zap.String("hint", "set HF_TOKEN_FILE or embedding.token-file"),
		)
	}

	client := embedding.New(r.logger, embedding.Options{
		Token:        token,
		APIURL:       cfg.APIURL,
		Model:        cfg.Model,
		Timeout:      cfg.Timeout,
		WaitForModel: cfg.WaitForModel,
	})
	return embedding.NewEngine(r.logger, client), nil
}

// newGenerator returns nil without an error when no credential is configured.
func (r *env) newGenerator(ctx context.Context) (ai.Generator, error) {
	cfg := r.config.AI
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	switch provider := strings.TrimSpace(strings.ToLower(cfg.Provider)); provider {
	case "", "huggingface":
		hf := cfg.HuggingFace
		if hf == nil {
			hf = &HuggingFaceConfig{}
		}
		token, err := secrets.Optional(secrets.Source{Name: "huggingface token", File: hf.TokenFile, Env: "HF_TOKEN"})
		if err != nil || token == "" {
			return nil, err
		}
		generator, err := huggingface.NewGenerator(r.logger, huggingface.Options{
			Token:   token,
			APIURL:  hf.APIURL,
			Model:   hf.Model,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return generator, nil
	case "gemini":
		g := cfg.Gemini
		if g == nil {
			g = &GeminiConfig{}
		}
		apiKey, err := secrets.Optional(secrets.Source{Name: "gemini api key", File: g.APIKeyFile, Env: "GEMINI_API_KEY"})
		if err != nil || apiKey == "" {
			return nil, err
		}
		generator, err := gemini.NewGenerator(ctx, r.logger, apiKey, g.Model)
		if err != nil {
			return nil, err
		}
		if cfg.Timeout > 0 {
			generator.Timeout = cfg.Timeout
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// pipelineFactory builds the shared clients once. Each call of the returned
// function yields a fresh pipeline.
func (r *env) pipelineFactory(ctx context.Context) func() *pipeline.Pipeline {
	deps := pipeline.Deps{Store: r.store, Logger: r.logger}

	gh, err := r.githubClient()
	if err != nil {
		r.logger.Warn("skipping repository enrichment", zap.Error(err))
	} else {
		deps.Enricher = gh
	}

	engine, err := r.semanticEngine()
	switch {
	case err != nil:
		r.logger.Warn("skipping semantic analysis", zap.Error(err))
	case engine != nil:
		deps.Semantic = engine
	}

	opts := pipeline.Options{VisibilityDelay: r.config.VisibilityDelay}

	generator, err := r.newGenerator(ctx)
	switch {
	case err != nil:
		r.logger.Warn("skipping AI stages", zap.Error(err))
	case generator == nil:
		r.logger.Debug("AI stages are not configured")
	default:
		cfg := r.config.AI
		reviewOpts := review.Options{
			Temperature:  cfg.Temperature,
			MaxTokens:    cfg.MaxTokens,
			MaxLogLength: cfg.MaxLogLength,
		}
		aiLogger := logger.WithCommonFields(r.logger, strings.ToLower(cfg.Provider), generator.Model())
		deps.Scorer = review.NewScorer(generator, aiLogger, reviewOpts)
		deps.Reviewer = review.NewReviewer(generator, aiLogger, reviewOpts)
		opts.BlendEnabled = cfg.Blend
		opts.BlendAlpha = cfg.BlendAlpha
		opts.ReviewEnabled = cfg.Review
	}

	pipeline.LogStatuses(r.logger, pipeline.New(deps, opts).Stages())

	return func() *pipeline.Pipeline {
		return pipeline.New(deps, opts)
	}
}

func printJSON(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}
