// ABOUTME: Root command running the full digest pipeline
// ABOUTME: Wires configuration, infrastructure and stage services together

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"newsdigest/core/dedupe"
	"newsdigest/core/domain"
	"newsdigest/core/fetch"
	"newsdigest/core/interfaces"
	"newsdigest/core/pipeline"
	"newsdigest/core/score"
	"newsdigest/infrastructure/cache/memory"
	"newsdigest/infrastructure/cache/redis"
	"newsdigest/infrastructure/content/readability"
	"newsdigest/infrastructure/email/smtp"
	standardhttp "newsdigest/infrastructure/http/standard"
	"newsdigest/infrastructure/llm/ollama"
	logruslogger "newsdigest/infrastructure/logger/logrus"
	"newsdigest/pkg/config"
)

// testModeArticles is how many articles a --test run scores.
const testModeArticles = 3

type rootFlags struct {
	dryRun    bool
	testMode  bool
	minScore  float64
	output    string
	verbose   bool
	sources   string
	interests string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Generate and send a personalized news digest",
		Long: `Fetches articles from configured RSS/Atom feeds, removes near-duplicate
stories, scores each one for personal relevance with a local Ollama model,
and delivers a topic-grouped digest by email.

Requirements:
  - Ollama running: ollama serve
  - Model installed: ollama pull llama3.1:8b
  - Email config in .env: GMAIL_USER, GMAIL_APP_PASSWORD, EMAIL_RECIPIENT`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "generate the digest but don't send email")
	cmd.Flags().BoolVar(&flags.testMode, "test", false, fmt.Sprintf("process only %d articles (for quick testing)", testModeArticles))
	cmd.Flags().Float64Var(&flags.minScore, "min-score", config.DefaultMinScore, "minimum relevance score 1-10")
	cmd.Flags().StringVar(&flags.output, "output", "", "save digest markdown to file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().StringVar(&flags.sources, "sources", "config/sources.yaml", "feed sources file")
	cmd.Flags().StringVar(&flags.interests, "interests", "config/topics.yaml", "interest profile file")

	cmd.AddCommand(newDiscoverCommand(flags))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func runDigest(cmd *cobra.Command, flags *rootFlags) error {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load(flags.sources, flags.interests)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logruslogger.New(os.Stderr, flags.verbose)
	logger.Info("Starting news digest pipeline", map[string]interface{}{
		"dry_run": flags.dryRun,
		"test":    flags.testMode,
	})

	deps := interfaces.Dependencies{
		Cache:      newCache(cfg.Cache, logger),
		HTTPClient: standardhttp.NewClient(30 * time.Second),
		Logger:     logger,
	}

	p := buildPipeline(cfg, deps)

	maxArticles := 0
	if flags.testMode {
		maxArticles = testModeArticles
	}

	result, runErr := p.Run(cmd.Context(), pipeline.Options{
		Fetch: interfaces.FetchOptions{
			MaxPerFeed:     cfg.Sources.MaxArticlesPerFeed,
			FreshnessHours: cfg.Sources.FreshnessHours,
		},
		MinScore:    flags.minScore,
		MaxArticles: maxArticles,
		DryRun:      flags.dryRun,
	})

	logger.Info("Results", map[string]interface{}{
		"fetched":       result.Stats.Fetched,
		"after_dedupe":  result.Stats.AfterDedupe,
		"passed_filter": result.Stats.PassedFilter,
		"email_sent":    result.Stats.EmailSent,
	})

	if flags.output != "" && result.DigestMarkdown != "" {
		if err := os.WriteFile(flags.output, []byte(result.DigestMarkdown), 0o644); err != nil {
			return fmt.Errorf("writing digest to %s: %w", flags.output, err)
		}
		logger.Info("Digest saved", map[string]interface{}{"path": flags.output})
	}

	if flags.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "\n==================== DIGEST PREVIEW ====================\n\n%s\n", result.DigestMarkdown)
	}

	return runErr
}

// buildPipeline assembles the stage services from configuration.
func buildPipeline(cfg *config.Config, deps interfaces.Dependencies) *pipeline.Pipeline {
	topics := make([]fetch.Topic, 0, len(cfg.Sources.Topics))
	for _, t := range cfg.Sources.Topics {
		topics = append(topics, fetch.Topic{Name: t.Name, Feeds: t.URLs})
	}
	fetcher := fetch.NewService(deps, topics, time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	deduper := dedupe.New(cfg.Scoring.DedupeThreshold, deps.Logger)

	backend := ollama.NewClient(cfg.Ollama.BaseURL, cfg.Ollama.Model,
		standardhttp.NewClient(time.Duration(cfg.Ollama.TimeoutSeconds)*time.Second))

	var extractor score.ContentExtractor
	if cfg.Scoring.FetchFullContent {
		extractor = readability.NewExtractor(deps)
	}

	scorer := score.NewService(backend, extractor, deps.Logger, score.Options{
		BodyCap:           cfg.Scoring.BodyCap,
		RequestsPerSecond: cfg.Ollama.RequestsPerSecond,
		MinSummaryChars:   cfg.Scoring.MinSummaryChars,
	})

	deliverer := smtp.NewSender(cfg.Email, deps.Logger)

	profile := domain.InterestProfile{Topics: make([]domain.InterestTopic, 0, len(cfg.Interests.Topics))}
	for _, t := range cfg.Interests.Topics {
		profile.Topics = append(profile.Topics, domain.InterestTopic{
			Name:     t.Name,
			Weight:   t.Weight,
			Keywords: t.Keywords,
		})
	}

	return pipeline.New(fetcher, deduper, scorer, deliverer, profile, deps.Logger)
}

// newCache selects the cache backend, falling back to memory when Redis
// is configured but unreachable.
func newCache(cfg config.CacheConfig, logger interfaces.Logger) interfaces.Cache {
	switch cfg.Type {
	case "redis":
		redisCache, err := redis.New(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.New(time.Duration(cfg.TTLSeconds) * time.Second)
		}
		logger.Info("Using Redis cache", map[string]interface{}{"address": cfg.Redis.Address})
		return redisCache
	default:
		logger.Info("Using memory cache", nil)
		return memory.New(time.Duration(cfg.TTLSeconds) * time.Second)
	}
}
