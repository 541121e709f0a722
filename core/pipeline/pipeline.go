// ABOUTME: Pipeline orchestrator running the fixed stage topology
// ABOUTME: fetch, dedupe+score+rank, render, dispatch, with an absorbing failure state

package pipeline

import (
	"context"
	"fmt"
	"time"

	"newsdigest/core/domain"
	"newsdigest/core/interfaces"
	"newsdigest/core/rank"
	"newsdigest/core/render"
)

// Deduper removes near-duplicate articles, first seen wins.
type Deduper interface {
	Dedupe(articles []domain.Article) []domain.Article
}

// Options configures a single run.
type Options struct {
	// Fetch narrows and bounds the fetch stage.
	Fetch interfaces.FetchOptions

	// MinScore is the inclusive relevance threshold.
	MinScore float64

	// MaxArticles caps how many articles are scored; 0 means no cap.
	MaxArticles int

	// DryRun renders the digest but skips the delivery transport.
	DryRun bool
}

// Result is what a finished run reports back to the caller.
type Result struct {
	DigestMarkdown string
	DigestHTML     string
	Stats          Stats
	Err            error
}

// Pipeline wires the stage implementations into the fixed topology.
type Pipeline struct {
	fetcher   interfaces.ArticleFetcher
	deduper   Deduper
	scorer    interfaces.ArticleScorer
	deliverer interfaces.DigestDeliverer
	profile   domain.InterestProfile
	logger    interfaces.Logger

	// now is swapped in tests for deterministic digest dates.
	now func() time.Time
}

// New creates a pipeline from its stage implementations.
func New(fetcher interfaces.ArticleFetcher, deduper Deduper, scorer interfaces.ArticleScorer, deliverer interfaces.DigestDeliverer, profile domain.InterestProfile, logger interfaces.Logger) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		deduper:   deduper,
		scorer:    scorer,
		deliverer: deliverer,
		profile:   profile,
		logger:    logger,
		now:       time.Now,
	}
}

type stage struct {
	name string
	next Status
	run  func(ctx context.Context, s State) Delta
}

// Run executes the full pipeline once. The returned error is the first
// fatal stage error; the Result always carries whatever digest and stats
// were produced before the failure.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Result, error) {
	state := State{
		MinScore:    opts.MinScore,
		MaxArticles: opts.MaxArticles,
		DryRun:      opts.DryRun,
		Status:      StatusInit,
	}

	stages := []stage{
		{name: "fetch", next: StatusFetched, run: func(ctx context.Context, s State) Delta { return p.fetchStage(ctx, s, opts.Fetch) }},
		{name: "dedupe_score", next: StatusDedupedScored, run: p.dedupeScoreStage},
		{name: "render", next: StatusRendered, run: p.renderStage},
		{name: "dispatch", next: StatusDispatched, run: p.dispatchStage},
	}

	for _, st := range stages {
		if state.Err != nil {
			break
		}

		p.logDebug("Stage starting", map[string]interface{}{"stage": st.name})
		state = state.merge(st.run(ctx, state), st.next)
	}

	p.logInfo("Pipeline complete", map[string]interface{}{
		"status":        string(state.Status),
		"fetched":       state.Stats.Fetched,
		"after_dedupe":  state.Stats.AfterDedupe,
		"passed_filter": state.Stats.PassedFilter,
		"email_sent":    state.Stats.EmailSent,
	})

	return Result{
		DigestMarkdown: state.DigestMarkdown,
		DigestHTML:     state.DigestHTML,
		Stats:          state.Stats,
		Err:            state.Err,
	}, state.Err
}

func (p *Pipeline) fetchStage(ctx context.Context, _ State, opts interfaces.FetchOptions) Delta {
	articles, err := p.fetcher.Fetch(ctx, opts)
	if err != nil {
		return Delta{Err: fmt.Errorf("fetch failed: %w", err)}
	}

	p.logInfo("Fetched raw articles", map[string]interface{}{"count": len(articles)})

	return Delta{
		RawArticles: articles,
		Stats:       StatsDelta{Fetched: intPtr(len(articles))},
	}
}

// dedupeScoreStage removes near-duplicates, scores the survivors and
// keeps the ones at or above the threshold, best first. The test cap is
// applied after dedupe so a capped run still scores distinct articles.
func (p *Pipeline) dedupeScoreStage(ctx context.Context, s State) Delta {
	articles := p.deduper.Dedupe(s.RawArticles)
	afterDedupe := len(articles)

	if s.MaxArticles > 0 && len(articles) > s.MaxArticles {
		articles = articles[:s.MaxArticles]
	}

	scored, err := p.scorer.ScoreArticles(ctx, articles, p.profile)
	if err != nil {
		return Delta{
			Stats: StatsDelta{AfterDedupe: intPtr(afterDedupe)},
			Err:   fmt.Errorf("scoring failed: %w", err),
		}
	}

	ranked := rank.FilterRank(scored, s.MinScore, p.logger)

	return Delta{
		ScoredArticles: ranked,
		Stats: StatsDelta{
			AfterDedupe:  intPtr(afterDedupe),
			PassedFilter: intPtr(len(ranked)),
		},
	}
}

func (p *Pipeline) renderStage(_ context.Context, s State) Delta {
	md := render.RenderMarkdown(s.ScoredArticles, p.now())

	var html string
	if len(s.ScoredArticles) == 0 {
		html = render.EmptyDigestHTML
	} else {
		html = render.MarkdownToHTML(md)
	}

	return Delta{
		DigestMarkdown: strPtr(md),
		DigestHTML:     strPtr(html),
	}
}

func (p *Pipeline) dispatchStage(ctx context.Context, s State) Delta {
	if s.DryRun {
		p.logInfo("Dry run, skipping email", nil)
		return Delta{Stats: StatsDelta{EmailSent: boolPtr(false)}}
	}

	subject := fmt.Sprintf("Daily News Digest - %s", p.now().Format("January 02, 2006"))

	sent, err := p.deliverer.Deliver(ctx, subject, s.DigestHTML, s.DigestMarkdown)
	if err != nil {
		// The rendered digest stays in the state for inspection.
		return Delta{
			Stats: StatsDelta{EmailSent: boolPtr(false)},
			Err:   fmt.Errorf("delivery failed: %w", err),
		}
	}

	return Delta{Stats: StatsDelta{EmailSent: boolPtr(sent)}}
}

func (p *Pipeline) logDebug(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, fields)
	}
}

func (p *Pipeline) logInfo(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, fields)
	}
}
