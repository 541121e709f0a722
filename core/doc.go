// Package core contains the business logic for the news digest pipeline.
// It is designed to be framework-agnostic and can be used independently
// of any CLI or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (Article, InterestProfile)
// - fetch: Feed retrieval and normalization
// - dedupe: Near-duplicate title removal
// - score: Model-backed relevance scoring and summarization
// - rank: Threshold filtering and ordering
// - render: Markdown and HTML digest rendering
// - pipeline: The stage orchestrator
// - discover: Feed URL discovery for configuration
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies in stage logic
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "newsdigest/core/fetch"
//	    "newsdigest/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create service
//	fetcher := fetch.NewService(deps, topics, 10*time.Minute)
//
//	// Fetch articles
//	articles, err := fetcher.Fetch(ctx, interfaces.FetchOptions{
//	    FreshnessHours: 24,
//	    MaxPerFeed:     50,
//	})
package core
