// ABOUTME: Pipeline run state, stage deltas and the merge rules between them
// ABOUTME: Stages see the state by value and describe changes as a Delta

package pipeline

import "newsdigest/core/domain"

// Status tracks how far a run has progressed. FAILED is absorbing: once a
// stage sets the error marker no later stage does real work.
type Status string

const (
	StatusInit          Status = "INIT"
	StatusFetched       Status = "FETCHED"
	StatusDedupedScored Status = "DEDUPED_SCORED"
	StatusRendered      Status = "RENDERED"
	StatusDispatched    Status = "DISPATCHED"
	StatusFailed        Status = "FAILED"
)

// Stats are the run counters reported at the end of a run.
type Stats struct {
	// Fetched is the raw article count across all feeds.
	Fetched int

	// AfterDedupe is the count surviving title deduplication.
	AfterDedupe int

	// PassedFilter is the count at or above the score threshold.
	PassedFilter int

	// EmailSent is true only when the transport confirmed delivery.
	EmailSent bool
}

// State is the full run state threaded through the stages.
type State struct {
	RawArticles    []domain.Article
	ScoredArticles []domain.Article
	DigestMarkdown string
	DigestHTML     string

	// MinScore is the inclusive relevance threshold.
	MinScore float64

	// MaxArticles caps how many articles are scored; 0 means no cap.
	MaxArticles int

	// DryRun skips the delivery transport.
	DryRun bool

	// Err is the error marker. Set once, never cleared.
	Err error

	Stats  Stats
	Status Status
}

// Delta is a stage's description of what changed. Nil slices and nil
// pointers mean "unchanged"; non-nil values replace the state's field.
type Delta struct {
	RawArticles    []domain.Article
	ScoredArticles []domain.Article
	DigestMarkdown *string
	DigestHTML     *string
	Stats          StatsDelta
	Err            error
}

// StatsDelta patches individual counters without clobbering the rest.
type StatsDelta struct {
	Fetched      *int
	AfterDedupe  *int
	PassedFilter *int
	EmailSent    *bool
}

// merge applies a delta and advances the status. An error in the delta
// moves the run to FAILED regardless of the stage's nominal next status.
func (s State) merge(d Delta, next Status) State {
	if d.RawArticles != nil {
		s.RawArticles = d.RawArticles
	}
	if d.ScoredArticles != nil {
		s.ScoredArticles = d.ScoredArticles
	}
	if d.DigestMarkdown != nil {
		s.DigestMarkdown = *d.DigestMarkdown
	}
	if d.DigestHTML != nil {
		s.DigestHTML = *d.DigestHTML
	}

	if d.Stats.Fetched != nil {
		s.Stats.Fetched = *d.Stats.Fetched
	}
	if d.Stats.AfterDedupe != nil {
		s.Stats.AfterDedupe = *d.Stats.AfterDedupe
	}
	if d.Stats.PassedFilter != nil {
		s.Stats.PassedFilter = *d.Stats.PassedFilter
	}
	if d.Stats.EmailSent != nil {
		s.Stats.EmailSent = *d.Stats.EmailSent
	}

	if d.Err != nil {
		s.Err = d.Err
		s.Status = StatusFailed
		return s
	}

	s.Status = next
	return s
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }
