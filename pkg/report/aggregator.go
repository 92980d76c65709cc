package report

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/synaptica-ai/scribe/pkg/confidence"
	"github.com/synaptica-ai/scribe/pkg/extraction"
)

// Utterance is one attributed unit of conversation text.
type Utterance struct {
	Text      string
	Speaker   string
	Timestamp string
}

// Update is the outcome of merging a single utterance.
type Update struct {
	Analysis extraction.AnalysisResult
	Role     Role
	Report   Report
	Scores   map[string]float64
}

type Option func(*Aggregator)

// WithClock overrides the time source used for defaults and creation stamps.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithIDGenerator overrides how report session ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(a *Aggregator) {
		if newID != nil {
			a.newID = newID
		}
	}
}

// Aggregator owns the working Report for one session. All methods are safe
// for concurrent use; updates are applied one at a time in call order.
type Aggregator struct {
	mu       sync.Mutex
	analyzer *extraction.Analyzer
	report   *Report
	scores   map[string]float64
	sources  []DataSource
	now      func() time.Time
	newID    func() string
}

func NewAggregator(analyzer *extraction.Analyzer, opts ...Option) *Aggregator {
	if analyzer == nil {
		analyzer = extraction.NewAnalyzer(nil)
	}
	a := &Aggregator{
		analyzer: analyzer,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.resetLocked()
	return a
}

// Update analyzes the utterance and merges it into the report.
func (a *Aggregator) Update(u Utterance) Update {
	analysis := a.analyzer.Analyze(u.Text)
	role := ParseRole(u.Speaker)

	a.mu.Lock()
	defer a.mu.Unlock()

	timestamp := strings.TrimSpace(u.Timestamp)
	if timestamp == "" {
		timestamp = a.now().UTC().Format(time.RFC3339)
	}

	scores := confidence.Scores(analysis)
	a.track(analysis, scores, u, timestamp)

	applyRole(a.report, role, analysis, timestamp)
	applyGeneric(a.report, analysis)

	for field, score := range scores {
		a.scores[field] = score
	}

	return Update{
		Analysis: cloneAnalysis(analysis),
		Role:     role,
		Report:   a.report.Clone(),
		Scores:   a.scoresLocked(),
	}
}

// track appends one audit record per populated field.
func (a *Aggregator) track(analysis extraction.AnalysisResult, scores map[string]float64, u Utterance, timestamp string) {
	speaker := strings.TrimSpace(u.Speaker)
	if speaker == "" {
		speaker = string(RoleUnknown)
	}
	source := Source{Speaker: speaker, Timestamp: timestamp, Context: u.Text}
	populated := analysis.Populated()
	if len(populated) == 0 {
		a.sources = append(a.sources, DataSource{Field: FieldUtterance, Value: "", Source: source})
		return
	}
	for _, fv := range populated {
		src := source
		src.Confidence = scores[fv.Field]
		a.sources = append(a.sources, DataSource{Field: fv.Field, Value: fv.Value, Source: src})
	}
}

// Reset discards the report, its scores and its audit trail. The new report
// gets a fresh session id.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetLocked()
}

func (a *Aggregator) resetLocked() {
	a.report = newReport(a.newID(), a.now().UTC().Format(time.RFC3339))
	a.scores = make(map[string]float64)
	a.sources = nil
}

// Snapshot returns a deep copy of the current report.
func (a *Aggregator) Snapshot() Report {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.report.Clone()
}

func (a *Aggregator) Scores() map[string]float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scoresLocked()
}

func (a *Aggregator) scoresLocked() map[string]float64 {
	out := make(map[string]float64, len(a.scores))
	for k, v := range a.scores {
		out[k] = v
	}
	return out
}

// Sources returns the audit trail in the order updates were tracked.
func (a *Aggregator) Sources() []DataSource {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]DataSource{}, a.sources...)
}

// Final projects the current state into an export document.
func (a *Aggregator) Final(opts FinalOptions) FinalReport {
	a.mu.Lock()
	snapshot := a.report.Clone()
	scores := a.scoresLocked()
	sources := append([]DataSource{}, a.sources...)
	a.mu.Unlock()

	if opts.Now == nil {
		opts.Now = a.now
	}
	return GenerateFinalReport(snapshot, scores, sources, opts)
}
