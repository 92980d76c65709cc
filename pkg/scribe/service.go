// Package scribe runs clinical-note sessions: it turns speaker-attributed
// utterances into a cumulative report, scores the captured fields and looks
// up similar historical cases.
package scribe

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/synaptica-ai/scribe/pkg/common/logger"
	"github.com/synaptica-ai/scribe/pkg/common/models"
	"github.com/synaptica-ai/scribe/pkg/extraction"
	"github.com/synaptica-ai/scribe/pkg/observability/metrics"
	"github.com/synaptica-ai/scribe/pkg/render"
	"github.com/synaptica-ai/scribe/pkg/report"
	"github.com/synaptica-ai/scribe/pkg/similarity"
	"github.com/synaptica-ai/scribe/pkg/storage"
	"github.com/synaptica-ai/scribe/pkg/terminology"
)

const eventSource = "scribe-service"

type Publisher interface {
	PublishEvent(ctx context.Context, eventType, source, key string, data map[string]interface{}) error
}

type SnapshotStore interface {
	Save(ctx context.Context, handle string, snap storage.Snapshot) error
	Delete(ctx context.Context, handle string) error
}

// SnapshotReader is implemented by snapshot stores that can serve reads for
// sessions this process no longer holds.
type SnapshotReader interface {
	Load(ctx context.Context, handle string) (storage.Snapshot, error)
}

type Archiver interface {
	Save(ctx context.Context, handle string, final report.FinalReport) error
}

type ExportHistory interface {
	ListByHandle(ctx context.Context, handle string, limit int) ([]storage.ArchivedReport, error)
}

type Renderer interface {
	Render(ctx context.Context, final report.FinalReport, format render.Format) (*render.Document, error)
}

// Result is what a caller gets back for one utterance.
type Result struct {
	Report           report.Report            `json:"report"`
	ConfidenceScores map[string]float64       `json:"confidenceScores"`
	SimilarCases     []similarity.RankedMatch `json:"similarCases"`
}

// session pairs an aggregator with the lock that orders its side effects:
// an update and the snapshot/event it produces happen under one hold, so the
// cache and the report topic never see an older state after a newer one.
type session struct {
	mu        sync.Mutex
	closed    bool
	handle    string
	createdAt time.Time
	agg       *report.Aggregator
}

type Option func(*Service)

func WithAnalyzer(a *extraction.Analyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.analyzer = a
		}
	}
}

func WithMatcher(m *similarity.Matcher) Option {
	return func(s *Service) {
		if m != nil {
			s.matcher = m
		}
	}
}

func WithCatalog(c terminology.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithSnapshotStore(store SnapshotStore) Option {
	return func(s *Service) { s.snapshots = store }
}

func WithArchive(a Archiver) Option {
	return func(s *Service) { s.archive = a }
}

func WithRenderer(r Renderer) Option {
	return func(s *Service) { s.renderer = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service owns every live session. Each session's updates are serialized by
// its aggregator; the registry itself is guarded separately.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*session

	analyzer *extraction.Analyzer
	matcher  *similarity.Matcher
	corpus   *similarity.Corpus
	catalog  terminology.Catalog
	topK     int

	publisher Publisher
	snapshots SnapshotStore
	archive   Archiver
	renderer  Renderer
	now       func() time.Time
}

func NewService(opts ...Option) *Service {
	s := &Service{
		sessions: make(map[string]*session),
		corpus:   similarity.NewCorpus(),
		catalog:  terminology.DefaultCatalog(),
		topK:     similarity.DefaultTopK,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.analyzer == nil {
		s.analyzer = extraction.NewAnalyzer(nil)
	}
	if s.matcher == nil {
		s.matcher = similarity.NewMatcher(nil)
	}
	return s
}

// CreateSession registers a new session and returns its handle. The handle
// survives resets; the report's own session id does not.
func (s *Service) CreateSession() string {
	handle := uuid.New().String()
	s.mu.Lock()
	s.sessions[handle] = s.newSession(handle)
	count := len(s.sessions)
	s.mu.Unlock()
	metrics.SetActiveSessions(count)
	logger.WithSession(handle).Info("session created")
	return handle
}

func (s *Service) newSession(handle string) *session {
	return &session{
		handle:    handle,
		createdAt: s.now().UTC(),
		agg:       report.NewAggregator(s.analyzer, report.WithClock(s.now)),
	}
}

func (s *Service) lookup(handle string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[handle]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) getOrCreate(handle string) *session {
	if sess, err := s.lookup(handle); err == nil {
		return sess
	}
	s.mu.Lock()
	sess, ok := s.sessions[handle]
	if !ok {
		sess = s.newSession(handle)
		s.sessions[handle] = sess
	}
	count := len(s.sessions)
	s.mu.Unlock()
	if !ok {
		metrics.SetActiveSessions(count)
		logger.WithSession(handle).Info("session created lazily")
	}
	return sess
}

// lockSession returns the live session for handle, created if needed, with
// its lock held. A session closed while we waited is replaced.
func (s *Service) lockSession(handle string) *session {
	for {
		sess := s.getOrCreate(handle)
		sess.mu.Lock()
		if !sess.closed {
			return sess
		}
		sess.mu.Unlock()
	}
}

// SessionCreatedAt reports when a handle was registered.
func (s *Service) SessionCreatedAt(handle string) (time.Time, error) {
	sess, err := s.lookup(handle)
	if err != nil {
		return time.Time{}, err
	}
	return sess.createdAt, nil
}

// ProcessUtterance merges one utterance into the session's report. Unknown
// handles are created on first use. Free text never causes an error.
func (s *Service) ProcessUtterance(ctx context.Context, handle, text, speakerLabel, timestamp string) (*Result, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, ValidationError{reason: errMissingSession}
	}
	sess := s.lockSession(handle)
	defer sess.mu.Unlock()

	update := sess.agg.Update(report.Utterance{Text: text, Speaker: speakerLabel, Timestamp: timestamp})
	metrics.ObserveUtterance(string(update.Role), update.Analysis.IsEmpty())

	matches := s.matcher.FindSimilarCases(update.Analysis, s.corpus.Records(), s.topK)
	metrics.ObserveSimilarity(len(matches))

	logger.WithSession(handle).WithFields(map[string]interface{}{
		"role":          update.Role,
		"fields":        len(update.Scores),
		"similar_cases": len(matches),
	}).Debug("utterance processed")

	s.afterUpdate(ctx, handle, update.Report, update.Scores)

	return &Result{
		Report:           update.Report,
		ConfidenceScores: update.Scores,
		SimilarCases:     matches,
	}, nil
}

// afterUpdate publishes and caches the new state. Failures are logged only.
func (s *Service) afterUpdate(ctx context.Context, handle string, r report.Report, scores map[string]float64) {
	if s.snapshots != nil {
		snap := storage.Snapshot{Report: r, ConfidenceScores: scores, UpdatedAt: s.now().UTC()}
		if err := s.snapshots.Save(ctx, handle, snap); err != nil {
			logger.WithSession(handle).WithError(err).Warn("failed to cache report snapshot")
		}
	}
	if s.publisher != nil {
		data := map[string]interface{}{
			"session_id":        handle,
			"report_session_id": r.SessionID,
			"confidence_scores": scores,
			"symptoms":          r.Patient.Symptoms,
			"presenting":        r.Patient.PresentingComplaint,
		}
		if err := s.publisher.PublishEvent(ctx, models.EventReportUpdated, eventSource, handle, data); err != nil {
			logger.WithSession(handle).WithError(err).Warn("failed to publish report update")
		}
	}
}

// ResetSession replaces the session's report with an empty one.
func (s *Service) ResetSession(ctx context.Context, handle string) error {
	sess, err := s.lookup(handle)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return ErrSessionNotFound
	}

	sess.agg.Reset()
	logger.WithSession(handle).Info("session reset")
	s.afterUpdate(ctx, handle, sess.agg.Snapshot(), sess.agg.Scores())
	return nil
}

func (s *Service) Snapshot(handle string) (report.Report, error) {
	sess, err := s.lookup(handle)
	if err != nil {
		return report.Report{}, err
	}
	return sess.agg.Snapshot(), nil
}

// CachedSnapshot reads the last snapshot written to the snapshot store.
func (s *Service) CachedSnapshot(ctx context.Context, handle string) (storage.Snapshot, error) {
	reader, ok := s.snapshots.(SnapshotReader)
	if !ok {
		return storage.Snapshot{}, ErrSessionNotFound
	}
	snap, err := reader.Load(ctx, handle)
	if errors.Is(err, storage.ErrSnapshotNotFound) {
		return storage.Snapshot{}, ErrSessionNotFound
	}
	return snap, err
}

func (s *Service) ConfidenceScores(handle string) (map[string]float64, error) {
	sess, err := s.lookup(handle)
	if err != nil {
		return nil, err
	}
	return sess.agg.Scores(), nil
}

// FinalReport exports the session. Every call mints new patient and
// encounter ids; archiving is best-effort.
func (s *Service) FinalReport(ctx context.Context, handle string) (report.FinalReport, error) {
	sess, err := s.lookup(handle)
	if err != nil {
		return report.FinalReport{}, err
	}
	final := sess.agg.Final(report.FinalOptions{Catalog: s.catalog, Now: s.now})
	metrics.IncFinalReports()

	if s.archive != nil {
		if err := s.archive.Save(ctx, handle, final); err != nil {
			logger.WithSession(handle).WithError(err).Warn("failed to archive final report")
		}
	}
	if s.publisher != nil {
		data := map[string]interface{}{
			"session_id": handle,
			"patient_id": final.PatientID,
		}
		if err := s.publisher.PublishEvent(ctx, models.EventReportFinalized, eventSource, handle, data); err != nil {
			logger.WithSession(handle).WithError(err).Warn("failed to publish final report event")
		}
	}
	return final, nil
}

// Exports lists archived final reports for a handle, newest first.
func (s *Service) Exports(ctx context.Context, handle string, limit int) ([]storage.ArchivedReport, error) {
	history, ok := s.archive.(ExportHistory)
	if !ok {
		return nil, ErrArchiveDisabled
	}
	return history.ListByHandle(ctx, handle, limit)
}

// Render exports the session and hands it to the rendering collaborator.
func (s *Service) Render(ctx context.Context, handle string, format render.Format) (*render.Document, error) {
	if s.renderer == nil {
		return nil, render.ErrNotConfigured
	}
	final, err := s.FinalReport(ctx, handle)
	if err != nil {
		return nil, err
	}
	doc, err := s.renderer.Render(ctx, final, format)
	if err != nil {
		metrics.IncRenderFailures()
		logger.WithSession(handle).WithError(err).Warn("render failed")
		return nil, err
	}
	return doc, nil
}

func (s *Service) CloseSession(ctx context.Context, handle string) error {
	s.mu.Lock()
	sess, ok := s.sessions[handle]
	delete(s.sessions, handle)
	count := len(s.sessions)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	sess.mu.Lock()
	sess.closed = true
	defer sess.mu.Unlock()

	metrics.SetActiveSessions(count)
	if s.snapshots != nil {
		if err := s.snapshots.Delete(ctx, handle); err != nil {
			logger.WithSession(handle).WithError(err).Warn("failed to drop cached snapshot")
		}
	}
	logger.WithSession(handle).Info("session closed")
	return nil
}

func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// LoadCaseCorpus replaces the similarity corpus.
func (s *Service) LoadCaseCorpus(records []similarity.CaseRecord) {
	s.corpus.Load(records)
	metrics.SetCorpusSize(len(records))
	logger.Log.WithField("records", len(records)).Info("case corpus loaded")
}

// LoadCorpusFrom loads the corpus from src. On failure the service keeps
// running with whatever corpus it had, possibly none, and matching returns
// fewer or no cases.
func (s *Service) LoadCorpusFrom(ctx context.Context, src similarity.Source) error {
	n, err := s.corpus.LoadFrom(ctx, src)
	if err != nil {
		logger.Log.WithError(err).Warn("case corpus unavailable, similar-case matching degraded")
		return err
	}
	metrics.SetCorpusSize(n)
	logger.Log.WithField("records", n).Info("case corpus loaded")
	return nil
}

func (s *Service) CorpusSize() int {
	return s.corpus.Size()
}
