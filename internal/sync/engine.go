package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/fathomsync/fathomsync/internal/fathom"
	"github.com/fathomsync/fathomsync/internal/instrumentation"
	"github.com/fathomsync/fathomsync/internal/logging"
	"github.com/fathomsync/fathomsync/internal/state"
	"github.com/fathomsync/fathomsync/internal/transcript"
)

// Upstream is the slice of the Fathom API the engine needs.
type Upstream interface {
	ListMeetings(ctx context.Context) ([]fathom.Meeting, error)
	GetTranscript(ctx context.Context, recordingID string) (*fathom.Transcript, error)
}

// Artifact is the durable reference returned by a Publisher for an uploaded
// document.
type Artifact struct {
	ID   string
	Link string
}

// Publisher uploads a formatted transcript document somewhere durable.
type Publisher interface {
	Upload(ctx context.Context, filename, content string) (*Artifact, error)
}

// IndexAppender appends one row to the tabular index of synced meetings.
type IndexAppender interface {
	AppendRow(ctx context.Context, displayDate, link string) error
}

// Stats are the counters for one reconciliation cycle.
type Stats struct {
	New     int
	Skipped int
	Errors  int
}

// defaultPause is the courtesy pause after each successfully synced item,
// on top of the client-side rate limiting.
const defaultPause = 500 * time.Millisecond

// Engine runs reconciliation cycles. It is not safe for concurrent use;
// callers must ensure at most one RunCycle execution is in flight.
type Engine struct {
	upstream  Upstream
	store     *state.Store
	publisher Publisher
	index     IndexAppender

	logger  *slog.Logger
	metrics *instrumentation.Metrics
	tracer  trace.Tracer

	now   func() time.Time
	pause func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTracer attaches a tracer for cycle spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithNow replaces the clock used for sync timestamps. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPause replaces the courtesy pause between synced items. Intended for
// tests.
func WithPause(pause func()) Option {
	return func(e *Engine) { e.pause = pause }
}

// New creates an Engine wired to its collaborators.
func New(upstream Upstream, store *state.Store, publisher Publisher, index IndexAppender, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		upstream:  upstream,
		store:     store,
		publisher: publisher,
		index:     index,
		logger:    logging.WithService(logger, "sync"),
		tracer:    noop.NewTracerProvider().Tracer("sync"),
		now:       time.Now,
		pause:     func() { time.Sleep(defaultPause) },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunCycle performs one full reconciliation pass and returns its counters.
//
// A listing failure aborts the cycle cleanly with zero counters and no state
// writes; it is never conflated with an empty upstream. Per-item failures
// are counted and the loop continues. Nothing in a cycle terminates the
// process.
func (e *Engine) RunCycle(ctx context.Context) Stats {
	ctx, span := e.tracer.Start(ctx, "sync.cycle")
	defer span.End()

	start := time.Now()
	logger := logging.WithOperation(e.logger, "run_cycle")
	logger.Info("starting sync cycle")

	var stats Stats

	meetings, err := e.upstream.ListMeetings(ctx)
	if err != nil {
		logger.Error("failed to list meetings, aborting cycle", logging.Err(err))
		e.metrics.RecordCycle(ctx, instrumentation.StatusError, time.Since(start))
		return stats
	}

	if len(meetings) == 0 {
		logger.Info("no meetings found")
		e.metrics.RecordCycle(ctx, instrumentation.StatusSuccess, time.Since(start))
		return stats
	}

	logger.Info("reconciling meetings",
		slog.Int("total", len(meetings)),
		slog.Int("already_processed", e.store.ProcessedCount()))

	for _, m := range meetings {
		result := e.processOne(ctx, m)
		switch result {
		case instrumentation.ResultNew:
			stats.New++
		case instrumentation.ResultSkipped:
			stats.Skipped++
		case instrumentation.ResultError:
			stats.Errors++
		}
		e.metrics.RecordItem(ctx, result)
	}

	logger.Info("sync cycle complete",
		slog.Int("new", stats.New),
		slog.Int("skipped", stats.Skipped),
		slog.Int("errors", stats.Errors),
		slog.Duration(logging.KeyDuration, time.Since(start)))
	e.metrics.RecordCycle(ctx, instrumentation.StatusSuccess, time.Since(start))

	return stats
}

// processOne handles a single meeting and reports its outcome. Panics are
// absorbed at this boundary so that one broken item can never abort the
// cycle.
func (e *Engine) processOne(ctx context.Context, m fathom.Meeting) (result string) {
	id := m.RecordingID.String()
	title := m.DisplayTitle()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic while processing meeting",
				logging.Recording(id), logging.Title(title),
				slog.Any("panic", r))
			result = instrumentation.ResultError
		}
	}()

	if id == "" {
		e.logger.Warn("meeting has no recording id, skipping", logging.Title(title))
		return instrumentation.ResultSkipped
	}
	if e.store.IsProcessed(id) {
		return instrumentation.ResultSkipped
	}

	logger := e.logger.With(logging.Recording(id), logging.Title(title))
	logger.Info("processing meeting")

	tr, err := e.upstream.GetTranscript(ctx, id)
	if err != nil {
		if errors.Is(err, fathom.ErrRetriesExhausted) || fathom.IsTerminal(err) {
			// Permanently unfetchable: mark with the sentinel so it is
			// never attempted again.
			logger.Warn("transcript unavailable, marking with sentinel", logging.Err(err))
			e.store.MarkProcessed(id, state.SentinelRef, e.now())
			return instrumentation.ResultError
		}
		logger.Error("transcript fetch failed", logging.Err(err))
		return instrumentation.ResultError
	}

	if tr == nil || len(tr.Entries) == 0 {
		// Not marked processed: the transcript may simply not be ready
		// yet, so the item is retried on a future cycle.
		logger.Warn("no transcript content yet, will retry next cycle")
		return instrumentation.ResultError
	}

	content := transcript.FormatDocument(title, m, tr)
	filename := transcript.Filename(id, title)

	artifact, err := e.publisher.Upload(ctx, filename, content)
	if err != nil {
		logger.Error("upload failed", logging.Err(err))
		return instrumentation.ResultError
	}
	if artifact.Link == "" {
		logger.Warn("upload succeeded but returned no link")
	}

	displayDate := transcript.DisplayDate(m, e.now)
	if err := e.index.AppendRow(ctx, displayDate, artifact.Link); err != nil {
		logger.Error("index append failed", logging.Err(err))
		return instrumentation.ResultError
	}

	e.store.MarkProcessed(id, artifact.ID, e.now())
	logger.Info("meeting synced", slog.String("link", artifact.Link))

	e.pause()
	return instrumentation.ResultNew
}

// String renders the counters for log and CLI output.
func (s Stats) String() string {
	return fmt.Sprintf("new=%d skipped=%d errors=%d", s.New, s.Skipped, s.Errors)
}
