package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ghostleg/pkg/observability"
	"github.com/matzehuels/ghostleg/pkg/round"
)

// newLogger returns the CLI logger. Round, store and request events from the
// library packages arrive at debug level through installHooks, so they only
// show with --verbose.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logRound logs what is needed to replay r: its id, size and seed.
func logRound(ctx context.Context, msg string, r *round.Round) {
	loggerFromContext(ctx).Debug(msg, "round", r.ID, "lanes", r.Lanes(), "rows", r.Rows, "seed", r.Seed)
}

// progress times one step of a command, such as writing an export file.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time:
//
//	INFO exported file=ladder.svg bytes=5120 took=412ms
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Library Events
// =============================================================================

// logHooks turns round, store and HTTP events into log lines.
type logHooks struct {
	logger *log.Logger
}

// installHooks routes every observability hook to l.
func installHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetRoundHooks(h)
	observability.SetStoreHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *logHooks) OnGenerate(_ context.Context, id string, lanes, rungs int, d time.Duration) {
	h.logger.Debug("ladder generated", "round", id, "lanes", lanes, "rungs", rungs, "took", d)
}

func (h *logHooks) OnTrace(_ context.Context, id string, start, final int) {
	h.logger.Debug("lane traced", "round", id, "start", start, "final", final)
}

func (h *logHooks) OnSave(_ context.Context, backend, id string, err error) {
	if err != nil {
		h.logger.Warn("save failed", "backend", backend, "round", id, "err", err)
		return
	}
	h.logger.Debug("round saved", "backend", backend, "round", id)
}

// OnLoad warns on errors, which include stored rounds that no longer
// validate and are skipped by listings.
func (h *logHooks) OnLoad(_ context.Context, backend, id string, hit bool, err error) {
	if err != nil {
		h.logger.Warn("load failed", "backend", backend, "round", id, "err", err)
		return
	}
	h.logger.Debug("round loaded", "backend", backend, "round", id, "hit", hit)
}

func (h *logHooks) OnDelete(_ context.Context, backend, id string, err error) {
	h.logger.Debug("round deleted", "backend", backend, "round", id, "err", err)
}

func (h *logHooks) OnRequest(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("request", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}

var (
	_ observability.RoundHooks = (*logHooks)(nil)
	_ observability.StoreHooks = (*logHooks)(nil)
	_ observability.HTTPHooks  = (*logHooks)(nil)
)
