// Operational endpoint for triggering a verification scan outside the daily
// schedule.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"supportdir/internal/verification"
	"supportdir/pkg/platform/httputil"
)

// Runner triggers one synchronous scan; satisfied by *verification.Scheduler.
type Runner interface {
	RunOnce(ctx context.Context, now time.Time) (*verification.BatchReport, error)
}

// Handler wires the manual-run endpoint to the scheduler.
type Handler struct {
	runner Runner
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures the Handler.
type Option func(*Handler)

// WithClock sets the scan-time source; used by tests.
func WithClock(clock func() time.Time) Option {
	return func(h *Handler) {
		h.clock = clock
	}
}

// New constructs the verification ops handler.
func New(runner Runner, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		runner: runner,
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the ops endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/ops/verification/run", h.HandleRun)
}

// HandleRun handles POST /ops/verification/run. The scan runs synchronously
// and the full batch report is returned to the caller.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	now := h.clock().UTC()

	report, err := h.runner.RunOnce(r.Context(), now)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "manual verification run failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "manual verification run finished",
		"total", report.Total,
		"reminders_sent", report.RemindersSent,
		"unverified", report.Unverified,
		"errors", len(report.Errors),
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}
