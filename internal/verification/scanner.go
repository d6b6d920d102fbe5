package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"supportdir/internal/directory/models"
	"supportdir/internal/directory/store/organisation"
	"supportdir/internal/events"
	"supportdir/internal/platform/config"
	"supportdir/internal/verification/metrics"
	"supportdir/pkg/derrors"
)

// Service drives one verification scan: classify every organisation, notify,
// demote, and aggregate the outcome into a BatchReport. Per-organisation
// failures never abort the batch; only a store enumeration failure does.
type Service struct {
	store      OrganisationStore
	dispatcher Dispatcher
	publisher  Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
	cfg        config.Verification
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the scanner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithPublisher sets the lifecycle event publisher.
func WithPublisher(publisher Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs the scanner.
func New(store OrganisationStore, dispatcher Dispatcher, cfg config.Verification, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("organisation store is required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("notification dispatcher is required")
	}

	if cfg.ReminderDay <= 0 {
		cfg.ReminderDay = 90
	}
	if cfg.ExpiryDay <= 0 {
		cfg.ExpiryDay = 100
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 15 * time.Second
	}

	s := &Service{
		store:      store,
		dispatcher: dispatcher,
		logger:     slog.Default(),
		tracer:     otel.Tracer("supportdir/verification"),
		cfg:        cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Scan processes every organisation against the given scan time. The worker
// pool bound keeps concurrent mail and store traffic inside external rate
// limits; counts are aggregated exactly, error order is unspecified.
func (s *Service) Scan(ctx context.Context, now time.Time) (*BatchReport, error) {
	ctx, span := s.tracer.Start(ctx, "verification.scan")
	defer span.End()
	start := time.Now()

	orgs, err := s.store.List(ctx)
	if err != nil {
		return nil, derrors.New(derrors.CategoryTransient, "verification.scan", "list organisations", err)
	}

	report := &BatchReport{Total: len(orgs)}
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Workers)

	for _, org := range orgs {
		if ctx.Err() != nil {
			// Stop starting new work; already-started units run to completion.
			report.Cancelled = true
			break
		}
		g.Go(func() error {
			s.process(ctx, org, now, report, &mu)
			return nil
		})
	}
	_ = g.Wait()

	duration := time.Since(start)
	span.SetAttributes(
		attribute.Int("organisations.total", report.Total),
		attribute.Int("reminders.sent", report.RemindersSent),
		attribute.Int("organisations.unverified", report.Unverified),
		attribute.Int("organisations.skipped", report.Skipped),
		attribute.Int("errors", len(report.Errors)),
		attribute.Bool("cancelled", report.Cancelled),
	)
	if s.metrics != nil {
		s.metrics.ObserveScan(duration, report.RemindersSent, report.Unverified, report.Skipped, len(report.Errors))
	}

	s.logger.Info("verification scan finished",
		"total", report.Total,
		"reminders_sent", report.RemindersSent,
		"unverified", report.Unverified,
		"skipped", report.Skipped,
		"errors", len(report.Errors),
		"cancelled", report.Cancelled,
		"duration", duration,
	)

	return report, nil
}

func (s *Service) process(ctx context.Context, org *models.Organisation, now time.Time, report *BatchReport, mu *sync.Mutex) {
	decision := Classify(org, now, s.cfg.ReminderDay, s.cfg.ExpiryDay)

	if decision.Skipped {
		s.logger.Debug("organisation skipped",
			"organisation_id", org.ID, "reason", decision.SkipReason)
		mu.Lock()
		report.Skipped++
		mu.Unlock()
		return
	}

	admin, _ := org.SelectedAdministrator()

	if decision.Remind {
		ok := s.sendWithTimeout(ctx, func(callCtx context.Context) bool {
			return s.dispatcher.SendReminder(callCtx, admin.Email, org.Name, decision.ElapsedDays)
		})
		if ok {
			mu.Lock()
			report.RemindersSent++
			mu.Unlock()
			s.emit(ctx, events.Event{
				Kind:           events.KindReminderSent,
				OrganisationID: org.ID,
				Organisation:   org.Name,
				Recipient:      admin.Email,
				ElapsedDays:    decision.ElapsedDays,
				At:             now,
			})
		} else {
			s.addError(report, mu, org.ID, "reminder delivery failed")
		}
	}

	if decision.Unverify {
		ok := s.sendWithTimeout(ctx, func(callCtx context.Context) bool {
			return s.dispatcher.SendExpiry(callCtx, admin.Email, org.Name)
		})
		if !ok {
			s.addError(report, mu, org.ID, "expiry notification delivery failed")
		}

		// The demotion is attempted even when the notification failed: an
		// organisation must not stay verified just because the mail provider
		// is down.
		s.unverify(ctx, org, decision, now, report, mu)
	}
}

func (s *Service) unverify(ctx context.Context, org *models.Organisation, decision Decision, now time.Time, report *BatchReport, mu *sync.Mutex) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	err := s.store.Unverify(callCtx, org.ID, now)
	switch {
	case err == nil:
		mu.Lock()
		report.Unverified++
		mu.Unlock()
		s.logger.Info("organisation unverified",
			"organisation_id", org.ID, "elapsed_days", decision.ElapsedDays)
		s.emit(ctx, events.Event{
			Kind:           events.KindOrganisationUnverified,
			OrganisationID: org.ID,
			Organisation:   org.Name,
			ElapsedDays:    decision.ElapsedDays,
			At:             now,
		})
	case errors.Is(err, organisation.ErrAlreadyUnverified):
		s.addError(report, mu, org.ID, "already unverified by an overlapping run")
	case errors.Is(err, organisation.ErrNotFound):
		s.addError(report, mu, org.ID, "organisation no longer exists")
	default:
		s.addError(report, mu, org.ID, fmt.Sprintf("unverify failed: %v", err))
	}
}

func (s *Service) sendWithTimeout(ctx context.Context, send func(context.Context) bool) bool {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	return send(callCtx)
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.Warn("lifecycle event publish failed",
			"kind", event.Kind, "organisation_id", event.OrganisationID, "error", err)
	}
}

func (s *Service) addError(report *BatchReport, mu *sync.Mutex, id uuid.UUID, message string) {
	mu.Lock()
	report.Errors = append(report.Errors, BatchError{OrganisationID: id, Message: message})
	mu.Unlock()
	s.logger.Warn("verification scan error", "organisation_id", id, "message", message)
}
