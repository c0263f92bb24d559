package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/event"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/lock"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/metrics"
)

// CourtCatalog is the slice of the court catalog the engine reads.
type CourtCatalog interface {
	GetByID(ctx context.Context, id string) (*court.Court, error)
}

type CreateRequest struct {
	UserID  string
	CourtID string
	Date    string   // YYYY-MM-DD
	Slots   []string // HH:00 slot starts
	Notes   string
}

type Service interface {
	Availability(ctx context.Context, courtID, date string) (*Availability, error)
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	Approve(ctx context.Context, id, adminNotes string) (*Reservation, error)
	Reject(ctx context.Context, id, adminNotes string) (*Reservation, error)
	Cancel(ctx context.Context, id, requesterID string, isAdmin bool) (*Reservation, error)
	Complete(ctx context.Context, id string) (*Reservation, error)
	CompleteElapsed(ctx context.Context) (int, error)
	RunSweeper(ctx context.Context, interval time.Duration)
	Summarize(ctx context.Context) (map[Status]Summary, error)
}

// Options tunes the engine. Zero values fall back to defaults.
type Options struct {
	// BookingWindowDays is how many days, starting today, accept new
	// reservations. Zero disables the upper bound.
	BookingWindowDays int
	// Location decides what "today" and a reservation's end instant mean.
	Location *time.Location
	Now      func() time.Time
	Lock     lock.Options
}

type service struct {
	repo      Repository
	courts    CourtCatalog
	locker    lock.Locker
	publisher event.Publisher
	log       *zap.Logger
	opts      Options
}

func NewService(repo Repository, courts CourtCatalog, locker lock.Locker, publisher event.Publisher, log *zap.Logger, opts Options) Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Lock == (lock.Options{}) {
		opts.Lock = lock.DefaultOptions
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		repo:      repo,
		courts:    courts,
		locker:    locker,
		publisher: publisher,
		log:       log,
		opts:      opts,
	}
}

func (s *service) today() time.Time {
	return CivilDate(s.opts.Now(), s.opts.Location)
}

func scheduleKey(courtID string, date time.Time) string {
	return fmt.Sprintf("reservation:court:%s:%s", courtID, date.Format(DateLayout))
}

func (s *service) lookupCourt(ctx context.Context, courtID string) (*court.Court, error) {
	c, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, apperror.Newf(ErrCourtNotFound, "court %s not found", courtID)
		}
		return nil, err
	}
	return c, nil
}

func (s *service) Availability(ctx context.Context, courtID, date string) (*Availability, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.lookupCourt(ctx, courtID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByCourtAndDate(ctx, courtID, day)
	if err != nil {
		return nil, err
	}
	metrics.RecordAvailabilityQuery()
	return CalculateAvailability(courtID, day, existing), nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	r, err := s.create(ctx, req)
	if err != nil {
		metrics.RecordValidationFailure(failureReason(err))
		return nil, err
	}

	metrics.RecordReservation(string(r.Status))
	s.log.Info("reservation requested",
		zap.String("reservation_id", r.ID),
		zap.String("user_id", r.UserID),
		zap.String("court_id", r.CourtID),
		zap.String("date", r.Date.Format(DateLayout)),
		zap.Stringer("start", r.StartTime),
		zap.Stringer("end", r.EndTime),
	)
	s.publish(ctx, event.ReservationCreated, r)
	return r, nil
}

// create validates and commits in order: slot selection, court, date window,
// then a fresh conflict check under the court-day lock.
func (s *service) create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, apperror.Newf(ErrInvalidInput, "user is required")
	}
	day, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	hours, err := NormalizeSelection(req.Slots)
	if err != nil {
		return nil, err
	}

	c, err := s.lookupCourt(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if !c.Bookable() {
		return nil, apperror.Newf(ErrCourtUnavailable, "court %s is %s", c.ID, c.Status)
	}

	today := s.today()
	if day.Before(today) {
		return nil, apperror.Newf(ErrDateOutOfRange, "date %s is in the past", day.Format(DateLayout))
	}
	if w := s.opts.BookingWindowDays; w > 0 && day.After(today.AddDate(0, 0, w-1)) {
		return nil, apperror.Newf(ErrDateOutOfRange, "date %s is more than %d days ahead", day.Format(DateLayout), w)
	}

	release, err := lock.Acquire(ctx, s.locker, scheduleKey(c.ID, day), s.opts.Lock)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, ErrScheduleBusy
		}
		return nil, err
	}
	defer release()

	existing, err := s.repo.ListByCourtAndDate(ctx, c.ID, day)
	if err != nil {
		return nil, err
	}
	grid := CalculateAvailability(c.ID, day, existing)
	for _, h := range hours {
		if slot, _ := grid.Slot(h); !slot.Available {
			return nil, apperror.Newf(ErrConflict, "slot %s is no longer available", h)
		}
	}

	start, end := hours[0], hours[len(hours)-1]+1
	r := &Reservation{
		UserID:     req.UserID,
		CourtID:    c.ID,
		Date:       day,
		StartTime:  start,
		EndTime:    end,
		Duration:   len(hours),
		TotalPrice: c.PricePerHour * int64(len(hours)),
		Status:     StatusPending,
		Notes:      strings.TrimSpace(req.Notes),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrCourtNotFound):
		return "court_not_found"
	case errors.Is(err, ErrDateOutOfRange):
		return "date_out_of_range"
	case errors.Is(err, ErrCourtUnavailable):
		return "court_unavailable"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Approve(ctx context.Context, id, adminNotes string) (*Reservation, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	release, err := lock.Acquire(ctx, s.locker, scheduleKey(current.CourtID, current.Date), s.opts.Lock)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, ErrScheduleBusy
		}
		return nil, err
	}
	defer release()

	return s.transition(ctx, id, StatusApproved, &adminNotes, event.ReservationApproved)
}

func (s *service) Reject(ctx context.Context, id, adminNotes string) (*Reservation, error) {
	return s.transition(ctx, id, StatusRejected, &adminNotes, event.ReservationRejected)
}

func (s *service) Cancel(ctx context.Context, id, requesterID string, isAdmin bool) (*Reservation, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && current.UserID != requesterID {
		return nil, ErrPermissionDenied
	}
	return s.transition(ctx, id, StatusCancelled, nil, event.ReservationCancelled)
}

func (s *service) Complete(ctx context.Context, id string) (*Reservation, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == StatusApproved && s.opts.Now().Before(current.EndsAt(s.opts.Location)) {
		return nil, apperror.Newf(ErrNotElapsed, "reservation %s ends at %s", id, current.EndsAt(s.opts.Location).Format(time.RFC3339))
	}
	return s.transition(ctx, id, StatusCompleted, nil, event.ReservationCompleted)
}

// CompleteElapsed marks every approved reservation whose end time has passed
// as completed and returns how many were moved.
func (s *service) CompleteElapsed(ctx context.Context) (int, error) {
	candidates, err := s.repo.ListApprovedThrough(ctx, s.today())
	if err != nil {
		return 0, err
	}

	now := s.opts.Now()
	done := 0
	for _, r := range candidates {
		if now.Before(r.EndsAt(s.opts.Location)) {
			continue
		}
		if _, err := s.transition(ctx, r.ID, StatusCompleted, nil, event.ReservationCompleted); err != nil {
			// Raced with a cancellation or another sweeper.
			if errors.Is(err, ErrInvalidTransition) {
				continue
			}
			return done, err
		}
		done++
	}
	return done, nil
}

// RunSweeper calls CompleteElapsed every interval until ctx is done.
func (s *service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.CompleteElapsed(ctx)
			if err != nil {
				s.log.Error("complete elapsed reservations failed", zap.Error(err))
				continue
			}
			if n > 0 {
				s.log.Info("completed elapsed reservations", zap.Int("count", n))
			}
		}
	}
}

func (s *service) Summarize(ctx context.Context) (map[Status]Summary, error) {
	return s.repo.Summarize(ctx)
}

func (s *service) transition(ctx context.Context, id string, to Status, adminNotes *string, key string) (*Reservation, error) {
	r, err := s.repo.UpdateStatus(ctx, id, to, adminNotes)
	if err != nil {
		return nil, err
	}

	metrics.RecordReservation(string(r.Status))
	s.log.Info("reservation status changed",
		zap.String("reservation_id", r.ID),
		zap.String("status", string(r.Status)),
	)
	s.publish(ctx, key, r)
	return r, nil
}

// publish is best effort: a broker outage must not undo a committed change.
func (s *service) publish(ctx context.Context, key string, r *Reservation) {
	if s.publisher == nil {
		return
	}
	payload := event.ReservationEvent{
		ReservationID: r.ID,
		UserID:        r.UserID,
		CourtID:       r.CourtID,
		Date:          r.Date.Format(DateLayout),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		Status:        string(r.Status),
		TotalPrice:    r.TotalPrice,
		AdminNotes:    r.AdminNotes,
		OccurredAt:    s.opts.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		s.log.Warn("publish reservation event failed", zap.String("key", key), zap.Error(err))
	}
}
