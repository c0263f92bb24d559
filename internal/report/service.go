package report

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/file"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/metrics"
)

// MaxPhotoBytes caps a single report photo upload.
const MaxPhotoBytes = 5 << 20

type CourtCatalog interface {
	GetByID(ctx context.Context, id string) (*court.Court, error)
}

// PhotoStore keeps uploaded photos and their thumbnails.
type PhotoStore interface {
	Upload(ctx context.Context, in file.UploadInput) (*file.File, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	CourtID     string
	UserID      string
	Type        string
	Severity    string
	Title       string
	Description string
}

// UpdateRequest carries the administrator's review. Nil means unchanged.
type UpdateRequest struct {
	Status        *string
	AdminResponse *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Report, error)
	GetByID(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, filter Filter) ([]*Report, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Report, error)
	AddPhoto(ctx context.Context, id, requesterID string, isAdmin bool, filename string, content io.Reader) (*Report, *file.File, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type service struct {
	repo   Repository
	courts CourtCatalog
	photos PhotoStore
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, courts CourtCatalog, photos PhotoStore, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		repo:   repo,
		courts: courts,
		photos: photos,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Report, error) {
	t := Type(req.Type)
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	sev := Severity(req.Severity)
	if !sev.Valid() {
		return nil, ErrInvalidSeverity
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, ErrDescRequired
	}

	if _, err := s.courts.GetByID(ctx, req.CourtID); err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	r := &Report{
		CourtID:     req.CourtID,
		UserID:      req.UserID,
		Type:        t,
		Severity:    sev,
		Title:       title,
		Description: desc,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	metrics.RecordReport(string(t), string(sev))
	s.log.Info("court report filed",
		zap.String("report_id", r.ID),
		zap.String("court_id", r.CourtID),
		zap.String("type", string(t)),
		zap.String("severity", string(sev)),
	)
	return r, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Report, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Report, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && Status(*req.Status) != r.Status {
		to := Status(*req.Status)
		if !CanTransition(r.Status, to) {
			return nil, apperror.Newf(ErrInvalidTransition, "cannot move report from %s to %s", r.Status, to)
		}
		r.Status = to
		if !to.Open() {
			now := s.now()
			r.ResolvedAt = &now
		}
	}
	if req.AdminResponse != nil {
		r.AdminResponse = strings.TrimSpace(*req.AdminResponse)
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.log.Info("court report updated", zap.String("report_id", r.ID), zap.String("status", string(r.Status)))
	return r, nil
}

// AddPhoto attaches an image to a report. Only the reporter or an
// administrator may add photos.
func (s *service) AddPhoto(ctx context.Context, id, requesterID string, isAdmin bool, filename string, content io.Reader) (*Report, *file.File, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !isAdmin && r.UserID != requesterID {
		return nil, nil, ErrPermissionDenied
	}
	if len(r.Images) >= MaxPhotos {
		return nil, nil, ErrTooManyPhotos
	}

	f, err := s.photos.Upload(ctx, file.UploadInput{
		Filename:     filename,
		Content:      content,
		UserID:       requesterID,
		MaxSizeBytes: MaxPhotoBytes,
		AllowedTypes: file.ImageTypes,
	})
	if err != nil {
		return nil, nil, err
	}

	r.Images = append(r.Images, f.ID)
	if err := s.repo.Update(ctx, r); err != nil {
		// Roll back the orphaned upload.
		if delErr := s.photos.Delete(ctx, f.ID); delErr != nil {
			s.log.Warn("delete orphaned photo failed", zap.String("file_id", f.ID), zap.Error(delErr))
		}
		return nil, nil, err
	}
	return r, f, nil
}

func (s *service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	return s.repo.CountByStatus(ctx)
}
