package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/storage"
)

// UploadInput describes one uploaded object and the limits it must respect.
type UploadInput struct {
	Filename     string
	Content      io.Reader
	UserID       string
	MaxSizeBytes int64    // 0 = no limit
	AllowedTypes []string // empty = allow all
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*File, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*File, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	log     *zap.Logger
	now     func() time.Time
}

func NewService(repo Repository, store storage.Storage, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	// Read one byte past the limit so oversize uploads are detected without
	// buffering them whole.
	src := in.Content
	if in.MaxSizeBytes > 0 {
		src = io.LimitReader(src, in.MaxSizeBytes+1)
	}
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if len(fileBytes) == 0 {
		return nil, ErrEmptyFile
	}
	if in.MaxSizeBytes > 0 && int64(len(fileBytes)) > in.MaxSizeBytes {
		return nil, apperror.Newf(ErrFileTooLarge, "file exceeds %d bytes", in.MaxSizeBytes)
	}

	// Trust the bytes, not the client's header.
	mt := mimetype.Detect(fileBytes)
	contentType := mt.String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if len(in.AllowedTypes) > 0 && !slices.Contains(in.AllowedTypes, contentType) {
		return nil, apperror.Newf(ErrUnsupportedType, "file type %s is not allowed", contentType)
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if ext == "" {
		ext = mt.Extension()
	}

	fileID := uuid.New().String()

	// Sharding path: upload/ab/UUID.ext
	shard := fileID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	var thumbnailPath string
	if strings.HasPrefix(contentType, "image/") {
		thumb, err := s.imgProc.Thumbnail(bytes.NewReader(fileBytes), storage.ThumbnailWidth, storage.ThumbnailHeight)
		if err != nil {
			// The original is still useful without a thumbnail.
			s.log.Warn("thumbnail generation failed", zap.String("file_id", fileID), zap.Error(err))
		} else {
			tPath := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
			if err := s.storage.Save(ctx, tPath, bytes.NewReader(thumb)); err != nil {
				s.log.Warn("thumbnail save failed", zap.String("file_id", fileID), zap.Error(err))
			} else {
				thumbnailPath = tPath
			}
		}
	}

	f := &File{
		ID:            fileID,
		UserID:        in.UserID,
		Filename:      filepath.Base(in.Filename),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(fileBytes)),
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.removeObjects(ctx, f)
		return nil, err
	}
	return f, nil
}

func (s *service) removeObjects(ctx context.Context, f *File) {
	if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
		s.log.Warn("delete stored file failed", zap.String("path", f.StoragePath), zap.Error(err))
	}
	if f.HasThumbnail() {
		if err := s.storage.Delete(ctx, f.ThumbnailPath); err != nil {
			s.log.Warn("delete stored thumbnail failed", zap.String("path", f.ThumbnailPath), zap.Error(err))
		}
	}
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.removeObjects(ctx, f)
	return s.repo.Delete(ctx, id)
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve file from storage: %w", err)
	}
	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !f.HasThumbnail() {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, f.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}
	return stream, f, nil
}
