package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nautikos_backend/internal/auth"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/services/dto"
	"nautikos_backend/internal/storage"
	"nautikos_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	CVContentType = "application/pdf"
	CVURLExpiry   = 3600 * time.Second
)

// CVKey is the object key of a job seeker's CV.
func CVKey(jobSeekerID string) string {
	return fmt.Sprintf("job-seekers/%s/cv/file.pdf", jobSeekerID)
}

type CVService interface {
	// PresignUpload returns a presigned upload URL for the caller's CV.
	PresignUpload(ctx context.Context, db *gorm.DB, actor Actor, req *dto.PresignCVRequest) (*dto.PresignCVResponse, error)

	// Attach stores an uploaded CV key on the caller's profile.
	Attach(ctx context.Context, db *gorm.DB, actor Actor, req *dto.AttachCVRequest) (*models.JobSeeker, error)
}

type cvService struct {
	sections SectionService
	storage  storage.Storage
}

func NewCVService(sections SectionService, store storage.Storage) CVService {
	return &cvService{sections: sections, storage: store}
}

func (s *cvService) PresignUpload(ctx context.Context, db *gorm.DB, actor Actor, req *dto.PresignCVRequest) (*dto.PresignCVResponse, error) {
	if err := actor.require(auth.PermOnboardingWrite); err != nil {
		return nil, err
	}
	if req.ContentType != CVContentType {
		return nil, apperrors.ValidationError(map[string]string{"contentType": "Only PDF files are accepted"})
	}

	js, err := s.sections.EnsureProfile(ctx, db, actor.UserID)
	if err != nil {
		return nil, err
	}

	key := CVKey(js.ID)
	uploadURL, err := s.storage.PresignUpload(ctx, key, CVContentType, CVURLExpiry)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "storage", "Could not prepare upload", 502)
	}
	viewURL, err := s.storage.GetSignedURL(ctx, key, CVURLExpiry)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "storage", "Could not prepare upload", 502)
	}

	return &dto.PresignCVResponse{
		Key:       key,
		UploadURL: uploadURL,
		ViewURL:   viewURL,
		ExpiresIn: int(CVURLExpiry.Seconds()),
	}, nil
}

func (s *cvService) Attach(ctx context.Context, db *gorm.DB, actor Actor, req *dto.AttachCVRequest) (*models.JobSeeker, error) {
	if err := actor.require(auth.PermOnboardingWrite); err != nil {
		return nil, err
	}

	js, err := s.sections.EnsureProfile(ctx, db, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(req.Key, fmt.Sprintf("job-seekers/%s/", js.ID)) {
		return nil, apperrors.ValidationError(map[string]string{"key": "Key does not belong to this profile"})
	}

	exists, err := s.storage.Exists(ctx, req.Key)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "storage", "Could not verify upload", 502)
	}
	if !exists {
		return nil, apperrors.ValidationError(map[string]string{"key": "No file has been uploaded under this key"})
	}

	return s.sections.AttachCV(ctx, db, actor.UserID, req.Key, req.FileName)
}
