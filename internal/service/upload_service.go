package service

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/storage"
)

// PublicUploadsPrefix is the URL prefix under which public uploads are served.
const PublicUploadsPrefix = "/uploads"

// ImageKind groups public images on disk.
type ImageKind string

const (
	ImageProfilePhoto ImageKind = "profile-photos"
	ImageCompanyLogo  ImageKind = "company-logos"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// UploadLimits bounds accepted file sizes.
type UploadLimits struct {
	MaxImageBytes  int64
	MaxResumeBytes int64
}

// UploadService validates and stores profile images and resumes.
// Images live under public/ and are served statically; resumes live under
// private/ and are only reachable through signed links.
type UploadService struct {
	storage *storage.LocalStorage
	limits  UploadLimits
	logger  *zap.Logger
}

// NewUploadService constructs an UploadService.
func NewUploadService(store *storage.LocalStorage, limits UploadLimits, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limits.MaxImageBytes <= 0 {
		limits.MaxImageBytes = 5 * 1024 * 1024
	}
	if limits.MaxResumeBytes <= 0 {
		limits.MaxResumeBytes = 10 * 1024 * 1024
	}
	return &UploadService{storage: store, limits: limits, logger: logger}
}

// SaveImage stores an image and returns its public URL.
func (s *UploadService) SaveImage(kind ImageKind, ownerID string, r io.Reader) (string, error) {
	data, mtype, err := s.read(r, s.limits.MaxImageBytes, string(kind))
	if err != nil {
		return "", err
	}
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return "", invalid("Only image files are allowed")
	}
	name := path.Join("public", string(kind), ownerID, uuid.NewString()+mtype.Extension())
	if _, err := s.storage.Save(name, data); err != nil {
		return "", appErrors.Internal(err, "failed to store upload")
	}
	return PublicUploadsPrefix + "/" + strings.TrimPrefix(name, "public/"), nil
}

// SaveResume stores a PDF resume and returns its private storage reference.
func (s *UploadService) SaveResume(ownerID string, r io.Reader) (string, error) {
	data, mtype, err := s.read(r, s.limits.MaxResumeBytes, "resume")
	if err != nil {
		return "", err
	}
	if !mtype.Is("application/pdf") {
		return "", invalid("Only PDF files are allowed for resumes")
	}
	name := path.Join("private", "resumes", ownerID, uuid.NewString()+".pdf")
	if _, err := s.storage.Save(name, data); err != nil {
		return "", appErrors.Internal(err, "failed to store upload")
	}
	return name, nil
}

// Open returns the stored file behind ref.
func (s *UploadService) Open(ref string) (io.ReadSeekCloser, error) {
	file, err := s.storage.Open(storageName(ref))
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Remove deletes a previously stored file; failures are only logged.
func (s *UploadService) Remove(ref string) {
	if ref == "" {
		return
	}
	if err := s.storage.Delete(storageName(ref)); err != nil {
		s.logger.Warn("failed to remove replaced upload", zap.String("ref", ref), zap.Error(err))
	}
}

func (s *UploadService) read(r io.Reader, max int64, label string) ([]byte, *mimetype.MIME, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to read upload")
	}
	if int64(len(data)) > max {
		return nil, nil, invalid(fmt.Sprintf("%s must be at most %d MB", label, max/(1024*1024)))
	}
	if len(data) == 0 {
		return nil, nil, invalid(label + " is empty")
	}
	return data, mimetype.Detect(data), nil
}

// storageName maps a public URL back to its location on disk.
func storageName(ref string) string {
	if strings.HasPrefix(ref, PublicUploadsPrefix+"/") {
		return "public/" + strings.TrimPrefix(ref, PublicUploadsPrefix+"/")
	}
	return ref
}
