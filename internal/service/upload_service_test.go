package service

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/storage"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newTestUploadService(t *testing.T, limits UploadLimits) *UploadService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewUploadService(store, limits, nil)
}

func TestUploadServiceSaveImage(t *testing.T) {
	svc := newTestUploadService(t, UploadLimits{})

	url, err := svc.SaveImage(ImageProfilePhoto, "u1", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/profile-photos/u1/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	file, err := svc.Open(url)
	require.NoError(t, err)
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, pngHeader, data)

	svc.Remove(url)
	_, err = svc.Open(url)
	assert.Error(t, err)
}

func TestUploadServiceRejectsWrongType(t *testing.T) {
	svc := newTestUploadService(t, UploadLimits{})

	_, err := svc.SaveImage(ImageCompanyLogo, "u1", strings.NewReader("plain text, not an image"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appCode(err))

	_, err = svc.SaveResume("u1", bytes.NewReader(pngHeader))
	require.Error(t, err)
	assert.Equal(t, "Only PDF files are allowed for resumes", appErrors.FromError(err).Message)
}

func TestUploadServiceEnforcesSizeLimit(t *testing.T) {
	svc := newTestUploadService(t, UploadLimits{MaxImageBytes: 16, MaxResumeBytes: 16})

	_, err := svc.SaveImage(ImageProfilePhoto, "u1", bytes.NewReader(pngHeader))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appCode(err))
}

func TestUploadServiceSaveResume(t *testing.T) {
	svc := newTestUploadService(t, UploadLimits{})

	ref, err := svc.SaveResume("u1", strings.NewReader("%PDF-1.4\n%fake resume\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "private/resumes/u1/"))
}
