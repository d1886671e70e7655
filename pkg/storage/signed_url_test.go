package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndParse(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("user-1", "resumes/user-1/cv.pdf")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	subject, path, err := signer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", subject)
	require.Equal(t, "resumes/user-1/cv.pdf", path)
}

func TestSignedURLSignerExpired(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)
	token, _, err := signer.Generate("user-1", "resumes/user-1/cv.pdf")
	require.NoError(t, err)

	signer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, _, err = signer.Parse(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestSignedURLSignerTampered(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)
	token, _, err := signer.Generate("user-1", "resumes/user-1/cv.pdf")
	require.NoError(t, err)

	forged := strings.Replace(token, "user-1", "user-2", 1)
	_, _, err = signer.Parse(forged)
	require.ErrorIs(t, err, ErrTokenSignature)

	_, _, err = NewSignedURLSigner("other", time.Minute).Parse(token)
	require.ErrorIs(t, err, ErrTokenSignature)

	_, _, err = signer.Parse("nope")
	require.ErrorIs(t, err, ErrTokenMalformed)
}
