package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrTokenMalformed = errors.New("invalid token format")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
)

// SignedURLSigner creates and validates short-lived download tokens.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &SignedURLSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate returns a token binding subject (the resource owner id) to relPath.
func (s *SignedURLSigner) Generate(subject, relPath string) (string, time.Time, error) {
	if subject == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("subject and path required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl)
	ts := strconv.FormatInt(expiresAt.Unix(), 10)
	encodedPath := base64.RawURLEncoding.EncodeToString([]byte(relPath))
	token := strings.Join([]string{subject, ts, encodedPath, s.sign(subject, ts, encodedPath)}, ".")
	return token, expiresAt, nil
}

// Parse validates token and returns its subject and path.
func (s *SignedURLSigner) Parse(token string) (subject, relPath string, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return "", "", ErrTokenMalformed
	}
	subject, ts, encodedPath, signature := parts[0], parts[1], parts[2], parts[3]

	if !hmac.Equal([]byte(s.sign(subject, ts, encodedPath)), []byte(signature)) {
		return "", "", ErrTokenSignature
	}
	expUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", "", ErrTokenMalformed
	}
	rawPath, err := base64.RawURLEncoding.DecodeString(encodedPath)
	if err != nil {
		return "", "", ErrTokenMalformed
	}
	if s.now().After(time.Unix(expUnix, 0)) {
		return "", "", ErrTokenExpired
	}
	return subject, string(rawPath), nil
}

func (s *SignedURLSigner) sign(subject, ts, encodedPath string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(subject + "|" + ts + "|" + encodedPath))
	return hex.EncodeToString(mac.Sum(nil))
}
