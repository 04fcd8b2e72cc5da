// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token format")
	ErrInvalidSignature = errors.New("invalid session signature")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewSessionID returns a fresh random session identifier
func NewSessionID() string {
	return uuid.NewString()
}

// SignSessionID binds a session ID to the server salt so cookies can't be forged.
// The token has the form "<id>.<mac>".
func SignSessionID(sessionID, salt string) string {
	return sessionID + "." + sessionMAC(sessionID, salt)
}

// ValidateSessionToken checks a signed token and returns the session ID
func ValidateSessionToken(token, salt string) (string, error) {
	i := strings.LastIndexByte(token, '.')
	if i <= 0 || i == len(token)-1 {
		return "", ErrInvalidToken
	}
	sessionID, mac := token[:i], token[i+1:]

	if _, err := uuid.Parse(sessionID); err != nil {
		return "", ErrInvalidToken
	}

	expected := sessionMAC(sessionID, salt)
	if !hmac.Equal([]byte(mac), []byte(expected)) {
		return "", ErrInvalidSignature
	}
	return sessionID, nil
}

func sessionMAC(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner cookies
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}
