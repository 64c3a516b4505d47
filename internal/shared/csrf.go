package shared

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"time"
)

const (
	// CSRFSessionKey is where the issued token lives inside the session store.
	CSRFSessionKey = "csrf_token"
	// CSRFFormField is the form field the multi-step request pages post the
	// token under when no X-CSRF-Token header is present.
	CSRFFormField = "csrf_token"
	// CSRFHeader is the request header checked first for the token.
	CSRFHeader = "X-CSRF-Token"
)

// CSRFManager issues per-session anti-forgery tokens and verifies them on
// every mutating call. Tokens are HMACs keyed on a deployment secret and
// bound to the session id, so a token lifted from one session fails on
// another.
type CSRFManager struct {
	secret []byte
}

// NewCSRFManager builds a manager keyed on the deployment secret.
func NewCSRFManager(secret string) *CSRFManager {
	return &CSRFManager{secret: []byte(secret)}
}

// EnsureToken returns the session's token, minting one on first use. The
// session bootstrap endpoint calls this so the form pages always have a
// token to echo back.
func (m *CSRFManager) EnsureToken(ctx context.Context, sess *Session) (string, error) {
	if sess == nil {
		return "", errors.New("session missing")
	}
	if token := sess.Get(CSRFSessionKey); token != "" {
		return token, nil
	}
	token := m.mint(sess.ID)
	sess.Set(CSRFSessionKey, token)
	return token, nil
}

// VerifyToken checks the submitted token against the session's issued one.
func (m *CSRFManager) VerifyToken(ctx context.Context, sess *Session, token string) error {
	if sess == nil {
		return ErrCSRFTokenMissing
	}
	issued := sess.Get(CSRFSessionKey)
	if issued == "" || token == "" {
		return ErrCSRFTokenMissing
	}
	if !hmac.Equal([]byte(issued), []byte(token)) {
		return ErrCSRFTokenMismatch
	}
	return nil
}

func (m *CSRFManager) mint(sessionID string) string {
	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(sessionID))
	_, _ = mac.Write([]byte{'|'})
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(time.Now().UnixNano()))
	_, _ = mac.Write(nonce[:])
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
