package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "test_session", "secret", time.Hour, false)
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	ctx := t.Context()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, sess)

	sess.SetIdentity("Pat Carlson")
	sess.SetTestMode(true)
	sess.Set("last_request", "abc")

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, req, sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "test_session", cookies[0].Name)

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, req2)
	require.NoError(t, err)
	require.Equal(t, "Pat Carlson", loaded.Identity())
	require.True(t, loaded.TestMode())
	require.Equal(t, "abc", loaded.Get("last_request"))
}

func TestSessionDestroyClearsCookieAndStore(t *testing.T) {
	sm := newTestSessionManager(t)
	ctx := t.Context()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	sess.SetIdentity("Pat Carlson")

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, req, sess))
	cookie := rec.Result().Cookies()[0]

	sm.Destroy(sess)
	rec2 := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec2, req, sess))
	expired := rec2.Result().Cookies()
	require.Len(t, expired, 1)
	require.Equal(t, -1, expired[0].MaxAge)

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookie)
	loaded, err := sm.Load(ctx, req2)
	require.NoError(t, err)
	require.Empty(t, loaded.Identity())
}

func TestSessionUnknownCookieStartsFresh(t *testing.T) {
	sm := newTestSessionManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "stale-id"})
	sess, err := sm.Load(t.Context(), req)
	require.NoError(t, err)
	require.Equal(t, "stale-id", sess.ID)
	require.Empty(t, sess.Identity())
	require.False(t, sess.TestMode())
}

func TestCSRFTokenVerification(t *testing.T) {
	sm := newTestSessionManager(t)
	csrf := NewCSRFManager("csrfsecret")
	ctx := t.Context()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)

	token, err := csrf.EnsureToken(ctx, sess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, csrf.VerifyToken(ctx, sess, token))
	require.Error(t, csrf.VerifyToken(ctx, sess, "tampered"))
	require.ErrorIs(t, csrf.VerifyToken(ctx, sess, ""), ErrCSRFTokenMissing)
}
