package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"community/internal/security"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// レスポンス確認用
// =====================

type mwErrorResponse struct {
	Error string `json:"error"`
}

type mwOKResponse struct {
	UserID int64 `json:"user_id"`
}

// =====================
// helper
// =====================

func newTestProvider(t *testing.T, accessTTL time.Duration) *security.TokenProvider {
	t.Helper()
	signer, err := security.NewTokenSigner([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	return security.NewTokenProvider(signer, accessTTL, time.Hour, nil)
}

func mustToken(t *testing.T, p *security.TokenProvider, sub int64, typ security.TokenType) string {
	t.Helper()
	res, err := p.CreateToken(map[string]any{"sub": sub}, typ)
	require.NoError(t, err)
	return res.Token
}

// AuthJWTの後ろでcontextの中身を返すだけのハンドラ
func newAuthEcho(p *security.TokenProvider) *echo.Echo {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		user, ok := security.PrincipalFrom(c.Request().Context())
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		//echo.Contextにも同じ値が入っている
		if c.Get(CtxUserIDKey) != user.UserID {
			return c.NoContent(http.StatusTeapot)
		}
		return c.JSON(http.StatusOK, mwOKResponse{UserID: user.UserID})
	}, AuthJWT(p))
	return e
}

func doGet(e *echo.Echo, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func assertUnauthorized(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body mwErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body.Error)
}

// =====================
// tests
// =====================

func TestAuthJWT_Success(t *testing.T) {
	p := newTestProvider(t, time.Hour)
	rec := doGet(newAuthEcho(p), "Bearer "+mustToken(t, p, 55, security.TokenTypeAccess))

	require.Equal(t, http.StatusOK, rec.Code)
	var body mwOKResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(55), body.UserID)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	p := newTestProvider(t, time.Hour)
	assertUnauthorized(t, doGet(newAuthEcho(p), ""))
}

func TestAuthJWT_NotBearer(t *testing.T) {
	p := newTestProvider(t, time.Hour)
	assertUnauthorized(t, doGet(newAuthEcho(p), "Basic abc"))
}

func TestAuthJWT_Garbage(t *testing.T) {
	p := newTestProvider(t, time.Hour)
	assertUnauthorized(t, doGet(newAuthEcho(p), "Bearer sample.token.value"))
}

func TestAuthJWT_Expired(t *testing.T) {
	p := newTestProvider(t, -time.Second)
	assertUnauthorized(t, doGet(newAuthEcho(p), "Bearer "+mustToken(t, p, 1, security.TokenTypeAccess)))
}

func TestAuthJWT_RefreshTokenIsRejected(t *testing.T) {
	p := newTestProvider(t, time.Hour)
	assertUnauthorized(t, doGet(newAuthEcho(p), "Bearer "+mustToken(t, p, 1, security.TokenTypeRefresh)))
}

func TestAuthJWT_OtherSecret(t *testing.T) {
	p := newTestProvider(t, time.Hour)

	signer, err := security.NewTokenSigner([]byte("another-secret-another-secret-xx"))
	require.NoError(t, err)
	other := security.NewTokenProvider(signer, time.Hour, time.Hour, nil)

	assertUnauthorized(t, doGet(newAuthEcho(p), "Bearer "+mustToken(t, other, 1, security.TokenTypeAccess)))
}
