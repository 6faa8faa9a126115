package loginflow

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-actas/pkg/actas"
	"github.com/tendant/simple-actas/pkg/identity"
	"github.com/tendant/simple-actas/pkg/token"
)

const testJwtSecret = "very-secure-secret-string"

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	repo := identity.NewInMemoryIdentityRepository()

	adminHash, err := actas.HashPassword("admin-pwd")
	require.NoError(t, err)
	userHash, err := actas.HashPassword("user-pwd")
	require.NoError(t, err)

	repo.CreatePrincipal("admin", []byte(adminHash), true)
	repo.CreatePrincipal("user", []byte(userHash), false)

	authenticator := actas.NewService(
		identity.NewLookupService(repo),
		actas.WithPolicy(actas.PrivilegedOnly),
	)

	flow := NewLoginFlowService(authenticator)
	jwtService := token.Jwt{Secret: testJwtSecret, CookieHttpOnly: true}
	handle := NewHandle(flow, jwtService)

	tokenAuth := jwtauth.New("HS256", []byte(testJwtSecret), nil)

	r := chi.NewRouter()
	Routes(r, handle, tokenAuth)
	return r
}

func postLogin(t *testing.T, router http.Handler, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func accessCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == ACCESS_TOKEN_NAME {
			return c
		}
	}
	t.Fatal("access token cookie not set")
	return nil
}

func TestPostLoginSuccess(t *testing.T) {
	router := setupRouter(t)

	w := postLogin(t, router, "user", "user-pwd")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	c := accessCookie(t, w)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)
}

func TestPostLoginWrongPassword(t *testing.T) {
	router := setupRouter(t)

	w := postLogin(t, router, "user", "wrong")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username/Password is wrong")
}

func TestPostLoginUnknownUser(t *testing.T) {
	router := setupRouter(t)

	w := postLogin(t, router, "nobody", "user-pwd")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username/Password is wrong")
}

func TestWhoamiAfterActAsLogin(t *testing.T) {
	router := setupRouter(t)

	// Privileged actor logs in as an unprivileged target with the
	// actor's own password.
	w := postLogin(t, router, "admin/user", "admin-pwd")
	require.Equal(t, http.StatusFound, w.Code)
	c := accessCookie(t, w)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(c)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The session belongs to the target.
	assert.Equal(t, "user", rec.Body.String())
}

func TestActAsWithTargetPasswordRejected(t *testing.T) {
	router := setupRouter(t)

	w := postLogin(t, router, "admin/user", "user-pwd")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username/Password is wrong")
}

func TestActAsDeniedByPolicy(t *testing.T) {
	router := setupRouter(t)

	// Unprivileged actor may not act as anyone under PrivilegedOnly.
	w := postLogin(t, router, "user/admin", "user-pwd")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username/Password is wrong")
}

func TestWhoamiWithoutTokenUnauthorized(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
