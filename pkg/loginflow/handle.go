package loginflow

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-actas/pkg/token"
	"golang.org/x/exp/slog"
)

const (
	ACCESS_TOKEN_NAME  = "accessToken"
	REFRESH_TOKEN_NAME = "refreshToken"
)

type Handle struct {
	flowService *LoginFlowService
	jwtService  token.Jwt
	// successRedirect is where POST /login sends the browser after a
	// successful login.
	successRedirect string
}

func NewHandle(flowService *LoginFlowService, jwtService token.Jwt) Handle {
	return Handle{
		flowService:     flowService,
		jwtService:      jwtService,
		successRedirect: "/",
	}
}

func (h Handle) setTokenCookie(w http.ResponseWriter, tokenName, tokenValue string, expire time.Time) {
	tokenCookie := &http.Cookie{
		Name:     tokenName,
		Path:     "/",
		Value:    tokenValue,
		Expires:  expire,
		HttpOnly: h.jwtService.CookieHttpOnly,
		Secure:   h.jwtService.CookieSecure,
		SameSite: http.SameSiteLaxMode, // Prevent CSRF
	}

	http.SetCookie(w, tokenCookie)
}

// Login a user
// (POST /login)
func (h Handle) PostLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.PlainText(w, r, "Unable to parse request body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	p, err := h.flowService.Login(r.Context(), username, password)
	if err != nil {
		// Every failure stage surfaces identically to the caller.
		slog.Error("Login failed", "err", err)
		render.Status(r, http.StatusBadRequest)
		render.PlainText(w, r, "Username/Password is wrong")
		return
	}

	accessToken, err := h.jwtService.CreateAccessToken(p.ID.String(), p.Username, p.DisplayName())
	if err != nil {
		slog.Error("Failed to create access token", "username", p.Username, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(w, r, "Failed to create access token")
		return
	}

	refreshToken, err := h.jwtService.CreateRefreshToken(p.ID.String(), p.Username, p.DisplayName())
	if err != nil {
		slog.Error("Failed to create refresh token", "username", p.Username, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(w, r, "Failed to create refresh token")
		return
	}

	h.setTokenCookie(w, ACCESS_TOKEN_NAME, accessToken.Token, accessToken.Expiry)
	h.setTokenCookie(w, REFRESH_TOKEN_NAME, refreshToken.Token, refreshToken.Expiry)

	http.Redirect(w, r, h.successRedirect, http.StatusFound)
}

// Whoami returns the current session's display name
// (GET /whoami)
func (h Handle) GetWhoami(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		slog.Error("Failed getting claims from context", "err", err)
		render.Status(r, http.StatusUnauthorized)
		render.PlainText(w, r, http.StatusText(http.StatusUnauthorized))
		return
	}

	displayName, _ := claims["display_name"].(string)
	if displayName == "" {
		displayName, _ = claims["username"].(string)
	}

	render.PlainText(w, r, displayName)
}

// TokenFromAccessCookie extracts the access token from its cookie.
func TokenFromAccessCookie(r *http.Request) string {
	cookie, err := r.Cookie(ACCESS_TOKEN_NAME)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Verifier checks the Authorization header and the access token cookie.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, jwtauth.TokenFromHeader, TokenFromAccessCookie)
}

// Routes mounts the login flow endpoints on the router.
func Routes(r chi.Router, handle Handle, tokenAuth *jwtauth.JWTAuth) {
	r.Post("/login", handle.PostLogin)

	r.Group(func(r chi.Router) {
		r.Use(Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator(tokenAuth))
		r.Get("/whoami", handle.GetWhoami)
	})
}
