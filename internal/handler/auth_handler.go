package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stridesense/stridesense-backend-go/internal/service"
	"github.com/stridesense/stridesense-backend-go/pkg/response"
)

const (
	stateCookie    = "oauth_state"
	stateCookieTTL = 600 // seconds
)

// AuthHandler handles the OAuth login round trip
type AuthHandler struct {
	authService *service.AuthService
	frontendURL string
	log         zerolog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, frontendURL string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		frontendURL: frontendURL,
		log:         log,
	}
}

// Login handles GET /login
func (h *AuthHandler) Login(c *gin.Context) {
	authURL, state := h.authService.LoginURL()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateCookieTTL, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusFound, authURL)
}

// Callback handles GET /callback. On success the browser is sent back to the front end
// with the session token in the access_token query parameter.
func (h *AuthHandler) Callback(c *gin.Context) {
	if denied := c.Query("error"); denied != "" {
		h.redirect(c, url.Values{"error": {denied}})
		return
	}

	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		response.BadRequest(c, "Invalid OAuth state")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", c.Request.TLS != nil, true)

	token, session, err := h.authService.CompleteLogin(c.Request.Context(), c.Query("code"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.log.Info().Int64("athlete_id", session.AthleteID).Msg("Athlete logged in")
	h.redirect(c, url.Values{"access_token": {token}})
}

func (h *AuthHandler) redirect(c *gin.Context, q url.Values) {
	c.Redirect(http.StatusFound, h.frontendURL+"/?"+q.Encode())
}
