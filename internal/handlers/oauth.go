package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/services"
	"github.com/jarahq/jara-backend/internal/utils"
)

const oauthStateCookie = "oauthstate"

// OAuthHandler runs the provider sign-in flow: a state-protected redirect to
// the provider and a callback that exchanges the code, reads the verified
// profile and opens a local session. Google is the only wired provider.
type OAuthHandler struct {
	log          *logger.Logger
	authService  services.AuthService
	googleConfig *oauth2.Config
	frontendURL  string
	secureCookie bool
}

type googleUser struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// NewOAuthHandler returns nil when GOOGLE_CLIENT_ID is not configured; the
// router skips the routes in that case.
func NewOAuthHandler(log *logger.Logger, authService services.AuthService) *OAuthHandler {
	clientID := utils.GetEnv("GOOGLE_CLIENT_ID", "", log)
	if clientID == "" {
		return nil
	}
	return &OAuthHandler{
		log:         log.With("handler", "OAuthHandler"),
		authService: authService,
		googleConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: utils.GetEnv("GOOGLE_CLIENT_SECRET", "", log),
			RedirectURL:  utils.GetEnv("GOOGLE_REDIRECT_URL", "", log),
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		frontendURL:  utils.GetEnv("FRONTEND_URL", "http://localhost:3000", log),
		secureCookie: utils.GetEnv("ENVIRONMENT", "development", log) == "production",
	}
}

// Start redirects the browser to the provider's consent screen.
func (oh *OAuthHandler) Start(c *gin.Context) {
	if c.Param("provider") != "google" {
		RespondError(c, apierr.ValidationRejected(fmt.Errorf("unsupported provider %q", c.Param("provider"))))
		return
	}
	state, err := generateOAuthState()
	if err != nil {
		RespondError(c, fmt.Errorf("failed to generate state: %w", err))
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", oh.secureCookie, true)
	c.Redirect(http.StatusTemporaryRedirect, oh.googleConfig.AuthCodeURL(state))
}

// Callback finishes the flow and redirects to the frontend carrying the
// session tokens as query parameters.
func (oh *OAuthHandler) Callback(c *gin.Context) {
	if c.Param("provider") != "google" {
		RespondError(c, apierr.ValidationRejected(fmt.Errorf("unsupported provider %q", c.Param("provider"))))
		return
	}
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || cookieState == "" || c.Query("state") != cookieState {
		oh.log.Warn("OAuth callback with missing or mismatched state")
		RespondError(c, apierr.Unauthorized(fmt.Errorf("invalid oauth state")))
		return
	}

	token, err := oh.googleConfig.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		oh.log.Warn("OAuth code exchange failed", "error", err)
		RespondError(c, apierr.Unauthorized(fmt.Errorf("code exchange failed")))
		return
	}

	profile, err := oh.fetchGoogleUser(c, token)
	if err != nil {
		RespondError(c, err)
		return
	}
	if !profile.VerifiedEmail {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("provider email not verified")))
		return
	}

	accessToken, refreshToken, err := oh.authService.OAuthLogin(c.Request.Context(), profile.Email, profile.Name)
	if err != nil {
		RespondError(c, err)
		return
	}

	redirect := fmt.Sprintf("%s?access_token=%s&refresh_token=%s",
		oh.frontendURL, url.QueryEscape(accessToken), url.QueryEscape(refreshToken))
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}

func (oh *OAuthHandler) fetchGoogleUser(c *gin.Context, token *oauth2.Token) (*googleUser, error) {
	client := oh.googleConfig.Client(c.Request.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned status %d", resp.StatusCode)
	}

	var profile googleUser
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed decoding user info: %w", err)
	}
	return &profile, nil
}

func generateOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
