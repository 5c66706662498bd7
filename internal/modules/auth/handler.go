package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/middleware"
	"github.com/localherald/core/internal/pkg/jwt"
	"github.com/localherald/core/internal/pkg/response"
	"go.uber.org/zap"
)

const sessionCookie = "lh_session"

// Handler implements the single-tenant OAuth gate: sign-in is delegated
// to the external provider and a session is granted only when the
// identity is in the authorized principal set.
type Handler struct {
	oauth      *oauthClient
	authorizer middleware.Authorizer
	sessionTTL time.Duration
	log        *zap.Logger
}

func NewHandler(cfg config.AuthConfig, authorizer middleware.Authorizer, log *zap.Logger) *Handler {
	return &Handler{
		oauth:      newOAuthClient(cfg.GoogleClientID, cfg.GoogleClientSecret),
		authorizer: authorizer,
		sessionTTL: time.Duration(cfg.SessionTTLHours) * time.Hour,
		log:        log,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")

	g.GET("/redirect", h.redirect)
	g.GET("/callback", h.callback)
	g.GET("/session", authMW, h.session)
	g.POST("/logout", authMW, h.logout)
}

// GET /auth/redirect?callback_url=
func (h *Handler) redirect(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect,
		h.oauth.authRedirectURL(h.callbackURI(c), c.Query("callback_url")))
}

// GET /auth/callback?code=
func (h *Handler) callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "missing code")
		return
	}

	ctx := c.Request.Context()
	accessToken, err := h.oauth.exchangeCode(ctx, code, h.callbackURI(c))
	if err != nil {
		h.log.Error("oauth token exchange failed", zap.Error(err))
		h.signInFailed(c)
		return
	}
	user, err := h.oauth.fetchIdentity(ctx, accessToken)
	if err != nil {
		h.log.Error("oauth userinfo failed", zap.Error(err))
		h.signInFailed(c)
		return
	}

	// Identity mismatch is a policy denial, not a provider error.
	if !h.authorizer.Allowed(user.Email) {
		h.log.Warn("sign-in denied for unauthorized identity", zap.String("email", user.Email))
		response.Unauthorized(c)
		return
	}

	sid := uuid.New().String()
	token, err := jwt.Sign(user.Email, sid, h.sessionTTL)
	if err != nil {
		h.log.Error("session token signing failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	c.SetCookie(sessionCookie, token, int(h.sessionTTL/time.Second), "/", "", false, true)
	response.OK(c, gin.H{
		"token": token,
		"user": gin.H{
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// GET /auth/session [auth]
func (h *Handler) session(c *gin.Context) {
	response.OK(c, gin.H{"email": middleware.CurrentEmail(c)})
}

// POST /auth/logout [auth]
func (h *Handler) logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	response.NoContent(c)
}

func (h *Handler) signInFailed(c *gin.Context) {
	// Provider errors surface as a generic sign-in failure.
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
		"ok": 0, "code": http.StatusBadGateway, "message": "sign-in failed",
	})
}

func (h *Handler) callbackURI(c *gin.Context) string {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/api/v1/auth/callback", scheme, c.Request.Host)
}
