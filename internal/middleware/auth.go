package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/localherald/core/internal/pkg/jwt"
	"github.com/localherald/core/internal/pkg/response"
)

const (
	ContextKeyEmail = "admin_email"
	ContextKeySID   = "session_id"
)

// Authorizer decides whether an authenticated identity may administer the
// site. The production implementation checks the configured principal set.
type Authorizer interface {
	Allowed(email string) bool
}

// AllowList authorizes a fixed set of addresses; a one-element set in the
// single-admin deployment.
type AllowList map[string]struct{}

// NewAllowList builds an AllowList from configured addresses.
func NewAllowList(emails []string) AllowList {
	set := make(AllowList, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

func (a AllowList) Allowed(email string) bool {
	_, ok := a[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Auth enforces a valid session whose identity the authorizer accepts.
// It must run before any store call so denied requests have no side
// effects. An identity mismatch is a policy denial, not an error.
func Auth(authz Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := validateToken(extractToken(c))
		if err != nil || !authz.Allowed(claims.Email) {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyEmail, claims.Email)
		if claims.SessionID != "" {
			c.Set(ContextKeySID, claims.SessionID)
		}
		c.Next()
	}
}

// OptionalAuth sets the identity if a valid authorized session is present
// but never blocks. List endpoints use it to honor the all=true admin flag.
func OptionalAuth(authz Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := validateToken(extractToken(c)); err == nil && authz.Allowed(claims.Email) {
			c.Set(ContextKeyEmail, claims.Email)
			if claims.SessionID != "" {
				c.Set(ContextKeySID, claims.SessionID)
			}
		}
		c.Next()
	}
}

func validateToken(raw string) (*jwt.Claims, error) {
	token := NormalizeToken(raw)
	if token == "" {
		return nil, errors.New("token is required")
	}
	return jwt.Parse(token)
}

// CurrentEmail extracts the authenticated identity from context.
func CurrentEmail(c *gin.Context) string {
	v, _ := c.Get(ContextKeyEmail)
	email, _ := v.(string)
	return email
}

// IsAuthenticated returns true if the request carries an authorized session.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentEmail(c) != ""
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	if cookie, err := c.Cookie("lh_session"); err == nil && cookie != "" {
		return NormalizeToken(cookie)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
