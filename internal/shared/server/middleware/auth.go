package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/auth"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/server/respond"
)

const (
	memberIDKey    = "memberId"
	orgIDKey       = "orgId"
	memberEmailKey = "memberEmail"
	memberRoleKey  = "memberRole"
)

// OrgContext is the authenticated organization scope every handler operates in.
type OrgContext struct {
	OrganizationID string
	ActorID        string
	Role           string
}

// Auth validates JWTs and stores the organization context in the request.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/auth/google/") || path == "/api/v1/health" {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
			return
		}

		c.Set(memberIDKey, claims.Sub)
		c.Set(orgIDKey, claims.Org)
		if claims.Email != "" {
			c.Set(memberEmailKey, claims.Email)
		}
		if claims.Role != "" {
			c.Set(memberRoleKey, claims.Role)
		}
		c.Next()
	}
}

// OrgFromContext fetches the organization context set by the auth middleware.
func OrgFromContext(c *gin.Context) OrgContext {
	if c == nil {
		return OrgContext{}
	}
	return OrgContext{
		OrganizationID: c.GetString(orgIDKey),
		ActorID:        c.GetString(memberIDKey),
		Role:           c.GetString(memberRoleKey),
	}
}

// MemberEmailFromContext fetches the member email set by the auth middleware.
func MemberEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(memberEmailKey)
}
