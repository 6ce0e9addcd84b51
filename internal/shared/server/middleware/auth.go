package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthdocs-backend/internal/shared/auth"
	"healthdocs-backend/internal/shared/server/respond"
)

const (
	patientIDKey   = "patientId"
	patientNameKey = "patientName"
)

// Auth validates bearer tokens or the device patient header and stores the
// patient identity in context. Health and metrics stay open.
func Auth(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		if path == "/metrics" || path == "/api/v1/health" {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if token == "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			claims, err := auth.VerifyJWT(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			c.Set(patientIDKey, claims.Sub)
			if claims.Name != "" {
				c.Set(patientNameKey, claims.Name)
			}
			c.Next()
			return
		}

		// On-device deployments run without a token server; the shell pins
		// the active patient in a header instead.
		patientID := strings.TrimSpace(c.GetHeader("X-Patient-Id"))
		if patientID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		c.Set(patientIDKey, patientID)
		c.Next()
	}
}

// PatientIDFromContext fetches the patient ID set by the auth middleware.
func PatientIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(patientIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// PatientNameFromContext fetches the patient name set by the auth middleware.
func PatientNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(patientNameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}
