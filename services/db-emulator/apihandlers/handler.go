package apihandlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reefdb/reefdb-go/services/db-emulator/store"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	apiKeys          []string
	sessionSignKey   string
	sessionExpiresIn int64 // seconds
	db               *store.Store
}

func NewHTTPHandler(apiKeys []string, sessionSignKey string, sessionExpiresInSecs int64, db *store.Store) *HttpEndpoints {
	return &HttpEndpoints{
		apiKeys:          apiKeys,
		sessionSignKey:   sessionSignKey,
		sessionExpiresIn: sessionExpiresInSecs,
		db:               db,
	}
}

func (h *HttpEndpoints) AddRoutes(rg *gin.RouterGroup) {
	rg.POST("/",
		h.hasValidSecret(),
		h.executeQuery)
}

// hasValidSecret accepts either a configured root key in the Api-Key header
// or a session token issued by a previous login.
func (h *HttpEndpoints) hasValidSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader("Api-Key"); key != "" {
			for _, vk := range h.apiKeys {
				if key == vk {
					c.Next()
					return
				}
			}
			if _, valid, _ := validateSessionToken(key, h.sessionSignKey); valid {
				c.Next()
				return
			}
		}

		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token := strings.TrimPrefix(auth, "Bearer ")
			if _, valid, _ := validateSessionToken(token, h.sessionSignKey); valid {
				c.Next()
				return
			}
		}

		slog.Error("missing or invalid secret")
		c.JSON(http.StatusUnauthorized, errorEnvelope("unauthorized", "missing or invalid secret"))
		c.Abort()
	}
}

func errorEnvelope(code, description string) gin.H {
	return gin.H{"errors": []gin.H{{
		"code":        code,
		"description": description,
	}}}
}
