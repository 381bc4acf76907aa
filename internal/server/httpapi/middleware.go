package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// requestID reuses an inbound X-Request-ID or mints a new one, echoes it in
// the response and stores it in the request context.
func (s *HTTPServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Header(common.RequestIDHeaderName, id)
		c.Set(string(requestIDKey), id)
		c.Next()
	}
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"request_id", c.GetString(string(requestIDKey)),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

func (s *HTTPServer) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		s.logger.Error(c.Request.Context(), "panic recovered",
			"request_id", c.GetString(string(requestIDKey)), "panic", rec)
		respondError(c, http.StatusInternalServerError, msgInternal)
	})
}

// bearerToken returns the token after the "Bearer " prefix, or "".
func bearerToken(header string) string {
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// requireAuth is the auth gate: the request proceeds only with a valid
// bearer token, and the verified claims are attached to its context.
func (s *HTTPServer) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if token == "" {
			respondError(c, http.StatusUnauthorized, msgMissingToken)
			return
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "token rejected",
				"request_id", c.GetString(string(requestIDKey)), "error", err.Error())
			respondError(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		c.Request = c.Request.WithContext(auth.ContextWithClaims(c.Request.Context(), claims))
		c.Next()
	}
}
