package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-records/internal/domain/entity"
	"clinic-records/pkg/jwt"
	"clinic-records/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	CallerKey  contextKey = "caller"
	TokenIDKey contextKey = "token_id"
)

const msgInvalidToken = "Invalid or expired token"

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		log:        log,
	}
}

// Authenticate verifies the bearer token and puts the caller on the request context.
// Every token failure is answered with the same 401 message.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(w, msgInvalidToken)
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.log.WithFields(logrus.Fields{
				"path":  r.URL.Path,
				"error": err.Error(),
			}).Info("Rejected bearer token")
			response.Unauthorized(w, msgInvalidToken)
			return
		}

		caller := entity.Caller{
			Username: claims.Subject,
			Roles:    claims.Roles,
		}
		if claims.UserID != uuid.Nil {
			userID := claims.UserID
			caller.UserID = &userID
		}

		ctx := context.WithValue(r.Context(), CallerKey, caller)
		ctx = context.WithValue(ctx, TokenIDKey, claims.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFromContext returns the caller set by Authenticate.
func CallerFromContext(ctx context.Context) (entity.Caller, bool) {
	caller, ok := ctx.Value(CallerKey).(entity.Caller)
	return caller, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
