package middleware

import (
	"context"
	"net/http"
	"strings"

	"hotel-management/internal/data/entity"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionFinder interface {
	FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// AuthSession verifies the bearer token, then checks that the session it
// names is still live and its user still active.
func AuthSession(secret string, sessions SessionFinder, users UserFinder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				utils.ResponseError(w, apperror.Unauthorized(apperror.TypeTokenMissing, "Not authorized, no token"))
				return
			}

			claims, err := utils.ParseToken(secret, raw)
			if err != nil {
				logger.Debug("Rejected bearer token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseError(w, err)
				return
			}

			session, err := sessions.FindValidSession(r.Context(), claims.SessionToken())
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseError(w, err)
				return
			}
			if session == nil || session.UserID != claims.UserID() {
				utils.ResponseError(w, apperror.Unauthorized(apperror.TypeInvalidToken, "Session expired or revoked, please log in again"))
				return
			}

			user, err := users.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to load session user",
					zap.Error(err),
					zap.String("user_id", session.UserID.String()))
				utils.ResponseError(w, err)
				return
			}
			if user == nil {
				utils.ResponseError(w, apperror.Unauthorized(apperror.TypeTokenUserNotFound, "User not found"))
				return
			}
			if !user.IsActive {
				utils.ResponseError(w, apperror.New(http.StatusForbidden, apperror.TypeAccountDisabled, "Account is deactivated"))
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))
			ctx = utils.SetSessionContext(ctx, session.Token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin lets only admins through. It must run after AuthSession.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(logger, entity.RoleAdmin)
}

func RequireRole(logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[string(role)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseError(w, apperror.Unauthorized(apperror.TypeTokenMissing, "Authentication required"))
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if !allowed[role] {
				logger.Warn("Role check failed",
					zap.String("user_id", userID.String()),
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseError(w, apperror.Forbidden("You do not have permission to perform this action"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
