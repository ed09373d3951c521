package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"estimator/internal/app/config"
	"estimator/internal/app/ds"
	"estimator/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

// Blacklist stores revoked tokens. CheckJWTInBlacklist returns nil when the
// token is revoked and redis.Nil when it is not.
type Blacklist interface {
	WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error
	CheckJWTInBlacklist(ctx context.Context, jwtStr string) error
}

type AuthMiddleware struct {
	Blacklist Blacklist
	Config    *config.Config
}

func NewAuthMiddleware(blacklist Blacklist, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Blacklist: blacklist,
		Config:    cfg,
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(header string) string {
	return strings.TrimPrefix(header, "Bearer ")
}

// WithAuthCheck rejects requests without a valid, unrevoked token. When roles
// are given the caller must hold one of them.
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return gin.HandlerFunc(func(gCtx *gin.Context) {
		jwtStr := BearerToken(gCtx.GetHeader("Authorization"))
		if jwtStr == "" {
			gCtx.AbortWithStatus(401)
			return
		}

		err := am.Blacklist.CheckJWTInBlacklist(gCtx.Request.Context(), jwtStr)
		if err == nil {
			gCtx.AbortWithStatus(401)
			return
		}
		if !errors.Is(err, redis.Nil) {
			logrus.Error("blacklist check failed: ", err)
			gCtx.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}

		claims, err := ParseToken(jwtStr, am.Config.JWT.Token)
		if err != nil {
			gCtx.AbortWithStatus(401)
			return
		}

		if len(assignedRoles) > 0 && !hasRequiredRole(claims.Role, assignedRoles) {
			gCtx.AbortWithStatus(403)
			return
		}

		gCtx.Set(ContextUserID, claims.UserID)
		gCtx.Set(ContextUserRole, claims.Role)

		gCtx.Next()
	})
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(tokenString, secret string) (*ds.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

func hasRequiredRole(userRole role.Role, requiredRoles []role.Role) bool {
	for _, requiredRole := range requiredRoles {
		if userRole == requiredRole {
			return true
		}
	}
	return false
}
