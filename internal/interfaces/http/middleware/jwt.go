package middleware

import (
	"net/http"
	"strings"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/auth"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
	JWTBranchIDKey = "jwt_branch_id"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTAuth validates the bearer token on every request and stores the claims
// in the gin context for downstream handlers.
func JWTAuth(jwtService *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if logger != nil {
				logger.Warn("token validation failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
			}
			message := "Authentication required"
			if err == auth.ErrExpiredToken {
				message = "Token has expired"
			}
			abortUnauthorized(c, message)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTRoleKey, claims.Role)
		c.Set(JWTBranchIDKey, claims.BranchID)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated actor carries one of
// the given roles. Must run after JWTAuth.
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !claims.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden,
				"Insufficient role for this operation",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeUnauthorized,
		message,
		GetRequestID(c),
	))
}

// GetClaims retrieves the JWT claims from the gin context
func GetClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}
