package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/internal/service/permission"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
	"github.com/jwalitptl/practice-dashboard/pkg/httputil"
)

const (
	ContextUser         = "user"
	ContextCapabilities = "capabilities"
	ContextToken        = "token"
)

var (
	errMissingHeader = errors.New("missing authorization header")
	errBadFormat     = errors.New("invalid authorization format")
)

type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// Authenticate verifies the bearer token and stores the user, its
// capabilities and the raw token in the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithError(c, apperrors.Unauthorized(errMissingHeader))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			httputil.RespondWithError(c, apperrors.Unauthorized(errBadFormat))
			return
		}

		claims, err := m.parse(parts[1])
		if err != nil {
			httputil.RespondWithError(c, apperrors.Unauthorized(err))
			return
		}

		user := claims.User()
		c.Set(ContextUser, user)
		c.Set(ContextCapabilities, permission.Resolve(user.Role))
		c.Set(ContextToken, parts[1])
		c.Next()
	}
}

func (m *AuthMiddleware) parse(tokenString string) (*model.TokenClaims, error) {
	claims := &model.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Require rejects callers lacking any of the given capabilities.
func Require(capabilities ...permission.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CapabilitiesFrom(c).HasAll(capabilities...) {
			httputil.RespondWithError(c, apperrors.Forbidden("permission denied"))
			return
		}
		c.Next()
	}
}

func UserFrom(c *gin.Context) *model.User {
	if v, ok := c.Get(ContextUser); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

func CapabilitiesFrom(c *gin.Context) permission.Capabilities {
	if v, ok := c.Get(ContextCapabilities); ok {
		if caps, ok := v.(permission.Capabilities); ok {
			return caps
		}
	}
	return permission.Resolve("")
}

func TokenFrom(c *gin.Context) string {
	return c.GetString(ContextToken)
}
