package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/Nihongo/config"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/identity"
	"github.com/rs/zerolog/log"
)

// Claims are the fields read from tokens issued by the auth provider.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Auth struct {
	secret []byte
}

func NewAuth(cfg *config.Config) *Auth {
	return &Auth{secret: []byte(cfg.Auth.JWTSecret)}
}

// RequireUser rejects requests without a valid bearer token and stores the
// caller's identity on the request context.
func (a *Auth) RequireUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}

		id, err := a.Parse(strings.TrimSpace(header[len("Bearer "):]))
		if err != nil {
			log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Rejected bearer token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		ctx.Request = ctx.Request.WithContext(identity.WithIdentity(ctx.Request.Context(), id))
		ctx.Next()
	}
}

// RequireRole must run after RequireUser.
func (a *Auth) RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := identity.FromContext(ctx.Request.Context())
		if !ok || id.Role != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Insufficient permissions"})
			return
		}
		ctx.Next()
	}
}

func (a *Auth) Parse(raw string) (identity.Identity, error) {
	if len(a.secret) == 0 {
		return identity.Identity{}, fmt.Errorf("JWT secret is not configured")
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return identity.Identity{}, err
	}
	if !token.Valid || claims.Subject == "" {
		return identity.Identity{}, fmt.Errorf("token has no subject")
	}
	role := claims.Role
	if role == "" {
		role = identity.RoleStudent
	}
	return identity.Identity{UserID: claims.Subject, Email: claims.Email, Role: role}, nil
}
