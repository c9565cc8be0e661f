package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"staging-console-backend/internal/config"
	"staging-console-backend/internal/models"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "user_role"
)

// AuthMiddleware verifies a Supabase access token and stores the caller's id
// and console role in the context. The token is read from the Authorization
// header, or from the token query parameter for EventSource clients that
// cannot set headers.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, errMsg := bearerToken(c)
		if errMsg != "" {
			abortUnauthorized(c, errMsg, "")
			return
		}

		// Try URL decoding in case the token was URL-encoded
		decodedToken, err := url.QueryUnescape(tokenString)
		if err == nil && decodedToken != tokenString {
			tokenString = decodedToken
		}

		if len(strings.Split(tokenString, ".")) != 3 {
			abortUnauthorized(c, "invalid token format", "JWT token must have 3 parts separated by dots")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			// Supabase signs access tokens with HS256 (HMAC)
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			if cfg.SupabaseJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil {
			var errorMsg string
			if strings.Contains(err.Error(), "signature is invalid") {
				errorMsg = "token signature is invalid - check JWT secret"
			} else if strings.Contains(err.Error(), "token is expired") {
				errorMsg = "token has expired"
			} else if strings.Contains(err.Error(), "could not JSON decode") {
				errorMsg = "token is malformed - ensure you're using a valid Supabase JWT token"
			} else {
				errorMsg = err.Error()
			}
			abortUnauthorized(c, "invalid token", errorMsg)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			abortUnauthorized(c, "invalid token claims", "")
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			abortUnauthorized(c, "missing user id in token", "")
			return
		}

		c.Set(UserIDKey, sub)
		c.Set(RoleKey, roleFromClaims(claims))
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if token := c.Query("token"); token != "" {
			return token, ""
		}
		return "", "missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "invalid authorization header format"
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", "empty token"
	}
	return tokenString, ""
}

// roleFromClaims reads the console role from app_metadata.role, then from a
// top-level user_role claim. Anything unrecognised is a plain user.
func roleFromClaims(claims jwt.MapClaims) models.Role {
	var raw string
	if meta, ok := claims["app_metadata"].(map[string]interface{}); ok {
		raw, _ = meta["role"].(string)
	}
	if raw == "" {
		raw, _ = claims["user_role"].(string)
	}

	switch role := models.Role(strings.ToLower(raw)); role {
	case models.RoleAdmin, models.RoleEditor:
		return role
	default:
		return models.RoleUser
	}
}

func abortUnauthorized(c *gin.Context, errMsg, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: errMsg, Message: message})
}

// RequireRole lets the request through when the caller has one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "forbidden",
			Message: "role required: " + joinRoles(roles),
		})
	}
}

func joinRoles(roles []models.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}

func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func GetRole(c *gin.Context) models.Role {
	if role, ok := c.Get(RoleKey); ok {
		if r, ok := role.(models.Role); ok {
			return r
		}
	}
	return models.RoleUser
}

// GetActor returns the authenticated caller.
func GetActor(c *gin.Context) models.Actor {
	return models.Actor{ID: GetUserID(c), Role: GetRole(c)}
}
