package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/socialhub-app/backend/internal/models"
	"github.com/socialhub-app/backend/internal/repositories"
	"github.com/socialhub-app/backend/pkg/response"
)

// ContextUserKey is where the verified claims are stored on the request context.
const ContextUserKey = "user"

// JWTAuthMiddleware checks for a valid bearer JWT and extracts user claims.
// After the signature and expiry check it compares the token's epoch against
// the user record, so tokens issued before a password change (or for a
// deleted account) stop working.
func JWTAuthMiddleware(jwtSecret string, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				// Malformed, unsigned and expired tokens all look the same
				// to the caller.
				return response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid token")
			}

			userID, err := strconv.ParseUint(claims.UserID, 10, 32)
			if err != nil {
				return response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid token")
			}
			user, err := userRepo.GetUserByID(uint(userID))
			if err != nil || user.TokenEpoch != claims.Epoch {
				return response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid token")
			}

			// Store user claims in context
			c.Set(ContextUserKey, claims)

			return next(c)
		}
	}
}

// ClaimsFromContext pulls the verified claims a protected handler runs under.
func ClaimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get(ContextUserKey).(*models.JwtCustomClaims)
	return claims
}
