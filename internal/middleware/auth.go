package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	ContextUserID       = "userID"
	ContextBarbershopID = "barbershopID"
	ContextUserRole     = "userRole"
)

// AuthMiddleware verifies staff tokens issued by the external auth service.
// Claims: sub (user id), barbershopId, role.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	}))

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Token ausente.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Cabeçalho inválido.")
			return
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(parts[1], claims, func(*jwt.Token) (any, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token inválido.")
			return
		}

		userID, ok1 := claims["sub"].(float64)
		barbershopID, ok2 := claims["barbershopId"].(float64)
		role, _ := claims["role"].(string)
		if !ok1 || !ok2 || userID <= 0 || barbershopID <= 0 {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Token sem barbearia.")
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextBarbershopID, uint(barbershopID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}
