package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/visit-tracker/internal/auth"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/account"
	"github.com/BruksfildServices01/visit-tracker/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

func AuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Sign in required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Sign in required.")
			return
		}

		id, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "unauthorized", "Session expired.")
			return
		}

		c.Set(ContextUserID, id.UserID)
		c.Set(ContextUserEmail, id.Email)

		c.Next()
	}
}

// Identity reads what AuthMiddleware stored.
func Identity(c *gin.Context) account.Identity {
	return account.Identity{
		UserID: c.GetString(ContextUserID),
		Email:  c.GetString(ContextUserEmail),
	}
}
