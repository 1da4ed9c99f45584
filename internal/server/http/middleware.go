package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dsemenov/accountd/internal/server/auth"
)

// accountIDKey is the gin context key under which RequireAuth stores the
// verified caller identity.
const accountIDKey = "accountID"

// RequireAuth verifies the inbound bearer token's signature and expiry and
// injects the subject account id into the request context. Handlers behind
// it treat the id as trusted input; the service core never re-verifies.
//
// The token is read from "Authorization: Bearer <token>" or, for older
// clients, from the "x-auth-token" header.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		accountID, err := auth.ParseAccountID(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(accountIDKey, accountID)
		c.Next()
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return token
		}
		return ""
	}
	return r.Header.Get("x-auth-token")
}
