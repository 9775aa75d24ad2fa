package middleware

import (
	"net/http"

	"activity-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// WebhookTokenHeader carries the token configured for the webhook on the gateway side.
const WebhookTokenHeader = "asaas-access-token"

// WebhookToken checks the gateway's access token against a bcrypt hash.
// An empty hash disables the check.
func WebhookToken(tokenHash string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tokenHash == "" {
			return next
		}
		hash := []byte(tokenHash)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(WebhookTokenHeader)
			if token == "" || bcrypt.CompareHashAndPassword(hash, []byte(token)) != nil {
				logger.Warn("Webhook rejected, bad access token",
					zap.String("ip", clientIP(r)),
					zap.Bool("token_present", token != ""),
				)
				utils.ResponseText(w, http.StatusUnauthorized, "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
