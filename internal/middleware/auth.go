package middleware

import (
	"latinvocab/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgError    = "Ein Fehler ist aufgetreten. Bitte versuche es später erneut."
	msgEnterPIN = "🔒 Bitte gib die PIN ein:"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			// Check authorization
			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return reply(c, msgError)
			}

			// If not authorized and not /start command, prompt for PIN
			if !authorized && c.Text() != "/start" {
				logger.Debug("Rejected unauthorized update", zap.Int64("user_id", userID))
				return reply(c, msgEnterPIN)
			}

			// User is authorized or using /start, continue
			return next(c)
		}
	}
}

// reply answers callbacks with a popup and messages with a new message
func reply(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
