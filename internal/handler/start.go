package handler

import (
	"latinvocab/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Check if authorized
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgError)
	}

	if !authorized {
		// Request PIN
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingPIN})
		return c.Send(msgEnterPIN)
	}

	// Show main menu
	h.ResetState(userID)
	return c.Send(msgMainMenu, h.menu())
}

// handleMainMenu returns to the main menu and drops any pending flow
func (h *Handler) handleMainMenu(c tele.Context) error {
	userID := c.Sender().ID

	h.quizService.Stop(userID)
	h.ResetState(userID)
	return h.render(c, msgMainMenu, h.menu())
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	return h.handleMainMenu(c)
}

// handleLogout forgets the PIN entry of the user
func (h *Handler) handleLogout(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.authService.Logout(userID); err != nil {
		h.logger.Error("Failed to log out", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: msgError})
	}

	h.logger.Info("User logged out", zap.Int64("user_id", userID))

	h.quizService.Stop(userID)
	h.SetState(userID, &domain.StateData{State: domain.StateWaitingPIN})
	return h.render(c, msgLoggedOut, nil)
}

// menu returns the main menu, with logout only when a PIN is configured
func (h *Handler) menu() *tele.ReplyMarkup {
	return mainMenuMarkup(h.authService.Required())
}
