package handler

import (
	"errors"
	"fmt"
	"strings"

	"latinvocab/internal/domain"
	"latinvocab/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgError)
	}

	// If not authorized, check PIN
	if !authorized {
		return h.handlePIN(c, userID, text)
	}

	// User is authorized, handle based on state
	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingLatin:
		return h.askGerman(c, userID, text)

	case domain.StateWaitingGerman:
		return h.saveEntry(c, userID, state.CurrentLatin, text)

	case domain.StateWaitingTranslation:
		return h.translate(c, userID, text)

	case domain.StateQuiz:
		return h.answerQuiz(c, userID, text)

	case domain.StateWaitingVocabPhoto, domain.StateWaitingTextPhoto:
		if strings.HasPrefix(text, "data:image/") {
			return h.scanDataURL(c, userID, text)
		}
		return c.Send(msgSendPhoto, cancelMarkup())

	default:
		// Idle state - quick add or start the add flow with this word
		if latin, german, ok := parseQuickAdd(text); ok {
			return h.quickAdd(c, userID, latin, german)
		}
		return h.askGerman(c, userID, text)
	}
}

// handlePIN checks a PIN entry
func (h *Handler) handlePIN(c tele.Context, userID int64, text string) error {
	ok, err := h.authService.CheckSecret(userID, text)
	if err != nil {
		h.logger.Error("Failed to authorize user", zap.Error(err))
		return c.Send(msgError)
	}
	if !ok {
		h.logger.Info("Wrong PIN", zap.Int64("user_id", userID))
		return c.Send(msgWrongPIN)
	}

	h.logger.Info("User authorized", zap.Int64("user_id", userID))
	h.ResetState(userID)
	return c.Send(msgAccessGranted, h.menu())
}

func (h *Handler) askGerman(c tele.Context, userID int64, latin string) error {
	h.SetState(userID, &domain.StateData{
		State:        domain.StateWaitingGerman,
		CurrentLatin: latin,
	})
	return c.Send(fmt.Sprintf(msgEnterGerman, latin), cancelMarkup())
}

func (h *Handler) saveEntry(c tele.Context, userID int64, latin, german string) error {
	added, err := h.vocabService.AddEntry(userID, latin, german)
	if err != nil {
		h.logger.Error("Failed to save vocab",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Send(msgError)
	}
	if !added {
		return c.Send(fmt.Sprintf(msgEnterGerman, latin), cancelMarkup())
	}

	h.logger.Info("Vocab saved",
		zap.Int64("user_id", userID),
		zap.String("latin", latin),
	)

	// Reset to waiting for next word
	h.SetState(userID, &domain.StateData{State: domain.StateWaitingLatin})

	return c.Send(fmt.Sprintf(msgSaved, latin, german), cancelMarkup())
}

func (h *Handler) quickAdd(c tele.Context, userID int64, latin, german string) error {
	if _, err := h.vocabService.AddEntry(userID, latin, german); err != nil {
		h.logger.Error("Failed to save vocab", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgError)
	}
	return c.Send(fmt.Sprintf("✅ Gespeichert: %s – %s", latin, german), h.menu())
}

func (h *Handler) translate(c tele.Context, userID int64, text string) error {
	if h.aiService.Busy(userID, service.OpTranslate) {
		return c.Send(msgTranslateBusy)
	}
	if err := c.Send(msgTranslating); err != nil {
		h.logger.Warn("Failed to send progress message", zap.Error(err))
	}

	out, err := h.aiService.Translate(h.ctx, userID, text)
	if err != nil {
		return c.Send(h.translateError(userID, err))
	}

	return c.Send(formatTranslation(out), translationMarkup())
}

// translateError maps a translation failure to a reply
func (h *Handler) translateError(userID int64, err error) string {
	if errors.Is(err, service.ErrOperationInFlight) {
		return msgTranslateBusy
	}
	h.logger.Error("Translation failed", zap.Error(err), zap.Int64("user_id", userID))
	return fmt.Sprintf(msgTranslateErr, err.Error())
}

func (h *Handler) answerQuiz(c tele.Context, userID int64, text string) error {
	if h.quizService.State(userID) != domain.QuizAwaitingAnswer {
		return c.Send(msgPressNext, quizMarkup())
	}

	verdict, err := h.quizService.Submit(userID, text)
	if err != nil {
		h.logger.Error("Failed to judge answer", zap.Error(err))
		return c.Send(msgError)
	}

	session, _ := h.quizService.Current(userID)
	return c.Send(formatVerdict(session, verdict), quizMarkup())
}

// withTotal appends the vocabulary size to a reply
func (h *Handler) withTotal(userID int64, text string) string {
	total, err := h.vocabService.Count(userID)
	if err != nil {
		h.logger.Warn("Failed to count vocabulary", zap.Error(err), zap.Int64("user_id", userID))
		return text
	}
	return fmt.Sprintf("%s\n\nGesamt: %d Vokabeln", text, total)
}

// translationMarkup is shown under a translation
func translationMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnClear, btnMainMenu))
	return markup
}

// quizMarkup is shown under a quiz message
func quizMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnQuizNext, btnQuizStop))
	return markup
}
