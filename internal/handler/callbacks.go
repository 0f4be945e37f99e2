package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"latinvocab/internal/domain"
	"latinvocab/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it means it was already edited by another callback
	// Just acknowledge and return nil - don't send new message
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		return c.Respond()
	}

	// Log the error to understand why Edit failed
	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// render edits the callback message, or sends a new one for plain messages
func (h *Handler) render(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	var opts []interface{}
	if markup != nil {
		opts = append(opts, markup)
	}

	if c.Callback() == nil {
		return c.Send(text, opts...)
	}

	if err := c.Edit(text, opts...); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, opts...)
	}
	return c.Respond()
}

// alert answers a callback with a popup
func alert(c tele.Context, text string) error {
	if c.Callback() == nil {
		return c.Send(text)
	}
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
}

// handleCallback handles callbacks no button endpoint claimed
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Buttons without payload arrive as their unique name
	unique, payload, _ := strings.Cut(data, "|")
	if callback.Unique != "" {
		unique, payload = callback.Unique, data
	}

	switch unique {
	case btnList.Unique:
		return h.handleList(c, payload)
	case btnDelete.Unique:
		return h.handleDelete(c, payload)
	case btnLesson.Unique:
		return h.handleImportLesson(c, payload)
	case btnMainMenu.Unique, btnCancel.Unique:
		return h.handleMainMenu(c)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleList shows one page of the vocabulary
func (h *Handler) handleList(c tele.Context, data string) error {
	page, mode := parseListData(data)
	return h.showList(c, page, mode)
}

func (h *Handler) showList(c tele.Context, page int, mode domain.SortMode) error {
	userID := c.Sender().ID

	vocabs, err := h.vocabService.List(userID, mode)
	if err != nil {
		h.logger.Error("Failed to load vocabulary", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, msgError)
	}

	page = clampPage(page, len(vocabs))
	return h.render(c, formatVocabPage(vocabs, page, mode), listMarkup(len(vocabs), page, mode))
}

// listMarkup builds delete, pagination and sort buttons for a page
func listMarkup(n, page int, mode domain.SortMode) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	start, end := pageBounds(page, n)
	deleteRow := tele.Row{}
	for i := start; i < end; i++ {
		payload := append([]string{strconv.Itoa(i)}, listData(page, mode)...)
		deleteRow = append(deleteRow, markup.Data(fmt.Sprintf("🗑 %d", i+1), btnDelete.Unique, payload...))
		if len(deleteRow) == 5 {
			rows = append(rows, deleteRow)
			deleteRow = tele.Row{}
		}
	}
	if len(deleteRow) > 0 {
		rows = append(rows, deleteRow)
	}

	// Add pagination buttons
	if pages := totalPages(n); pages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", btnList.Unique, listData(page-1, mode)...))
		}
		if page < pages {
			navRow = append(navRow, markup.Data("➡️", btnList.Unique, listData(page+1, mode)...))
		}
		rows = append(rows, navRow)
	}

	// Sort toggle
	if n > 1 {
		if mode == domain.SortAlphabet {
			rows = append(rows, markup.Row(markup.Data("📅 Datum", btnList.Unique, listData(1, domain.SortDate)...)))
		} else {
			rows = append(rows, markup.Row(markup.Data("🔤 A-Z", btnList.Unique, listData(1, domain.SortAlphabet)...)))
		}
	}

	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}

// handleDelete removes the entry at a displayed position
func (h *Handler) handleDelete(c tele.Context, data string) error {
	userID := c.Sender().ID

	index, page, mode, err := parseDeleteData(data)
	if err != nil {
		h.logger.Warn("Bad delete callback", zap.Error(err))
		return c.Respond()
	}

	removed, err := h.vocabService.DeleteEntry(userID, index, mode)
	if err != nil {
		h.logger.Error("Failed to delete vocab", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, msgError)
	}
	if removed {
		h.logger.Info("Vocab deleted", zap.Int64("user_id", userID), zap.Int("index", index))
	}

	return h.showList(c, page, mode)
}

// handleAdd starts the manual add flow
func (h *Handler) handleAdd(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingLatin})
	return h.render(c, msgEnterLatin, cancelMarkup())
}

// handleLessons lists the catalog
func (h *Handler) handleLessons(c tele.Context) error {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, lesson := range h.lessonService.ListLessons() {
		rows = append(rows, markup.Row(markup.Data(lessonLabel(lesson), btnLesson.Unique, strconv.Itoa(lesson.ID))))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.render(c, msgLessons, markup)
}

// handleImportLesson merges a lesson into the vocabulary
func (h *Handler) handleImportLesson(c tele.Context, data string) error {
	userID := c.Sender().ID

	id, err := strconv.Atoi(data)
	if err != nil {
		return c.Respond()
	}

	added, err := h.lessonService.ImportLesson(userID, id)
	if errors.Is(err, service.ErrLessonNotFound) {
		return alert(c, "Lektion nicht gefunden")
	}
	if err != nil {
		h.logger.Error("Failed to import lesson", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, msgError)
	}

	h.logger.Info("Lesson imported",
		zap.Int64("user_id", userID),
		zap.Int("lesson_id", id),
		zap.Int("added", len(added)),
	)
	return h.render(c, h.withTotal(userID, formatAdded(added)), backMarkup())
}

// handleScanVocab waits for a vocabulary photo
func (h *Handler) handleScanVocab(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingVocabPhoto})
	return h.render(c, msgSendVocabPic, cancelMarkup())
}

// handleScanText waits for a text photo
func (h *Handler) handleScanText(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingTextPhoto})
	return h.render(c, msgSendTextPic, cancelMarkup())
}

// handleQuiz asks the first question
func (h *Handler) handleQuiz(c tele.Context) error {
	userID := c.Sender().ID

	session, err := h.quizService.Start(userID)
	return h.showQuestion(c, userID, session, err)
}

// handleQuizNext asks another question
func (h *Handler) handleQuizNext(c tele.Context) error {
	userID := c.Sender().ID

	session, err := h.quizService.Next(userID)
	if errors.Is(err, service.ErrNoActiveQuestion) {
		session, err = h.quizService.Start(userID)
	}
	return h.showQuestion(c, userID, session, err)
}

func (h *Handler) showQuestion(c tele.Context, userID int64, session domain.QuizSession, err error) error {
	if errors.Is(err, service.ErrNoVocabulary) {
		return alert(c, msgNoVocabulary)
	}
	if err != nil {
		h.logger.Error("Failed to start quiz", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, msgError)
	}

	h.SetState(userID, &domain.StateData{State: domain.StateQuiz})

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnQuizStop))
	return h.render(c, formatQuestion(session.Prompt), markup)
}

// handleQuizStop ends the quiz
func (h *Handler) handleQuizStop(c tele.Context) error {
	return h.handleMainMenu(c)
}

// handleTranslator waits for Latin text
func (h *Handler) handleTranslator(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingTranslation})
	return h.render(c, msgEnterText, cancelMarkup())
}

// handleTranslateScanned translates the last scanned text
func (h *Handler) handleTranslateScanned(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.PendingText == "" {
		return alert(c, msgNoPending)
	}
	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingTranslation})
	return h.translate(c, userID, state.PendingText)
}

// handleClear drops the shown output and the scanned text
func (h *Handler) handleClear(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	text := msgMainMenu
	if state.PendingText != "" || state.State == domain.StateWaitingTranslation {
		text = msgCleared + "\n\n" + msgMainMenu
	}

	h.ResetState(userID)
	return h.render(c, text, h.menu())
}
