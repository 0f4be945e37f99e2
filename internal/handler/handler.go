package handler

import (
	"context"
	"io"
	"sync"

	"latinvocab/internal/domain"
	"latinvocab/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot           *tele.Bot
	ctx           context.Context
	authService   *service.AuthService
	vocabService  *service.VocabService
	lessonService *service.LessonService
	quizService   *service.QuizService
	aiService     *service.AIService
	logger        *zap.Logger

	// fetchFile downloads a Telegram file
	fetchFile func(file *tele.File) (io.ReadCloser, error)

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// Services groups the services the handler talks to
type Services struct {
	Auth   *service.AuthService
	Vocab  *service.VocabService
	Lesson *service.LessonService
	Quiz   *service.QuizService
	AI     *service.AIService
}

// NewHandler creates a new handler instance. ctx bounds the AI calls.
func NewHandler(ctx context.Context, bot *tele.Bot, services Services, logger *zap.Logger) *Handler {
	h := &Handler{
		bot:           bot,
		ctx:           ctx,
		authService:   services.Auth,
		vocabService:  services.Vocab,
		lessonService: services.Lesson,
		quizService:   services.Quiz,
		aiService:     services.AI,
		logger:        logger,
		states:        make(map[int64]*domain.StateData),
	}
	if bot != nil {
		h.fetchFile = bot.File
	}
	return h
}

// RegisterHandlers registers all bot handlers. The middleware guards every
// endpoint except /start and plain text, which run the PIN prompt themselves.
func (h *Handler) RegisterHandlers(auth ...tele.MiddlewareFunc) {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Images
	h.bot.Handle(tele.OnPhoto, h.handlePhoto, auth...)
	h.bot.Handle(tele.OnDocument, h.handleDocument, auth...)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnList, h.onData(h.handleList), auth...)
	h.bot.Handle(&btnDelete, h.onData(h.handleDelete), auth...)
	h.bot.Handle(&btnAdd, h.handleAdd, auth...)
	h.bot.Handle(&btnLessons, h.handleLessons, auth...)
	h.bot.Handle(&btnLesson, h.onData(h.handleImportLesson), auth...)
	h.bot.Handle(&btnScanVocab, h.handleScanVocab, auth...)
	h.bot.Handle(&btnScanText, h.handleScanText, auth...)
	h.bot.Handle(&btnQuiz, h.handleQuiz, auth...)
	h.bot.Handle(&btnQuizNext, h.handleQuizNext, auth...)
	h.bot.Handle(&btnQuizStop, h.handleQuizStop, auth...)
	h.bot.Handle(&btnTranslator, h.handleTranslator, auth...)
	h.bot.Handle(&btnTranslateScanned, h.handleTranslateScanned, auth...)
	h.bot.Handle(&btnClear, h.handleClear, auth...)
	h.bot.Handle(&btnCancel, h.handleCancel, auth...)
	h.bot.Handle(&btnMainMenu, h.handleMainMenu, auth...)
	h.bot.Handle(&btnLogout, h.handleLogout, auth...)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback, auth...)
}

// onData adapts a payload handler to a button endpoint
func (h *Handler) onData(fn func(c tele.Context, data string) error) tele.HandlerFunc {
	return func(c tele.Context) error {
		return fn(c, cleanCallbackData(c.Callback().Data))
	}
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	copied := *state
	return &copied
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnList = tele.Btn{
		Unique: "list",
		Text:   "📚 Vokabeln",
	}
	btnDelete = tele.Btn{
		Unique: "delete",
	}
	btnAdd = tele.Btn{
		Unique: "add",
		Text:   "➕ Hinzufügen",
	}
	btnLessons = tele.Btn{
		Unique: "lessons",
		Text:   "📖 Lektionen",
	}
	btnLesson = tele.Btn{
		Unique: "lesson",
	}
	btnScanVocab = tele.Btn{
		Unique: "scan_vocab",
		Text:   "📷 Vokabeln scannen",
	}
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "🎓 Quiz",
	}
	btnQuizNext = tele.Btn{
		Unique: "quiz_next",
		Text:   "➡️ Nächste Frage",
	}
	btnQuizStop = tele.Btn{
		Unique: "quiz_stop",
		Text:   "⏹ Quiz beenden",
	}
	btnTranslator = tele.Btn{
		Unique: "translator",
		Text:   "⚡ Übersetzer",
	}
	btnScanText = tele.Btn{
		Unique: "scan_text",
		Text:   "📷 Text scannen",
	}
	btnTranslateScanned = tele.Btn{
		Unique: "translate_scanned",
		Text:   "⚡ Übersetzen",
	}
	btnClear = tele.Btn{
		Unique: "clear",
		Text:   "🗑 Leeren",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Abbrechen",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Hauptmenü",
	}
	btnLogout = tele.Btn{
		Unique: "logout",
		Text:   "🚪 Abmelden",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup(withLogout bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	rows := []tele.Row{
		menu.Row(btnList, btnAdd),
		menu.Row(btnLessons, btnScanVocab),
		menu.Row(btnQuiz),
		menu.Row(btnTranslator, btnScanText),
	}
	if withLogout {
		rows = append(rows, menu.Row(btnLogout))
	}
	menu.Inline(rows...)
	return menu
}

// cancelMarkup returns a keyboard with a single cancel button
func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}

// backMarkup returns a keyboard with the main menu button
func backMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))
	return markup
}
