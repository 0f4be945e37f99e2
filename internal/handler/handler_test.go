package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"

	"latinvocab/internal/domain"
	"latinvocab/internal/gateway"
	"latinvocab/internal/service"
	"latinvocab/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

// fakeContext records what the handler sends
type fakeContext struct {
	tele.Context
	sender   *tele.User
	text     string
	message  *tele.Message
	callback *tele.Callback
	sent     []string
}

func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Text() string             { return f.text }
func (f *fakeContext) Message() *tele.Message   { return f.message }
func (f *fakeContext) Callback() *tele.Callback { return f.callback }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, fmt.Sprint(what))
	return nil
}

func (f *fakeContext) Edit(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, fmt.Sprint(what))
	return nil
}

func (f *fakeContext) Respond(...*tele.CallbackResponse) error { return nil }

func (f *fakeContext) last() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

const testUser int64 = 1

type testHandler struct {
	*Handler
	vocabRepo *testutil.MockVocabRepository
	authRepo  *testutil.MockAuthRepository
	gateway   *testutil.MockGateway
}

func newTestHandler(t *testing.T, pin string, stored []domain.Vocab) *testHandler {
	t.Helper()

	vocabRepo := new(testutil.MockVocabRepository)
	vocabRepo.On("Load", testUser).Return(stored, nil)
	vocabRepo.On("Save", testUser, mock.Anything).Return(nil)
	authRepo := new(testutil.MockAuthRepository)
	gw := new(testutil.MockGateway)
	logger := testutil.NewTestLogger()

	vocabService := service.NewVocabService(vocabRepo, logger)
	h := NewHandler(context.Background(), nil, Services{
		Auth:   service.NewAuthService(authRepo, pin),
		Vocab:  vocabService,
		Lesson: service.NewLessonService(vocabService),
		Quiz:   service.NewQuizService(vocabService, rand.New(rand.NewSource(1))),
		AI:     service.NewAIService(gw, vocabService, logger),
	}, logger)
	h.fetchFile = func(*tele.File) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(testutil.NewTestImage().Data)), nil
	}

	return &testHandler{Handler: h, vocabRepo: vocabRepo, authRepo: authRepo, gateway: gw}
}

func textContext(text string) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: testUser}, text: text}
}

func TestHandleText_PIN(t *testing.T) {
	h := newTestHandler(t, "1234", nil)
	h.authRepo.On("IsAuthenticated", testUser).Return(false, nil)
	h.authRepo.On("SetAuthenticated", testUser).Return(nil)

	c := textContext("0000")
	require.NoError(t, h.handleText(c))
	assert.Equal(t, msgWrongPIN, c.last())
	h.authRepo.AssertNotCalled(t, "SetAuthenticated", testUser)

	c = textContext("1234")
	require.NoError(t, h.handleText(c))
	assert.Equal(t, msgAccessGranted, c.last())
	h.authRepo.AssertCalled(t, "SetAuthenticated", testUser)
}

func TestHandleText_AddFlow(t *testing.T) {
	h := newTestHandler(t, "", nil)
	h.SetState(testUser, &domain.StateData{State: domain.StateWaitingLatin})

	require.NoError(t, h.handleText(textContext("amicus")))
	assert.Equal(t, domain.StateWaitingGerman, h.GetState(testUser).State)
	assert.Equal(t, "amicus", h.GetState(testUser).CurrentLatin)

	c := textContext("der Freund")
	require.NoError(t, h.handleText(c))
	assert.Contains(t, c.last(), "Gespeichert: amicus – der Freund")
	assert.Equal(t, domain.StateWaitingLatin, h.GetState(testUser).State)

	vocabs, err := h.vocabService.All(testUser)
	require.NoError(t, err)
	assert.Equal(t, testutil.NewTestVocabs("amicus", "der Freund"), vocabs)
}

func TestHandleText_QuickAdd(t *testing.T) {
	h := newTestHandler(t, "", nil)

	c := textContext("rosa = die Rose")
	require.NoError(t, h.handleText(c))

	assert.Contains(t, c.last(), "rosa – die Rose")
	count, err := h.vocabService.Count(testUser)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandleText_Quiz(t *testing.T) {
	h := newTestHandler(t, "", testutil.NewTestVocabs("amicus", "der Freund"))

	c := &fakeContext{sender: &tele.User{ID: testUser}, callback: &tele.Callback{ID: "cb"}}
	require.NoError(t, h.handleQuiz(c))
	assert.Equal(t, "🎓 Was bedeutet: amicus", c.last())
	assert.Equal(t, domain.StateQuiz, h.GetState(testUser).State)

	c = textContext("der freund")
	require.NoError(t, h.handleText(c))
	assert.Contains(t, c.last(), "✅")

	c = textContext("der Feind")
	require.NoError(t, h.handleText(c))
	assert.Equal(t, msgPressNext, c.last())
}

func TestHandleText_Translate(t *testing.T) {
	stored := testutil.NewTestVocabs("amicus", "der Freund")
	h := newTestHandler(t, "", stored)
	h.gateway.On("TranslateText", mock.Anything, "Amicus venit.", stored).Return("Der Freund [unbekannt].", nil)
	h.SetState(testUser, &domain.StateData{State: domain.StateWaitingTranslation})

	c := textContext("Amicus venit.")
	require.NoError(t, h.handleText(c))

	assert.Equal(t, []string{msgTranslating, formatTranslation("Der Freund [unbekannt].")}, c.sent)
}

func TestHandleText_TranslateError(t *testing.T) {
	h := newTestHandler(t, "", nil)
	h.gateway.On("TranslateText", mock.Anything, "Amicus venit.", mock.Anything).Return("", fmt.Errorf("quota exceeded"))
	h.SetState(testUser, &domain.StateData{State: domain.StateWaitingTranslation})

	c := textContext("Amicus venit.")
	require.NoError(t, h.handleText(c))

	assert.Equal(t, "Übersetzungsfehler: quota exceeded", c.last())
}

func TestHandlePhoto_ScanVocab(t *testing.T) {
	h := newTestHandler(t, "", nil)
	h.gateway.On("ExtractVocab", mock.Anything, testutil.NewTestImage()).
		Return(testutil.NewTestVocabs("rosa", "die Rose"), nil)
	h.SetState(testUser, &domain.StateData{State: domain.StateWaitingVocabPhoto})

	c := &fakeContext{
		sender:  &tele.User{ID: testUser},
		message: &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "f"}}},
	}
	require.NoError(t, h.handlePhoto(c))

	assert.Equal(t, formatAdded(testutil.NewTestVocabs("rosa", "die Rose"))+"\n\nGesamt: 1 Vokabeln", c.last())
	vocabs, err := h.vocabService.All(testUser)
	require.NoError(t, err)
	assert.Equal(t, testutil.NewTestVocabs("rosa", "die Rose"), vocabs)
}

func TestHandlePhoto_ScanTextKeepsPendingText(t *testing.T) {
	h := newTestHandler(t, "", nil)
	h.gateway.On("ExtractText", mock.Anything, testutil.NewTestImage()).Return("Marcus in villa est.", nil)
	h.SetState(testUser, &domain.StateData{State: domain.StateWaitingTextPhoto})

	c := &fakeContext{
		sender:  &tele.User{ID: testUser},
		message: &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "f"}}},
	}
	require.NoError(t, h.handlePhoto(c))

	assert.Contains(t, c.last(), "Marcus in villa est.")
	assert.Equal(t, "Marcus in villa est.", h.GetState(testUser).PendingText)
}

func TestHandlePhoto_NoScanPending(t *testing.T) {
	h := newTestHandler(t, "", nil)

	c := &fakeContext{
		sender:  &tele.User{ID: testUser},
		message: &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "f"}}},
	}
	require.NoError(t, h.handlePhoto(c))

	assert.Equal(t, msgNoScanPending, c.last())
	h.gateway.AssertNotCalled(t, "ExtractVocab", mock.Anything, mock.Anything)
}

func TestHandleText_ScanDataURL(t *testing.T) {
	h := newTestHandler(t, "", nil)
	image := gateway.NewImage([]byte("abc"), "image/png")
	h.gateway.On("ExtractText", mock.Anything, image).Return("Roma aeterna.", nil)
	h.SetState(testUser, &domain.StateData{State: domain.StateWaitingTextPhoto})

	c := textContext("data:image/png;base64,YWJj")
	require.NoError(t, h.handleText(c))

	assert.Contains(t, c.last(), "Roma aeterna.")
	assert.Equal(t, "Roma aeterna.", h.GetState(testUser).PendingText)
}

func TestHandleText_ScanBadDataURL(t *testing.T) {
	h := newTestHandler(t, "", nil)
	h.SetState(testUser, &domain.StateData{State: domain.StateWaitingVocabPhoto})

	c := textContext("data:image/png;base64,!!!")
	require.NoError(t, h.handleText(c))

	assert.Contains(t, c.last(), "Fehler beim Scannen")
	assert.Equal(t, domain.StateWaitingVocabPhoto, h.GetState(testUser).State)
	h.gateway.AssertNotCalled(t, "ExtractVocab", mock.Anything, mock.Anything)
}

func TestHandleImportLesson_ShowsTotal(t *testing.T) {
	h := newTestHandler(t, "", testutil.NewTestVocabs("rosa", "die Rose"))

	c := &fakeContext{sender: &tele.User{ID: testUser}, callback: &tele.Callback{ID: "cb"}}
	require.NoError(t, h.handleImportLesson(c, "1"))

	assert.Contains(t, c.last(), "25 neue Vokabeln")
	assert.True(t, strings.HasSuffix(c.last(), "Gesamt: 26 Vokabeln"))
}

func TestHandleClear_ReturnsToIdle(t *testing.T) {
	h := newTestHandler(t, "", nil)
	h.SetState(testUser, &domain.StateData{State: domain.StateWaitingTranslation})

	c := &fakeContext{sender: &tele.User{ID: testUser}, callback: &tele.Callback{ID: "cb"}}
	require.NoError(t, h.handleClear(c))

	assert.Equal(t, msgCleared+"\n\n"+msgMainMenu, c.last())
	assert.Equal(t, domain.StateIdle, h.GetState(testUser).State)

	// the next text starts the add flow instead of a translation
	require.NoError(t, h.handleText(textContext("amicus")))
	assert.Equal(t, domain.StateWaitingGerman, h.GetState(testUser).State)
	h.gateway.AssertNotCalled(t, "TranslateText", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleClear_DropsPendingText(t *testing.T) {
	h := newTestHandler(t, "", nil)
	h.SetState(testUser, &domain.StateData{State: domain.StateIdle, PendingText: "Roma"})

	c := &fakeContext{sender: &tele.User{ID: testUser}, callback: &tele.Callback{ID: "cb"}}
	require.NoError(t, h.handleClear(c))

	assert.Equal(t, msgCleared+"\n\n"+msgMainMenu, c.last())
	assert.Empty(t, h.GetState(testUser).PendingText)
}

func TestHandleClear_NothingToClear(t *testing.T) {
	h := newTestHandler(t, "", nil)

	c := &fakeContext{sender: &tele.User{ID: testUser}, callback: &tele.Callback{ID: "cb"}}
	require.NoError(t, h.handleClear(c))

	assert.Equal(t, msgMainMenu, c.last())
}
