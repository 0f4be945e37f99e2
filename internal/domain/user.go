package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle               UserState = "idle"
	StateWaitingLatin       UserState = "waiting_latin"
	StateWaitingGerman      UserState = "waiting_german"
	StateWaitingPIN         UserState = "waiting_pin"
	StateWaitingTranslation UserState = "waiting_translation"
	StateWaitingVocabPhoto  UserState = "waiting_vocab_photo"
	StateWaitingTextPhoto   UserState = "waiting_text_photo"
	StateQuiz               UserState = "quiz"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State        UserState
	CurrentLatin string
	// PendingText is the last scanned text, kept for the translate button
	PendingText string
	SortMode    SortMode
}
