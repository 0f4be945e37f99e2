package handler

import (
	"fmt"
	"strconv"
	"strings"

	"latinvocab/internal/domain"
	"latinvocab/internal/gateway"
)

// pageSize is the number of entries per list page
const pageSize = 10

const (
	msgMainMenu      = "🏠 Hauptmenü\n\nWähle eine Aktion:"
	msgEnterPIN      = "🔒 Bitte gib die PIN ein:"
	msgWrongPIN      = "Falsche PIN!"
	msgAccessGranted = "✅ Zugang gewährt!\n\n" + msgMainMenu
	msgLoggedOut     = "👋 Abgemeldet.\n\n" + msgEnterPIN
	msgError         = "Ein Fehler ist aufgetreten. Bitte versuche es später erneut."
	msgEnterLatin    = "Lateinisches Wort eingeben:\n\n(oder direkt „latein = deutsch“)"
	msgEnterGerman   = "Deutsche Bedeutung von „%s“:"
	msgSaved         = "✅ Gespeichert: %s – %s\n\nNächstes lateinisches Wort:"
	msgEmptyList     = "Noch keine Vokabeln. Füge welche hinzu oder importiere eine Lektion."
	msgNoVocabulary  = "Keine Vokabeln vorhanden. Füge zuerst welche hinzu."
	msgLessons       = "📖 Lektionen\n\nWähle eine Lektion zum Importieren:"
	msgSendVocabPic  = "📷 Sende ein Foto deiner Vokabelliste."
	msgSendTextPic   = "📷 Sende ein Foto des lateinischen Textes."
	msgSendPhoto     = "Bitte sende ein Foto."
	msgNoScanPending = "Tippe zuerst auf „📷 Vokabeln scannen“ oder „📷 Text scannen“."
	msgAnalyzing     = "⏳ Analysiere Bild..."
	msgTranslating   = "⏳ Übersetze..."
	msgEnterText     = "⚡ Übersetzer\n\nSende den lateinischen Text:"
	msgScanBusy      = "⏳ Ein Scan läuft bereits."
	msgTranslateBusy = "⏳ Eine Übersetzung läuft bereits."
	msgScanError     = "Fehler beim Scannen: %s"
	msgTranslateErr  = "Übersetzungsfehler: %s"
	msgPressNext     = "Tippe auf „Nächste Frage“."
	msgCleared       = "🗑 Geleert."
	msgNoPending     = "Kein gescannter Text vorhanden."
	msgNoTextFound   = "Kein Text erkannt. Versuche ein schärferes Foto."
)

// sortLabel returns the display name of a sort mode
func sortLabel(mode domain.SortMode) string {
	if mode == domain.SortAlphabet {
		return "A-Z"
	}
	return "Datum"
}

// totalPages returns the page count for n entries, at least one
func totalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// clampPage keeps page within [1, totalPages(n)]
func clampPage(page, n int) int {
	if page < 1 {
		return 1
	}
	if last := totalPages(n); page > last {
		return last
	}
	return page
}

// pageBounds returns the slice bounds of a page
func pageBounds(page, n int) (int, int) {
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > n {
		end = n
	}
	return start, end
}

// formatVocabPage renders one page of the displayed list. Numbers are
// positions in the whole displayed list.
func formatVocabPage(vocabs []domain.Vocab, page int, mode domain.SortMode) string {
	if len(vocabs) == 0 {
		return msgEmptyList
	}

	page = clampPage(page, len(vocabs))
	start, end := pageBounds(page, len(vocabs))

	var b strings.Builder
	fmt.Fprintf(&b, "📚 Deine Vokabeln (%s)", sortLabel(mode))
	if pages := totalPages(len(vocabs)); pages > 1 {
		fmt.Fprintf(&b, " – Seite %d/%d", page, pages)
	}
	b.WriteString("\n\n")
	for i := start; i < end; i++ {
		fmt.Fprintf(&b, "%d. %s – %s\n", i+1, vocabs[i].Latin, vocabs[i].German)
	}
	fmt.Fprintf(&b, "\nGesamt: %d Vokabeln", len(vocabs))
	return b.String()
}

// formatAdded reports entries added by an import or scan
func formatAdded(added []domain.Vocab) string {
	if len(added) == 0 {
		return "Keine neuen Vokabeln. Alle waren bereits vorhanden."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ %d neue Vokabeln hinzugefügt:\n\n", len(added))
	for _, v := range added {
		fmt.Fprintf(&b, "• %s – %s\n", v.Latin, v.German)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatTranslation renders a translation with the unknown-word hint
func formatTranslation(text string) string {
	return fmt.Sprintf("⚡ Übersetzung:\n\n%s\n\nℹ️ %s steht für Wörter, die nicht in deiner Liste sind.",
		text, gateway.UnknownToken)
}

// formatQuestion renders a quiz prompt
func formatQuestion(prompt domain.Vocab) string {
	return fmt.Sprintf("🎓 Was bedeutet: %s", prompt.Latin)
}

// formatVerdict renders the judged answer
func formatVerdict(session domain.QuizSession, verdict domain.Verdict) string {
	mark := "❌"
	if verdict.Correct {
		mark = "✅"
	}
	return fmt.Sprintf("%s\n\n%s %s", formatQuestion(session.Prompt), mark, verdict.Message)
}

// lessonLabel is the text of a lesson button
func lessonLabel(lesson domain.Lesson) string {
	return fmt.Sprintf("%s (%d)", lesson.Name, len(lesson.Vocabs))
}

// parseQuickAdd splits "latin = german" or "latin - german"
func parseQuickAdd(text string) (latin, german string, ok bool) {
	for _, sep := range []string{"=", " - "} {
		la, de, found := strings.Cut(text, sep)
		if !found {
			continue
		}
		la, de = strings.TrimSpace(la), strings.TrimSpace(de)
		if la == "" || de == "" {
			return "", "", false
		}
		return la, de, true
	}
	return "", "", false
}

// listData encodes the payload of a list button
func listData(page int, mode domain.SortMode) []string {
	return []string{strconv.Itoa(page), string(mode)}
}

// parseListData decodes "page|mode"; bad input falls back to page 1, date order
func parseListData(data string) (int, domain.SortMode) {
	parts := strings.Split(data, "|")
	page, err := strconv.Atoi(parts[0])
	if err != nil {
		page = 1
	}
	mode := domain.SortDate
	if len(parts) > 1 {
		mode = domain.ParseSortMode(parts[1])
	}
	return page, mode
}

// parseDeleteData decodes "index|page|mode"
func parseDeleteData(data string) (int, int, domain.SortMode, error) {
	index, rest, ok := strings.Cut(data, "|")
	if !ok {
		return 0, 0, "", fmt.Errorf("invalid delete data: %q", data)
	}
	i, err := strconv.Atoi(index)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid delete index: %w", err)
	}
	page, mode := parseListData(rest)
	return i, page, mode, nil
}
