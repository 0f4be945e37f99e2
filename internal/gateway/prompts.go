package gateway

import (
	"strings"

	"latinvocab/internal/domain"
)

const (
	// UnknownToken replaces words missing from the vocabulary
	UnknownToken = "[unbekannt]"
	// FallbackTranslation is returned when the backend answers with nothing
	FallbackTranslation = "Übersetzung fehlgeschlagen."
)

// VocabPrompt asks for Latin-German pairs in an image
const VocabPrompt = "Extrahiere Vokabeln aus diesem Bild. Format: Latein - Deutsch. Pro Zeile ein Paar. Gib NUR die Vokabeln zurück."

// TextPrompt asks for the Latin prose in an image without line numbers
const TextPrompt = "Extrahiere den gesamten lateinischen Text aus diesem Bild. WICHTIG: Entferne alle Zahlen (wie z.B. Zeilennummern). Gib nur den reinen Text zurück, ohne zusätzliche Erklärungen oder Formatierungen."

// TranslatePrompt builds the translation request. The vocabulary is the only
// allowed source of meanings; anything else must come back as UnknownToken.
func TranslatePrompt(text string, vocabs []domain.Vocab) string {
	var list strings.Builder
	for i, v := range vocabs {
		if i > 0 {
			list.WriteByte('\n')
		}
		list.WriteString(v.Latin)
		list.WriteByte('=')
		list.WriteString(v.German)
	}

	var b strings.Builder
	b.WriteString("Du bist ein SEHR STRIKTER Lateinlehrer. KRITISCHE REGELN - ABSOLUT NICHT BRECHEN:\n\n")
	b.WriteString("1. VOKABELLISTE - DAS IST DIE EINZIGE QUELLE:\n")
	b.WriteString(list.String())
	b.WriteString("\n\n2. FÜR JEDES WORT:\n")
	b.WriteString("   - Finde die Grundform (z.B. \"ardet\" -> \"ardere\", \"puellam\" -> \"puella\")\n")
	b.WriteString("   - Prüfe: IST die Grundform in der obigen Liste?\n")
	b.WriteString("   - JA -> übersetze mit korrekter deutscher Grammatik\n")
	b.WriteString("   - NEIN -> schreibe '" + UnknownToken + "'\n\n")
	b.WriteString("3. EIGENNAMEN (Marcus, Roma, Caesar, Venus, Iulia, Claudius etc.) bleiben im Original.\n\n")
	b.WriteString("4. NUTZE KEINE EIGENEN VOKABELKENNTNISSE! NUR DIE LISTE.\n")
	b.WriteString("   - WENN EIN WORT NICHT IN DER LISTE STEHT -> '" + UnknownToken + "'\n\n")
	b.WriteString("5. Antworte NUR mit der deutschen Übersetzung, keine Erklärungen oder Einleitungen.\n\n")
	b.WriteString("Lateinischer Text: ")
	b.WriteString(text)
	return b.String()
}
