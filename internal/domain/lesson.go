package domain

// Lesson is a predefined vocabulary pack
type Lesson struct {
	ID     int
	Name   string
	Vocabs []Vocab
}

var lessons = []Lesson{
	{
		ID:   1,
		Name: "Lektion 1",
		Vocabs: []Vocab{
			{Latin: "sol", German: "die Sonne"},
			{Latin: "ardere", German: "(ver)brennen; entbrannt sein"},
			{Latin: "silentium", German: "die Ruhe, die Stille; das Schweigen"},
			{Latin: "esse", German: "sein"},
			{Latin: "villa", German: "das (Land-)Haus; das Landgut"},
			{Latin: "iacere", German: "(da)liegen"},
			{Latin: "etiam", German: "auch; sogar"},
			{Latin: "canis", German: "der Hund"},
			{Latin: "tacere", German: "schweigen, still sein"},
			{Latin: "asinus", German: "der Esel"},
			{Latin: "non iam", German: "nicht mehr"},
			{Latin: "clamare", German: "schreien, (laut) rufen"},
			{Latin: "stare", German: "(da)stehen"},
			{Latin: "et", German: "und; auch"},
			{Latin: "exspectare", German: "warten (auf), erwarten"},
			{Latin: "ubi", German: "wo?"},
			{Latin: "cur", German: "warum?"},
			{Latin: "amica", German: "die Freundin"},
			{Latin: "non", German: "nicht"},
			{Latin: "venire", German: "kommen"},
			{Latin: "cessare", German: "zögern; sich Zeit lassen"},
			{Latin: "placere", German: "gefallen; Spaß machen"},
			{Latin: "subito", German: "plötzlich"},
			{Latin: "quis/quid", German: "wer?/was?"},
			{Latin: "ecce", German: "schau!/schaut!, sieh da!/seht!"},
		},
	},
	{
		ID:   2,
		Name: "Lektion 2",
		Vocabs: []Vocab{
			{Latin: "ibi", German: "dort, da"},
			{Latin: "sed", German: "aber, (je)doch; sondern"},
			{Latin: "matrona", German: "die (verheiratete) Frau"},
			{Latin: "servus/serva", German: "der Sklave/die Sklavin; der Diener/die Dienerin"},
			{Latin: "atque/ac", German: "und, und auch"},
			{Latin: "apparere", German: "erscheinen, sich zeigen; offensichtlich sein"},
			{Latin: "familia", German: "die Familie"},
			{Latin: "gaudere", German: "sich freuen"},
			{Latin: "ridere", German: "lachen"},
			{Latin: "cito", German: "schnell"},
			{Latin: "appropinquare", German: "sich nähern, näher kommen"},
			{Latin: "iam", German: "schon, bereits; nunmehr"},
			{Latin: "procul", German: "von Weitem; in der Ferne, weit weg"},
			{Latin: "salutare", German: "(be)grüßen"},
			{Latin: "salve!/salvete!", German: "sei/seid gegrüßt!, hallo!"},
			{Latin: "tum", German: "da; dann, darauf; damals"},
			{Latin: "amicus", German: "der Freund"},
			{Latin: "properare", German: "eilen; sich beeilen"},
			{Latin: "timere", German: "(sich) fürchten, Angst haben (vor)"},
			{Latin: "nunc", German: "nun, jetzt"},
			{Latin: "apportare", German: "herbeitragen, (mit)bringen"},
			{Latin: "certe", German: "sicher, bestimmt"},
			{Latin: "donum", German: "das Geschenk"},
			{Latin: "nam", German: "denn"},
			{Latin: "equus", German: "das Pferd"},
		},
	},
}

// Lessons returns a copy of the built-in lesson catalog
func Lessons() []Lesson {
	out := make([]Lesson, len(lessons))
	for i, l := range lessons {
		out[i] = l.clone()
	}
	return out
}

// FindLesson looks up a lesson by id
func FindLesson(id int) (Lesson, bool) {
	for _, l := range lessons {
		if l.ID == id {
			return l.clone(), true
		}
	}
	return Lesson{}, false
}

func (l Lesson) clone() Lesson {
	l.Vocabs = append([]Vocab(nil), l.Vocabs...)
	return l
}
