package summarizer

// Spanish articles, conjunctions and common prepositions excluded from scoring.
var stopWords = map[string]struct{}{
	"el": {}, "la": {}, "los": {}, "las": {}, "un": {}, "una": {},
	"y": {}, "o": {}, "pero": {}, "si": {}, "no": {}, "del": {},
	"al": {}, "en": {}, "por": {}, "con": {}, "que": {}, "como": {},
	"para": {}, "este": {}, "esta": {}, "son": {}, "han": {}, "está": {},
}

func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
