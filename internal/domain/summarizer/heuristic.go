package summarizer

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// ShortTextSentences is the sentence count at or below which text is returned verbatim.
	ShortTextSentences = 4
	// MaxSentences caps the number of sentences in a summary.
	MaxSentences = 5
	// MinWordRunes is the length a word must exceed to count as significant.
	MinWordRunes = 4
)

var (
	// \s alone is ASCII-only in RE2; the extra classes cover NBSP, the Unicode
	// space separators, the line/paragraph separators and the BOM.
	whitespaceRun   = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)
	wordPattern     = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)
)

// ScoredSentence pairs a segmented sentence with its normalized score.
type ScoredSentence struct {
	Index int     `json:"index"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Summarize returns up to MaxSentences representative sentences of text,
// highest score first. Texts with ShortTextSentences sentences or fewer come
// back as a single whitespace-normalized element. It never fails and keeps
// no state between calls.
func Summarize(text string) []string {
	out, _ := summarize(text)
	return out
}

// ScoreSentences segments text and scores every sentence in document order.
// It returns nil when text would take the short-text path.
func ScoreSentences(text string) []ScoredSentence {
	clean, sentences := segment(text)
	if clean == "" || len(sentences) <= ShortTextSentences {
		return nil
	}
	return scoreSentences(clean, sentences)
}

// Keywords returns the limit most frequent significant words of text,
// ties broken alphabetically. A non-positive limit returns every word.
func Keywords(text string, limit int) []string {
	clean := normalizeWhitespace(text)
	if clean == "" {
		return nil
	}
	freq := wordFrequencies(clean)
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] == freq[words[j]] {
			return words[i] < words[j]
		}
		return freq[words[i]] > freq[words[j]]
	})
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words
}

func summarize(text string) ([]string, bool) {
	clean, sentences := segment(text)
	if clean == "" {
		return []string{}, false
	}
	if len(sentences) <= ShortTextSentences {
		return []string{clean}, true
	}

	scored := scoreSentences(clean, sentences)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > MaxSentences {
		scored = scored[:MaxSentences]
	}
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, strings.TrimSpace(s.Text))
	}
	return out, false
}

// segment returns the normalized text (empty when there is nothing but
// whitespace) and its raw sentences, untrimmed.
func segment(text string) (string, []string) {
	clean := normalizeWhitespace(text)
	if clean == "" {
		return "", nil
	}
	sentences := sentencePattern.FindAllString(clean, -1)
	if len(sentences) == 0 {
		sentences = []string{clean}
	}
	return clean, sentences
}

func normalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

func scoreSentences(clean string, sentences []string) []ScoredSentence {
	freq := wordFrequencies(clean)
	scored := make([]ScoredSentence, 0, len(sentences))
	for i, sentence := range sentences {
		words := tokenize(sentence)
		total := 0
		for _, w := range words {
			total += freq[w]
		}
		denom := len(words)
		if denom == 0 {
			denom = 1
		}
		scored = append(scored, ScoredSentence{
			Index: i,
			Text:  strings.TrimSpace(sentence),
			Score: float64(total) / float64(denom),
		})
	}
	return scored
}

func wordFrequencies(clean string) map[string]int {
	freq := make(map[string]int)
	for _, w := range tokenize(clean) {
		if utf8.RuneCountInString(w) > MinWordRunes && !isStopWord(w) {
			freq[w]++
		}
	}
	return freq
}

func tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}
