package summarizer

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const migrationText = "Las aves migran cada año. El cambio climático afecta las rutas migratorias. " +
	"Los científicos estudian patrones climáticos globales. La migración depende de la temperatura oceánica. " +
	"Nuevas tecnologías satelitales rastrean especies migratorias."

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: []string{},
		},
		{
			name: "whitespace only",
			text: " \n\t  ",
			want: []string{},
		},
		{
			name: "short text is returned normalized",
			text: "  Hola   mundo.\n\nAdiós.  ",
			want: []string{"Hola mundo. Adiós."},
		},
		{
			name: "no terminator is one sentence",
			text: "texto sin puntuación alguna",
			want: []string{"texto sin puntuación alguna"},
		},
		{
			name: "four sentences stay verbatim",
			text: "Uno. Dos. Tres. Cuatro.",
			want: []string{"Uno. Dos. Tres. Cuatro."},
		},
		{
			name: "scored by significant word frequency",
			text: migrationText,
			want: []string{
				"Nuevas tecnologías satelitales rastrean especies migratorias.",
				"El cambio climático afecta las rutas migratorias.",
				"Los científicos estudian patrones climáticos globales.",
				"La migración depende de la temperatura oceánica.",
				"Las aves migran cada año.",
			},
		},
		{
			name: "ties keep document order and output is capped",
			text: "Uno. Dos. Tres. Cuatro. Cinco. Seis.",
			want: []string{"Cuatro.", "Cinco.", "Uno.", "Dos.", "Tres."},
		},
		{
			name: "trailing fragment is dropped",
			text: "A uno. B dos. C tres. D cuatro. E cinco. cola final",
			want: []string{"D cuatro.", "E cinco.", "A uno.", "B dos.", "C tres."},
		},
		{
			name: "stop words never score",
			text: "El la y o. Un al en. Si no es. Por con que. Son han ya.",
			want: []string{"El la y o.", "Un al en.", "Si no es.", "Por con que.", "Son han ya."},
		},
		{
			name: "repeated terminators belong to the sentence",
			text: "¿Qué pasa?! Nada... Todo bien! Seguro. Quizás mañana.",
			want: []string{"Seguro.", "Quizás mañana.", "¿Qué pasa?!", "Nada...", "Todo bien!"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Summarize(tt.text))
		})
	}
}

func TestSummarizeProperties(t *testing.T) {
	long := strings.Repeat("La educación digital transforma comunidades rurales. ", 3) +
		strings.Repeat("Los estudiantes aprenden programación. ", 4) +
		"Una frase distinta con palabras nuevas."

	first := Summarize(long)
	require.LessOrEqual(t, len(first), MaxSentences)
	require.Equal(t, first, Summarize(long))
	for _, s := range first {
		require.Equal(t, strings.TrimSpace(s), s)
		require.NotEmpty(t, s)
	}
}

func TestSummarizeConcurrent(t *testing.T) {
	want := Summarize(migrationText)

	results := make([][]string, 16)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Summarize(migrationText)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want, got)
	}
}

func TestScoreSentences(t *testing.T) {
	scored := ScoreSentences(migrationText)
	require.Len(t, scored, 5)

	require.Equal(t, 0, scored[0].Index)
	require.Equal(t, "Las aves migran cada año.", scored[0].Text)
	require.InDelta(t, 1.0/5.0, scored[0].Score, 1e-9)
	require.InDelta(t, 6.0/7.0, scored[1].Score, 1e-9)
	require.InDelta(t, 5.0/6.0, scored[2].Score, 1e-9)
	require.InDelta(t, 4.0/7.0, scored[3].Score, 1e-9)
	require.InDelta(t, 7.0/6.0, scored[4].Score, 1e-9)

	require.Nil(t, ScoreSentences("Frase corta."))
	require.Nil(t, ScoreSentences("   "))
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{
			name:  "frequency then alphabetical",
			text:  migrationText,
			limit: 3,
			want:  []string{"migratorias", "afecta", "cambio"},
		},
		{
			name:  "short and stop words excluded",
			text:  "El sol y la luna. Como para este.",
			limit: 5,
			want:  []string{},
		},
		{
			name:  "accented words stay whole",
			text:  "Educación educación ÁRBOLES",
			limit: 0,
			want:  []string{"educación", "árboles"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Keywords(tt.text, tt.limit))
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	require.Equal(t, "Hola mundo", normalizeWhitespace("Hola  mundo"))
	require.Equal(t, "a b c", normalizeWhitespace("\ufeffa b\u3000\v c\u00a0 "))
}
