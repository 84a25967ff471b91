package quickscore

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedScorer() *Scorer {
	return &Scorer{Now: func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }}
}

func TestScore_ShortTitle(t *testing.T) {
	res, err := fixedScorer().Score("p1", "title", "Nova")

	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.QuickScore, 70)
	assert.Equal(t, 80, res.QuickScore)
	assert.Empty(t, res.Warnings)
	assert.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "p1", res.PitchID)
	assert.Equal(t, "title", res.Field)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), res.Timestamp)
}

func TestScore_TitleLengthBand(t *testing.T) {
	res, err := fixedScorer().Score("p1", "title", "Dark Harbor")

	require.NoError(t, err)
	assert.Equal(t, 95, res.QuickScore)
}

func TestScore_TitleWithDigits(t *testing.T) {
	res, err := fixedScorer().Score("p1", "title", "Apollo 13")

	require.NoError(t, err)
	assert.Equal(t, 85, res.QuickScore)
	assert.Len(t, res.Suggestions, 2)
}

func TestScore_LoglineFullMarks(t *testing.T) {
	words := []string{"the", "protagonist", "must"}
	for len(words) < 30 {
		words = append(words, "journey")
	}
	logline := strings.Join(words, " ")
	require.Equal(t, 30, len(strings.Fields(logline)))

	res, err := fixedScorer().Score("p1", "logline", logline)

	require.NoError(t, err)
	assert.Equal(t, 100, res.QuickScore)
	assert.NotEmpty(t, res.Suggestions)
	assert.Empty(t, res.Warnings)
}

func TestScore_Synopsis(t *testing.T) {
	body := strings.Repeat("word ", 200) + "The story begins when her brother and his friend vanish."

	res, err := fixedScorer().Score("p1", "synopsis", body)

	require.NoError(t, err)
	assert.Equal(t, 95, res.QuickScore)
	assert.Empty(t, res.Warnings)
}

func TestScore_Budget(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		score    int
		warnings int
	}{
		{"in band", "5000000", 80, 0},
		{"dollar and commas", "$12,500,000", 80, 0},
		{"suffix", "2.5m", 80, 0},
		{"below band", "250000", 60, 1},
		{"above band", "90000000", 60, 1},
		{"zero", "0", 50, 1},
		{"garbage", "lots of money", 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := fixedScorer().Score("p1", "budget", tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.score, res.QuickScore)
			assert.Len(t, res.Warnings, tt.warnings)
		})
	}
}

func TestScore_UnsupportedField(t *testing.T) {
	_, err := fixedScorer().Score("p1", "genre", "horror")

	assert.ErrorIs(t, err, ErrUnsupportedField)
}

func TestScore_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("abc XYZ 0123456789 $,.!?-must hero protagonist however finally begins")
	fields := []string{FieldTitle, FieldLogline, FieldSynopsis, FieldBudget}

	var s *Scorer
	for i := 0; i < 400; i++ {
		n := rng.Intn(800)
		buf := make([]rune, n)
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		for _, f := range fields {
			res, err := s.Score("p", f, string(buf))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.QuickScore, 0)
			assert.LessOrEqual(t, res.QuickScore, 100)
			assert.NotEmpty(t, res.Suggestions)
			assert.NotNil(t, res.Warnings)
		}
	}

	for _, f := range fields {
		res, err := s.Score("p", f, "")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.QuickScore, 0)
		assert.LessOrEqual(t, res.QuickScore, 100)
		assert.NotEmpty(t, res.Warnings, f)
	}
}
