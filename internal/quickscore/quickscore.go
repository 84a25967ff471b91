// Package quickscore scores a single pitch field while it is being edited.
// It is stateless and never reads or writes the score cache.
package quickscore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/textstat"
)

const baseline = 50

// Supported fields.
const (
	FieldTitle    = "title"
	FieldLogline  = "logline"
	FieldSynopsis = "synopsis"
	FieldBudget   = "budget"
)

var ErrUnsupportedField = errors.New("unsupported field")

// Scorer computes quick scores. The zero value is ready to use.
type Scorer struct {
	Now func() time.Time
}

func New() *Scorer {
	return &Scorer{Now: time.Now}
}

// Score rates content for one field starting from a baseline of 50.
func (s *Scorer) Score(pitchID, field, content string) (models.RealTimeValidation, error) {
	var (
		score              int
		suggestions, warns []string
	)
	switch strings.ToLower(field) {
	case FieldTitle:
		score, suggestions, warns = scoreTitle(content)
	case FieldLogline:
		score, suggestions, warns = scoreLogline(content)
	case FieldSynopsis:
		score, suggestions, warns = scoreSynopsis(content)
	case FieldBudget:
		score, suggestions, warns = scoreBudget(content)
	default:
		return models.RealTimeValidation{}, fmt.Errorf("%w: %q", ErrUnsupportedField, field)
	}

	now := time.Now
	if s != nil && s.Now != nil {
		now = s.Now
	}
	if warns == nil {
		warns = []string{}
	}
	return models.RealTimeValidation{
		PitchID:     pitchID,
		Field:       strings.ToLower(field),
		Content:     content,
		QuickScore:  clamp(score),
		Suggestions: suggestions,
		Warnings:    warns,
		Timestamp:   now().UTC(),
	}, nil
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func scoreTitle(content string) (int, []string, []string) {
	score := baseline
	suggestions := []string{"Memorable titles are short, evocative and hint at the genre."}
	var warnings []string

	title := strings.TrimSpace(content)
	words := textstat.WordCount(title)
	n := len([]rune(title))

	if words >= 1 && words <= 3 {
		score += 20
	} else if words > 3 {
		suggestions = append(suggestions, "Try trimming the title to three words or fewer.")
	}
	if n >= 8 && n <= 15 {
		score += 15
	}
	if textstat.LettersAndSpaces(title) {
		score += 10
	} else if title != "" {
		suggestions = append(suggestions, "Avoid digits and symbols unless they are part of the concept.")
	}

	switch {
	case title == "":
		warnings = append(warnings, "Title is empty.")
	case n > 60:
		warnings = append(warnings, "Title is longer than 60 characters.")
	}
	return score, suggestions, warnings
}

func scoreLogline(content string) (int, []string, []string) {
	score := baseline
	suggestions := []string{"A strong logline names the protagonist, their goal and what stands in the way."}
	var warnings []string

	words := textstat.WordCount(content)
	if words >= 25 && words <= 50 {
		score += 25
	}
	if textstat.ContainsAny(content, []string{"must", "fights", "struggles", "battles"}) {
		score += 15
	} else {
		suggestions = append(suggestions, "Add an active conflict verb such as must, fights or battles.")
	}
	if textstat.ContainsAny(content, textstat.ProtagonistTerms) {
		score += 10
	} else {
		suggestions = append(suggestions, "Make the protagonist explicit.")
	}

	switch {
	case words == 0:
		warnings = append(warnings, "Logline is empty.")
	case words < 10:
		warnings = append(warnings, "Logline is shorter than 10 words.")
	case words > 60:
		warnings = append(warnings, "Logline is longer than 60 words.")
	}
	return score, suggestions, warnings
}

func scoreSynopsis(content string) (int, []string, []string) {
	score := baseline
	suggestions := []string{"Walk through the beginning, middle and end, including the resolution."}
	var warnings []string

	words := textstat.WordCount(content)
	if words >= 150 && words <= 500 {
		score += 20
	}
	if textstat.ContainsAny(content, []string{"begins", "however", "finally"}) {
		score += 15
	} else {
		suggestions = append(suggestions, "Use transitions to mark act breaks.")
	}
	if textstat.CountTerms(content, textstat.CharacterTerms) >= 2 {
		score += 10
	} else {
		suggestions = append(suggestions, "Introduce the key characters and their relationships.")
	}

	switch {
	case words == 0:
		warnings = append(warnings, "Synopsis is empty.")
	case words < 50:
		warnings = append(warnings, "Synopsis is shorter than 50 words.")
	case words > 1000:
		warnings = append(warnings, "Synopsis is longer than 1000 words.")
	}
	return score, suggestions, warnings
}

func scoreBudget(content string) (int, []string, []string) {
	score := baseline
	suggestions := []string{"Budgets between $1M and $50M are the easiest to finance for independent projects."}
	var warnings []string

	value, ok := parseAmount(content)
	if !ok {
		warnings = append(warnings, "Budget is not a valid number.")
		return score, suggestions, warnings
	}
	if value >= 1_000_000 && value <= 50_000_000 {
		score += 20
	}
	if value > 0 {
		score += 10
	}

	switch {
	case value <= 0:
		warnings = append(warnings, "Budget must be greater than zero.")
	case value < 1_000_000:
		warnings = append(warnings, "Budget is below $1M; financing options may be limited.")
	case value > 50_000_000:
		warnings = append(warnings, "Budget is above $50M; expect closer scrutiny from financiers.")
	}
	return score, suggestions, warnings
}

// parseAmount accepts plain numbers with optional $, commas and a k/m/b suffix.
func parseAmount(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		multiplier, s = 1e3, strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		multiplier, s = 1e6, strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "b"):
		multiplier, s = 1e9, strings.TrimSuffix(s, "b")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v != v {
		return 0, false
	}
	return v * multiplier, true
}
