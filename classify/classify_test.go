package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyJobOffer(t *testing.T) {
	cls := Classify("We have an exciting Senior Engineer opportunity for you")

	assert.Equal(t, CategoryJobOffer, cls.Category)
	assert.Greater(t, cls.Confidence, 0.0)
	assert.Greater(t, cls.Matches, 0)
	assert.True(t, cls.JobRelated())
}

func TestClassifyEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		cls := Classify(text)
		assert.Equal(t, CategoryOther, cls.Category)
		assert.Zero(t, cls.Confidence)
	}
}

func TestClassifyNoLexiconMatch(t *testing.T) {
	cls := Classify("the quick brown fox jumps over a lazy dog")

	assert.Equal(t, CategoryOther, cls.Category)
	assert.Zero(t, cls.Confidence)
	assert.Zero(t, cls.Matches)
}

func TestClassifyDeterministic(t *testing.T) {
	text := "Hi! I'm a recruiter with an open position, would love to connect."

	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}

func TestClassifyRecruiterIntro(t *testing.T) {
	cls := Classify("I came across your profile and would love to connect and do a quick introduction.")

	assert.Equal(t, CategoryRecruiterIntro, cls.Category)
	assert.Greater(t, cls.Confidence, 0.0)
}

func TestClassifyFollowUp(t *testing.T) {
	cls := Classify("Just following up on my last note - any update on next steps?")

	assert.Equal(t, CategoryFollowUp, cls.Category)
}

func TestClassifyNotInterested(t *testing.T) {
	cls := Classify("Unfortunately the position has been filled, but I'll keep you in mind for future opportunities.")

	assert.Equal(t, CategoryNotInterested, cls.Category)
}

func TestClassifyGermanJobOffer(t *testing.T) {
	cls := Classify("Hallo, wir haben eine spannende Stelle als DevOps Engineer. Das Gehalt ist verhandelbar, Ihre Bewerbung würde uns freuen.")

	assert.Equal(t, CategoryJobOffer, cls.Category)
	assert.Greater(t, cls.Confidence, 0.0)
}

func TestClassifyRecruiterSignatureBoostsJobCategories(t *testing.T) {
	plain := Classify("interesting role at our company")
	signed := Classify("interesting role at our company - Talent Acquisition Partner")

	assert.True(t, signed.JobRelated())
	assert.Greater(t, signed.Matches, plain.Matches)
}

func TestClassifyLongMessageBonus(t *testing.T) {
	padding := strings.Repeat("We build infrastructure tooling for large retail clients. ", 12)
	cls := Classify(padding + "We are seeking someone for an open position on the platform team.")

	assert.Equal(t, CategoryJobOffer, cls.Category)
	assert.GreaterOrEqual(t, cls.Matches, 3)
}

func TestClassifyAlwaysReturnsKnownCategory(t *testing.T) {
	inputs := []string{
		"", "hello", "opportunity", "connect role unfortunately follow up",
		strings.Repeat("a", 10_000),
	}
	for _, in := range inputs {
		assert.True(t, Classify(in).Category.Valid(), "input %q", in)
	}
}

func TestConfidenceBounded(t *testing.T) {
	// Stack every job keyword into one message; confidence must stay < 1.
	text := strings.Join(lexicons[CategoryJobOffer], " ") + " recruiter"
	cls := Classify(text)

	assert.Greater(t, cls.Confidence, 0.5)
	assert.Less(t, cls.Confidence, 1.0)
}

func TestParseCategory(t *testing.T) {
	cat, ok := ParseCategory(" Not_Interested ")
	assert.True(t, ok)
	assert.Equal(t, CategoryNotInterested, cat)

	_, ok = ParseCategory("spam")
	assert.False(t, ok)
}
