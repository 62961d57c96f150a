package approve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astegaru/linkedin-responder/classify"
	"github.com/astegaru/linkedin-responder/respond"
	"github.com/astegaru/linkedin-responder/session"
)

func draft(cat classify.Category, confidence float64, origin respond.Origin) respond.Draft {
	return respond.Draft{
		Message:        session.Message{ConversationID: "conv-1", SenderName: "Dana"},
		Classification: classify.Classification{Category: cat, Confidence: confidence},
		Text:           "Thanks for reaching out.",
		Origin:         origin,
	}
}

func TestPolicyGateNoAllowListNeverSends(t *testing.T) {
	gate := NewPolicyGate(nil, 0)

	// Even a perfect-confidence template draft must be skipped without an
	// explicit opt-in.
	for _, cat := range classify.Categories {
		d := gate.Review(draft(cat, 1.0, respond.OriginTemplate))
		assert.Equal(t, ActionSkip, d.Action, "category %s", cat)
	}
}

func TestPolicyGateAllowListedTemplateDraftSends(t *testing.T) {
	gate := NewPolicyGate([]string{"not_interested"}, 0.5)

	d := gate.Review(draft(classify.CategoryNotInterested, 0.8, respond.OriginTemplate))
	assert.Equal(t, ActionSend, d.Action)
	assert.Equal(t, "Thanks for reaching out.", d.Text)
}

func TestPolicyGateSkipsCategoriesOffTheList(t *testing.T) {
	gate := NewPolicyGate([]string{"not_interested"}, 0.5)

	d := gate.Review(draft(classify.CategoryJobOffer, 0.9, respond.OriginTemplate))
	assert.Equal(t, ActionSkip, d.Action)
}

func TestPolicyGateSkipsLowConfidence(t *testing.T) {
	gate := NewPolicyGate([]string{"not_interested"}, 0.7)

	d := gate.Review(draft(classify.CategoryNotInterested, 0.4, respond.OriginTemplate))
	assert.Equal(t, ActionSkip, d.Action)
}

func TestPolicyGateNeverAutoSendsAIDrafts(t *testing.T) {
	gate := NewPolicyGate([]string{"not_interested"}, 0.5)

	d := gate.Review(draft(classify.CategoryNotInterested, 0.9, respond.OriginAI))
	assert.Equal(t, ActionSkip, d.Action)
}

func TestPolicyGateIgnoresUnknownCategories(t *testing.T) {
	gate := NewPolicyGate([]string{"spam", "junk"}, 0.5)

	// Only unknown names configured behaves like an empty allow-list.
	d := gate.Review(draft(classify.CategoryNotInterested, 0.9, respond.OriginTemplate))
	assert.Equal(t, ActionSkip, d.Action)
}
