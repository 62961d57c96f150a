// Package approve decides what happens to a draft reply: a human reviews it
// interactively, or an explicit unattended policy applies. The default
// unattended behavior is to skip; the agent never sends without either a
// human or an opted-in allow-list.
package approve

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/astegaru/linkedin-responder/classify"
	"github.com/astegaru/linkedin-responder/respond"
)

// Action is the reviewer's choice for a draft.
type Action string

const (
	ActionSend Action = "send"
	ActionEdit Action = "edit"
	ActionSkip Action = "skip"
)

// Decision is the outcome of reviewing one draft. Text carries the final
// reply for send and edit.
type Decision struct {
	Action Action
	Text   string
}

// Gate reviews drafts. Review has no side effects beyond terminal I/O;
// transmission belongs to the orchestrator.
type Gate interface {
	Review(draft respond.Draft) Decision
}

// InteractiveGate blocks on human input for every draft.
type InteractiveGate struct{}

// Review shows the message and the draft, then prompts for send/edit/skip.
// Any prompt failure (EOF, closed terminal) degrades to skip.
func (InteractiveGate) Review(draft respond.Draft) Decision {
	pterm.DefaultBox.
		WithTitle(fmt.Sprintf("Message from %s (%s, confidence %.2f)",
			draft.Message.SenderName, draft.Classification.Category, draft.Classification.Confidence)).
		Println(draft.Message.Text)

	pterm.DefaultBox.
		WithTitle(fmt.Sprintf("Suggested reply (%s)", draft.Origin)).
		Println(draft.Text)

	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{string(ActionSend), string(ActionEdit), string(ActionSkip)}).
		WithDefaultOption(string(ActionSkip)).
		Show("What should happen with this reply?")
	if err != nil {
		pterm.Warning.Printf("Prompt failed (%v), skipping\n", err)
		return Decision{Action: ActionSkip}
	}

	switch Action(choice) {
	case ActionSend:
		return Decision{Action: ActionSend, Text: draft.Text}
	case ActionEdit:
		edited, err := pterm.DefaultInteractiveTextInput.
			WithMultiLine(true).
			WithDefaultValue(draft.Text).
			Show("Edit the reply")
		if err != nil {
			pterm.Warning.Printf("Edit prompt failed (%v), skipping\n", err)
			return Decision{Action: ActionSkip}
		}
		if strings.TrimSpace(edited) == "" {
			edited = draft.Text
		}
		return Decision{Action: ActionEdit, Text: edited}
	default:
		return Decision{Action: ActionSkip}
	}
}

// PolicyGate applies the unattended approval policy: auto-send only
// template-origin drafts whose category is on the allow-list and whose
// confidence clears the threshold. With no allow-list it always skips.
type PolicyGate struct {
	allowed       map[classify.Category]bool
	minConfidence float64
}

// NewPolicyGate builds a PolicyGate from config values. Unknown category
// names are reported and ignored.
func NewPolicyGate(categories []string, minConfidence float64) *PolicyGate {
	allowed := make(map[classify.Category]bool, len(categories))
	for _, name := range categories {
		cat, ok := classify.ParseCategory(name)
		if !ok {
			pterm.Warning.Printf("Ignoring unknown auto-send category %q\n", name)
			continue
		}
		allowed[cat] = true
	}
	return &PolicyGate{allowed: allowed, minConfidence: minConfidence}
}

// Review applies the policy without blocking.
func (g *PolicyGate) Review(draft respond.Draft) Decision {
	if len(g.allowed) == 0 {
		return Decision{Action: ActionSkip}
	}
	if !g.allowed[draft.Classification.Category] {
		return Decision{Action: ActionSkip}
	}
	if draft.Classification.Confidence < g.minConfidence {
		return Decision{Action: ActionSkip}
	}
	// AI output is never auto-sent: only deterministic template text has
	// been reviewed by a human ahead of time.
	if draft.Origin != respond.OriginTemplate {
		return Decision{Action: ActionSkip}
	}
	return Decision{Action: ActionSend, Text: draft.Text}
}
