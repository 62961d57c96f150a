// Package respond turns a classified message into a draft reply. When an
// OpenAI key is configured it asks the model for a short professional reply;
// on any failure it falls back to the category's template. Generation errors
// never propagate past this package.
package respond

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"

	"github.com/astegaru/linkedin-responder/classify"
	"github.com/astegaru/linkedin-responder/session"
	"github.com/astegaru/linkedin-responder/template"
)

// Origin records how a draft's text was produced.
type Origin string

const (
	OriginTemplate Origin = "template"
	OriginAI       Origin = "ai"
)

// Draft is a not-yet-sent candidate reply.
type Draft struct {
	Message        session.Message
	Classification classify.Classification
	Text           string
	Origin         Origin
}

const (
	DefaultTimeout = 20 * time.Second
	DefaultMaxLen  = 500

	model = openai.GPT4oMini

	systemPrompt = "You are replying to LinkedIn messages on behalf of a senior engineer. " +
		"Keep replies professional, brief (2-4 sentences), and polite. " +
		"Mirror the tone and language (German or English) of the message you receive. " +
		"Don't commit to anything specific. For job outreach, ask about the salary range, " +
		"the number of interview rounds, and whether fully remote work is possible."
)

// Generator produces draft replies.
type Generator struct {
	client    *openai.Client // nil disables AI generation
	templates *template.Store
	timeout   time.Duration
	maxLen    int
}

// NewGenerator builds a Generator. An empty apiKey disables the AI path and
// every draft comes from templates.
func NewGenerator(apiKey string, templates *template.Store, timeout time.Duration, maxLen int) *Generator {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return newGenerator(client, templates, timeout, maxLen)
}

// newGenerator also serves tests that inject a client pointed at a fake
// endpoint.
func newGenerator(client *openai.Client, templates *template.Store, timeout time.Duration, maxLen int) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Generator{client: client, templates: templates, timeout: timeout, maxLen: maxLen}
}

// AIEnabled reports whether drafts may come from the model.
func (g *Generator) AIEnabled() bool { return g.client != nil }

// Generate produces a draft reply for a classified message. It never fails:
// the AI path is best-effort and the template path always has coverage.
func (g *Generator) Generate(ctx context.Context, msg session.Message, cls classify.Classification) Draft {
	draft := Draft{Message: msg, Classification: cls}

	if g.client != nil {
		text, err := g.generateAI(ctx, msg, cls)
		if err == nil && strings.TrimSpace(text) != "" {
			draft.Text = g.clamp(text)
			draft.Origin = OriginAI
			return draft
		}
		log.Printf("⚠️ AI generation failed, falling back to template: %v", err)
	}

	draft.Text = g.clamp(g.renderTemplate(msg, cls))
	draft.Origin = OriginTemplate
	return draft
}

// generateAI asks the model for a reply, bounded by the generator's timeout.
func (g *Generator) generateAI(ctx context.Context, msg session.Message, cls classify.Classification) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		MaxTokens:   200,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(msg, cls)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func userPrompt(msg session.Message, cls classify.Classification) string {
	return fmt.Sprintf(
		"Write a reply to this LinkedIn message from %s (classified as %s):\n\n%s",
		msg.SenderName, cls.Category, msg.Text,
	)
}

// renderTemplate renders the fallback template for the message's category.
func (g *Generator) renderTemplate(msg session.Message, cls classify.Classification) string {
	vars := map[string]string{"name": firstName(msg.SenderName)}

	text, err := g.templates.Render(cls.Category, vars)
	if err == nil {
		return text
	}
	log.Printf("⚠️ No template for category %q, using generic reply: %v", cls.Category, err)

	text, err = g.templates.Render(classify.CategoryOther, vars)
	if err == nil {
		return text
	}
	// The store validates coverage at load, so this is unreachable in a
	// correctly started process.
	return template.RenderContent("Hi {name}, thank you for your message.", vars)
}

// clamp enforces the reply-length ceiling, preferring a sentence boundary.
func (g *Generator) clamp(text string) string {
	runes := []rune(text)
	if len(runes) <= g.maxLen {
		return text
	}

	cut := string(runes[:g.maxLen])
	if i := strings.LastIndexAny(cut, ".!?"); i >= 0 {
		if utf8.RuneCountInString(cut[:i+1]) > g.maxLen/2 {
			return strings.TrimSpace(cut[:i+1])
		}
	}
	return strings.TrimSpace(cut)
}

// firstName extracts a usable salutation from a full sender name.
func firstName(full string) string {
	fields := strings.Fields(strings.TrimSpace(full))
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
