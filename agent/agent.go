// Package agent orchestrates one inbox cycle: list unread conversations,
// classify each latest message, draft a reply, gate it through approval, and
// send. Per-conversation failures never abort a cycle; only losing the
// session does.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/astegaru/linkedin-responder/approve"
	"github.com/astegaru/linkedin-responder/classify"
	"github.com/astegaru/linkedin-responder/persistence"
	"github.com/astegaru/linkedin-responder/respond"
	"github.com/astegaru/linkedin-responder/session"
)

// handledWindow is how long a replied-to conversation is considered done
// even if the site still shows it unread.
const handledWindow = 24 * time.Hour

// Agent runs inbox cycles.
type Agent struct {
	Store     *persistence.Store
	Generator *respond.Generator
	Gate      approve.Gate

	// MaxConversations caps how many unread conversations one cycle touches.
	MaxConversations int

	// SkipMarksRead controls whether a skipped conversation is opened (and
	// therefore marked read) or left unread for a future cycle.
	SkipMarksRead bool

	// DailySendLimit forces skips once this many replies went out today.
	// Zero disables the limit.
	DailySendLimit int
}

// RunCycle processes the unread inbox once and returns the cycle summary.
// Each conversation is handled at most once per call. The returned error is
// non-nil only for session-level failures; the RunRecord is recorded either
// way.
func (a *Agent) RunCycle(ctx context.Context, sess session.Session) (persistence.RunRecord, error) {
	rec := persistence.RunRecord{StartedAt: time.Now()}

	ids, err := sess.ListUnreadConversations(ctx)
	if err != nil {
		rec.FinishedAt = time.Now()
		a.record(rec)
		return rec, fmt.Errorf("listing unread conversations: %w", err)
	}

	if a.MaxConversations > 0 && len(ids) > a.MaxConversations {
		fmt.Printf("⚠️ Limiting cycle to %d of %d unread conversations\n", a.MaxConversations, len(ids))
		ids = ids[:a.MaxConversations]
	}

	seen := make(map[string]bool, len(ids))
	var fatal error
	for i, id := range ids {
		if ctx.Err() != nil {
			fatal = ctx.Err()
			break
		}
		// The unread list can contain duplicates when the scan picks a
		// thread up under two selectors.
		if seen[id] {
			continue
		}
		seen[id] = true

		fmt.Printf("\n💬 Conversation %d/%d (%s)\n", i+1, len(ids), id)
		rec.Seen++

		outcome, err := a.processConversation(ctx, sess, id)
		if err != nil {
			if errors.Is(err, session.ErrAuth) {
				fatal = err
				break
			}
			log.Printf("⚠️ Conversation %s failed: %v", id, err)
			rec.Failed++
			continue
		}

		switch outcome {
		case outcomeSent:
			rec.Sent++
		case outcomeSkipped:
			rec.Skipped++
		case outcomeFailed:
			rec.Failed++
		}
	}

	rec.FinishedAt = time.Now()
	a.record(rec)
	if fatal != nil {
		return rec, fmt.Errorf("cycle aborted: %w", fatal)
	}
	return rec, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeSent
	outcomeFailed
)

// processConversation runs classify → generate → review → act for one
// conversation.
func (a *Agent) processConversation(ctx context.Context, sess session.Session, id string) (outcome, error) {
	handled, err := a.Store.HandledSince(id, time.Now().Add(-handledWindow))
	if err != nil {
		log.Printf("⚠️ Handled-state lookup failed for %s: %v", id, err)
	} else if handled {
		fmt.Println("↩️ Already handled recently, skipping")
		return outcomeSkipped, nil
	}

	msg, err := sess.FetchLatestMessage(ctx, id)
	if err != nil {
		return outcomeFailed, fmt.Errorf("fetching latest message: %w", err)
	}

	cls := classify.Classify(msg.Text)
	fmt.Printf("🏷️ Classified as %s (confidence %.2f)\n", cls.Category, cls.Confidence)

	draft := a.Generator.Generate(ctx, msg, cls)

	if a.sendBudgetExhausted() {
		fmt.Println("🛑 Daily send limit reached, skipping remaining replies")
		return a.skip(ctx, sess, id)
	}

	decision := a.Gate.Review(draft)
	switch decision.Action {
	case approve.ActionSend, approve.ActionEdit:
		return a.send(ctx, sess, draft, decision.Text)
	default:
		return a.skip(ctx, sess, id)
	}
}

// send transmits the final text, retrying once on a send failure. A second
// failure marks the conversation failed for this cycle and the cycle
// continues.
func (a *Agent) send(ctx context.Context, sess session.Session, draft respond.Draft, text string) (outcome, error) {
	id := draft.Message.ConversationID

	err := sess.SendReply(ctx, id, text)
	if err != nil && errors.Is(err, session.ErrSend) {
		log.Printf("⚠️ Send failed, retrying once: %v", err)
		err = sess.SendReply(ctx, id, text)
	}

	status := persistence.ReplyStatusSent
	if err != nil {
		if errors.Is(err, session.ErrAuth) {
			return outcomeFailed, err
		}
		status = persistence.ReplyStatusFailed
	}

	a.logReply(draft, text, status)

	if err != nil {
		return outcomeFailed, nil
	}
	if markErr := a.Store.MarkHandled(id, time.Now()); markErr != nil {
		log.Printf("⚠️ Failed to mark %s handled: %v", id, markErr)
	}
	return outcomeSent, nil
}

// skip leaves the conversation alone, or opens it to clear the unread badge
// when SkipMarksRead is set.
func (a *Agent) skip(ctx context.Context, sess session.Session, id string) (outcome, error) {
	if a.SkipMarksRead {
		if err := sess.MarkRead(ctx, id); err != nil {
			if errors.Is(err, session.ErrAuth) {
				return outcomeFailed, err
			}
			log.Printf("⚠️ Failed to mark %s read: %v", id, err)
		}
	}
	return outcomeSkipped, nil
}

func (a *Agent) sendBudgetExhausted() bool {
	if a.DailySendLimit <= 0 {
		return false
	}
	sent, err := a.Store.SentToday()
	if err != nil {
		log.Printf("⚠️ Daily-count lookup failed: %v", err)
		return false
	}
	return sent >= a.DailySendLimit
}

func (a *Agent) logReply(draft respond.Draft, text, status string) {
	err := a.Store.LogReply(persistence.Reply{
		ConversationID: draft.Message.ConversationID,
		SenderName:     draft.Message.SenderName,
		Category:       string(draft.Classification.Category),
		Origin:         string(draft.Origin),
		Content:        text,
		Status:         status,
	})
	if err != nil {
		log.Printf("⚠️ Failed to log reply: %v", err)
	}
}

func (a *Agent) record(rec persistence.RunRecord) {
	if err := a.Store.RecordRun(rec); err != nil {
		log.Printf("⚠️ Failed to record run: %v", err)
	}
}
