// Package session defines the browser-session collaborator the agent talks
// to, plus its live LinkedIn implementation. The core treats every call as
// fallible and potentially slow.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrAuth marks a session-level authentication failure. A cycle hitting it
// aborts; the scheduler applies backoff before the next attempt.
var ErrAuth = errors.New("session authentication failed")

// ErrSend marks a failed reply transmission for one conversation. The cycle
// retries once and then continues with remaining conversations.
var ErrSend = errors.New("reply transmission failed")

// Message is the latest inbound message of one conversation. Immutable once
// fetched.
type Message struct {
	ConversationID string    `json:"conversation_id"`
	SenderName     string    `json:"sender_name"`
	Text           string    `json:"text"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// Session is one authenticated messaging session. Implementations must not
// be used concurrently: one browser session cannot safely issue parallel
// navigations.
type Session interface {
	// ListUnreadConversations returns the identifiers of conversations with
	// unread messages, newest first.
	ListUnreadConversations(ctx context.Context) ([]string, error)

	// FetchLatestMessage returns the most recent inbound message of a
	// conversation.
	FetchLatestMessage(ctx context.Context, conversationID string) (Message, error)

	// SendReply submits text to a conversation. Failures wrap ErrSend unless
	// the whole session is lost, in which case they wrap ErrAuth.
	SendReply(ctx context.Context, conversationID, text string) error

	// MarkRead marks a conversation as read without replying.
	MarkRead(ctx context.Context, conversationID string) error
}
