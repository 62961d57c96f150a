package persistence

import (
	"fmt"
	"time"
)

// MarkHandled records that a conversation was acted on. Upserts so repeated
// handling just refreshes the timestamp.
func (s *Store) MarkHandled(conversationID string, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO conversations (conversation_id, handled_at) VALUES (?, ?)
		 ON CONFLICT(conversation_id) DO UPDATE SET handled_at = excluded.handled_at`,
		conversationID, at,
	)
	if err != nil {
		return fmt.Errorf("failed to mark conversation handled: %w", err)
	}
	return nil
}

// HandledSince reports whether a conversation was handled at or after the
// given time. LinkedIn can keep showing a thread as unread after we reply;
// this check keeps a cycle from answering the same thread twice.
func (s *Store) HandledSince(conversationID string, since time.Time) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM conversations WHERE conversation_id = ? AND handled_at >= ?`,
		conversationID, since,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check conversation: %w", err)
	}
	return count > 0, nil
}
