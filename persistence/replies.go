package persistence

import (
	"fmt"
	"time"
)

// Reply statuses.
const (
	ReplyStatusSent   = "sent"
	ReplyStatusFailed = "failed"
)

// Reply is one logged outbound reply.
type Reply struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderName     string    `json:"sender_name"`
	Category       string    `json:"category"`
	Origin         string    `json:"origin"`
	Content        string    `json:"content"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// LogReply appends an outbound reply to the log.
func (s *Store) LogReply(r Reply) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO replies (conversation_id, sender_name, category, origin, content, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ConversationID, r.SenderName, r.Category, r.Origin, r.Content, r.Status, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log reply: %w", err)
	}
	return nil
}

// SentToday counts replies successfully sent since local midnight. Used to
// enforce the daily send limit.
func (s *Store) SentToday() (int, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM replies WHERE status = ? AND created_at >= ?`,
		ReplyStatusSent, midnight,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count today's replies: %w", err)
	}
	return count, nil
}

// RepliesFor returns the logged replies for one conversation, newest first.
func (s *Store) RepliesFor(conversationID string) ([]Reply, error) {
	rows, err := s.db.Query(
		`SELECT id, conversation_id, sender_name, category, origin, content, status, created_at
		 FROM replies WHERE conversation_id = ? ORDER BY created_at DESC`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	defer rows.Close()

	var replies []Reply
	for rows.Next() {
		var r Reply
		if err := rows.Scan(&r.ID, &r.ConversationID, &r.SenderName, &r.Category,
			&r.Origin, &r.Content, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, r)
	}
	return replies, rows.Err()
}
