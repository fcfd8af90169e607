package chat

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store is the durable, append-only message log.
type Store interface {
	Append(ctx context.Context, senderID, receiverID, body string) (Message, error)
	History(ctx context.Context, userA, userB string) ([]Message, error)
}

// SQLStore keeps messages in the chat_messages table. It owns one pooled
// handle; every append runs in its own transaction.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// Migrate creates the message table and its pair index.
func (s *SQLStore) Migrate(ctx context.Context) error {
	id, ts := "INTEGER PRIMARY KEY AUTOINCREMENT", "DATETIME"
	if s.db.DriverName() == "postgres" {
		id, ts = "BIGSERIAL PRIMARY KEY", "TIMESTAMPTZ"
	}
	stmts := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS chat_messages (
			id %s,
			sender_id TEXT NOT NULL,
			receiver_id TEXT NOT NULL,
			message TEXT NOT NULL,
			timestamp %s DEFAULT CURRENT_TIMESTAMP
		)`, id, ts),
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_pair ON chat_messages (sender_id, receiver_id, timestamp)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate chat_messages: %w", err)
		}
	}
	return nil
}

// Append records a message with a server-assigned timestamp. The row is
// either fully written or not at all.
func (s *SQLStore) Append(ctx context.Context, senderID, receiverID, body string) (Message, error) {
	if strings.TrimSpace(receiverID) == "" {
		return Message{}, ErrMissingReceiver
	}
	if body == "" {
		return Message{}, ErrEmptyMessage
	}

	msg := Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		Timestamp:  s.now().UTC(),
	}
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, tx.Rebind(`
			INSERT INTO chat_messages (sender_id, receiver_id, message, timestamp)
			VALUES (?, ?, ?, ?)
			RETURNING id`), msg.SenderID, msg.ReceiverID, msg.Body, msg.Timestamp).Scan(&msg.ID)
	})
	if err != nil {
		return Message{}, fmt.Errorf("append message: %w", err)
	}
	return msg, nil
}

// History returns every message between the two users, in either direction,
// oldest first.
func (s *SQLStore) History(ctx context.Context, userA, userB string) ([]Message, error) {
	msgs := []Message{}
	err := s.db.SelectContext(ctx, &msgs, s.db.Rebind(`
		SELECT id, sender_id, receiver_id, message, timestamp
		FROM chat_messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY timestamp ASC, id ASC`), userA, userB, userB, userA)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	for i := range msgs {
		msgs[i].Timestamp = msgs[i].Timestamp.UTC()
	}
	return msgs, nil
}

// withTx commits on success and rolls back on error or panic.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelDefault})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
