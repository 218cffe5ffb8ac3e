// Package sqlite provides a SQLite-backed conversation store for
// deployments that want the message log on disk.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hsbukhari/nexus/internal/domain"
	"github.com/hsbukhari/nexus/internal/ports"
)

// Store is a SQLite implementation of ports.ConversationStore.
type Store struct {
	db *sql.DB
}

var _ ports.ConversationStore = (*Store)(nil)

// New opens (creating if needed) the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS messages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		display_text TEXT NOT NULL,
		attachment TEXT,
		structured TEXT,
		created_at TIMESTAMP NOT NULL
	)`)
	return err
}

// Append adds a message to the end of the log.
func (s *Store) Append(ctx context.Context, msg *domain.Message) error {
	var attachment, structured sql.NullString

	if msg.Attachment != nil {
		b, err := json.Marshal(msg.Attachment)
		if err != nil {
			return fmt.Errorf("marshaling attachment: %w", err)
		}
		attachment = sql.NullString{String: string(b), Valid: true}
	}
	if msg.Structured != nil {
		b, err := json.Marshal(msg.Structured)
		if err != nil {
			return fmt.Errorf("marshaling structured response: %w", err)
		}
		structured = sql.NullString{String: string(b), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, role, display_text, attachment, structured, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, string(msg.Role), msg.DisplayText, attachment, structured, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

// Messages returns the log in append order.
func (s *Store) Messages(ctx context.Context) ([]*domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, display_text, attachment, structured, created_at
		 FROM messages ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var out []*domain.Message
	for rows.Next() {
		var (
			msg                    domain.Message
			role                   string
			attachment, structured sql.NullString
		)
		if err := rows.Scan(&msg.ID, &role, &msg.DisplayText, &attachment, &structured, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.Role = domain.Role(role)

		if attachment.Valid {
			var att domain.Attachment
			if err := json.Unmarshal([]byte(attachment.String), &att); err != nil {
				return nil, fmt.Errorf("unmarshaling attachment: %w", err)
			}
			msg.Attachment = &att
		}
		if structured.Valid {
			var resp domain.StructuredResponse
			if err := json.Unmarshal([]byte(structured.String), &resp); err != nil {
				return nil, fmt.Errorf("unmarshaling structured response: %w", err)
			}
			msg.Structured = &resp
		}
		out = append(out, &msg)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
