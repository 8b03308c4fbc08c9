package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"newsbrief/internal/logger"
)

// PostgresStore keeps one document row per user, upserted as a whole.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("postgres memory store connected")
	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_memory (
		user_id VARCHAR(100) PRIMARY KEY,
		doc JSONB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`
	if _, err := ps.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (ps *PostgresStore) Load(ctx context.Context, userID string) (Document, error) {
	var raw []byte
	err := ps.db.QueryRowContext(ctx,
		`SELECT doc FROM user_memory WHERE user_id = $1`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		doc := DefaultDocument()
		if err := ps.Save(ctx, userID, doc); err != nil {
			return Document{}, err
		}
		return doc, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to load memory: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to unmarshal memory: %w", err)
	}
	return doc, nil
}

func (ps *PostgresStore) Save(ctx context.Context, userID string, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %w", err)
	}

	query := `
		INSERT INTO user_memory (user_id, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()
	`
	if _, err := ps.db.ExecContext(ctx, query, userID, raw); err != nil {
		return fmt.Errorf("failed to save memory: %w", err)
	}
	return nil
}

func (ps *PostgresStore) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}
