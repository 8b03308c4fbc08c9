package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileStore keeps all user documents in one JSON file. Suitable for the CLI
// and single-node deployments; Postgres covers everything else.
type FileStore struct {
	filePath string
	mu       sync.Mutex
}

func NewFileStore(filePath string) *FileStore {
	return &FileStore{filePath: filePath}
}

func (fs *FileStore) Load(_ context.Context, userID string) (Document, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	docs, err := fs.readAll()
	if err != nil {
		return Document{}, err
	}

	doc, ok := docs[userID]
	if !ok {
		// First-ever load for this user: seed and persist the default document.
		doc = DefaultDocument()
		docs[userID] = doc
		if err := fs.writeAll(docs); err != nil {
			return Document{}, err
		}
	}
	return doc, nil
}

func (fs *FileStore) Save(_ context.Context, userID string, doc Document) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	docs, err := fs.readAll()
	if err != nil {
		return err
	}
	docs[userID] = doc
	return fs.writeAll(docs)
}

func (fs *FileStore) readAll() (map[string]Document, error) {
	if _, err := os.Stat(fs.filePath); os.IsNotExist(err) {
		return make(map[string]Document), nil
	}

	data, err := os.ReadFile(fs.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory file: %w", err)
	}
	if len(data) == 0 {
		return make(map[string]Document), nil
	}

	var docs map[string]Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal memory file: %w", err)
	}
	if docs == nil {
		docs = make(map[string]Document)
	}
	return docs, nil
}

func (fs *FileStore) writeAll(docs map[string]Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %w", err)
	}
	if err := os.WriteFile(fs.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write memory file: %w", err)
	}
	return nil
}
