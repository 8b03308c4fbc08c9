// Package memory owns the persisted per-user document: category preferences,
// the fingerprint history of the last delivered briefing, and item feedback.
// The pipeline reads the document once at the start of a run and writes it
// once at the end; there is no field-level update contract.
package memory

import (
	"context"
	"time"
)

type Document struct {
	UserPrefs    Preferences  `json:"user_prefs"`
	LastBriefing LastBriefing `json:"last_briefing"`
	Feedback     []Feedback   `json:"feedback,omitempty"`
}

type Preferences struct {
	Categories []string `json:"categories"`
}

type LastBriefing struct {
	Items []string  `json:"items"`
	TS    time.Time `json:"ts"`
}

type Feedback struct {
	Fingerprint string    `json:"fp"`
	Score       float64   `json:"score"`
	TS          time.Time `json:"ts"`
}

// Store loads and saves whole documents. Implementations must seed a default
// document on first-ever load instead of failing.
type Store interface {
	Load(ctx context.Context, userID string) (Document, error)
	Save(ctx context.Context, userID string, doc Document) error
}

// DefaultDocument is the seed for users with no stored memory yet.
func DefaultDocument() Document {
	return Document{
		UserPrefs: Preferences{Categories: []string{"tech", "business"}},
	}
}

// UpdatePreferences applies add/remove/set mutations read-modify-write style.
// Empty arguments are no-ops; setCategories replaces the whole list when non-nil.
func UpdatePreferences(ctx context.Context, s Store, userID string, addCategory, removeCategory string, setCategories []string) (Preferences, error) {
	doc, err := s.Load(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}

	cats := doc.UserPrefs.Categories
	if setCategories != nil {
		cats = setCategories
	}
	if addCategory != "" {
		found := false
		for _, c := range cats {
			if c == addCategory {
				found = true
				break
			}
		}
		if !found {
			cats = append(cats, addCategory)
		}
	}
	if removeCategory != "" {
		kept := cats[:0]
		for _, c := range cats {
			if c != removeCategory {
				kept = append(kept, c)
			}
		}
		cats = kept
	}

	doc.UserPrefs.Categories = cats
	if err := s.Save(ctx, userID, doc); err != nil {
		return Preferences{}, err
	}
	return doc.UserPrefs, nil
}

// AddFeedback appends a scored fingerprint to the user's feedback log.
func AddFeedback(ctx context.Context, s Store, userID, fingerprint string, score float64) error {
	doc, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}
	doc.Feedback = append(doc.Feedback, Feedback{
		Fingerprint: fingerprint,
		Score:       score,
		TS:          time.Now(),
	})
	return s.Save(ctx, userID, doc)
}
