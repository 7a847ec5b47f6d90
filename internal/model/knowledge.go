package model

import (
	"time"

	"github.com/lib/pq"
)

// KnowledgeItem is one verified entry in the knowledge base
// (a verse, hadith, dua, fiqh ruling, or seerah note).
type KnowledgeItem struct {
	ID          int            `db:"id"          json:"id"`
	Title       string         `db:"title"       json:"title"`
	Content     string         `db:"content"     json:"content"`
	ArabicText  *string        `db:"arabic_text" json:"arabic_text,omitempty"`
	Translation *string        `db:"translation" json:"translation,omitempty"`
	Reference   *string        `db:"reference"   json:"reference,omitempty"`
	Category    *string        `db:"category"    json:"category,omitempty"`
	Type        string         `db:"type"        json:"type"`
	Tags        pq.StringArray `db:"tags"        json:"tags,omitempty"`
	Verified    bool           `db:"verified"    json:"verified"`
	CreatedAt   time.Time      `db:"created_at"  json:"created_at"`
}

// KnowledgeCategories are the browsable categories exposed by the API.
var KnowledgeCategories = []string{"quran", "hadith", "dua", "fiqh", "seerah"}
