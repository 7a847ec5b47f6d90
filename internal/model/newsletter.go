package model

import (
	"time"

	"github.com/lib/pq"
)

// Subscriber is a newsletter signup enriched with the sentiment
// analysis of the stated subscription reason.
type Subscriber struct {
	ID             int            `db:"id"              json:"id"`
	Name           string         `db:"name"            json:"name"`
	Email          string         `db:"email"           json:"email"`
	Reason         string         `db:"reason"          json:"reason"`
	Sentiment      string         `db:"sentiment"       json:"sentiment"`
	SentimentScore float64        `db:"sentiment_score" json:"sentiment_score"`
	Tags           pq.StringArray `db:"tags"            json:"tags,omitempty"`
	CreatedAt      time.Time      `db:"created_at"      json:"created_at"`
}
