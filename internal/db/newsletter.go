package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

func (s *pgStore) CreateSubscriber(name, email, reason, sentiment string, score float64, tags []string) (int, error) {
	query := `
	INSERT INTO newsletter_subscribers (name, email, reason, sentiment, sentiment_score, tags, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, now())
	RETURNING id;
	`
	var newID int
	err := s.db.QueryRow(query, name, email, reason, sentiment, score, pq.Array(tags)).Scan(&newID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create newsletter subscriber")
		return 0, err
	}
	return newID, nil
}

// fetches a subscriber by email. Returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetSubscriberByEmail(email string) (*model.Subscriber, error) {
	var sub model.Subscriber
	query := `
	SELECT id, name, email, reason, sentiment, sentiment_score, tags, created_at
	FROM newsletter_subscribers
	WHERE email = $1;
	`
	err := s.db.Get(&sub, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get subscriber by email")
		return nil, err
	}
	return &sub, nil
}
