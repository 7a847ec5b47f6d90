package db

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

// lists verified knowledge items, optionally filtered by category and
// a case-insensitive search over title, content, and tags.
func (s *pgStore) ListKnowledge(category, search string, limit int) ([]model.KnowledgeItem, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT id, title, content, arabic_text, translation, reference, category, type, tags, verified, created_at
	FROM islamic_knowledge
	WHERE verified = true
	`
	args := []any{}

	if category != "" && category != "all" {
		args = append(args, category)
		query += ` AND category = $` + strconv.Itoa(len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := strconv.Itoa(len(args))
		args = append(args, search)
		m := strconv.Itoa(len(args))
		query += ` AND (title ILIKE $` + n +
			` OR content ILIKE $` + n +
			` OR $` + m + ` = ANY(tags))`
	}

	args = append(args, limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	var all []model.KnowledgeItem
	if err := s.db.Select(&all, query, args...); err != nil {
		log.Error().Err(err).Msg("failed to list knowledge items")
		return nil, err
	}
	return all, nil
}
