package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

func (s *pgStore) CreateChatSession(userID int, title string) (model.ChatSession, error) {
	var session model.ChatSession
	query := `
	INSERT INTO chat_sessions (user_id, title, created_at, updated_at)
	VALUES ($1, $2, now(), now())
	RETURNING id, user_id, title, created_at, updated_at;`

	if err := s.db.Get(&session, query, userID, title); err != nil {
		log.Error().Err(err).Msg("failed to create chat session")
		return model.ChatSession{}, err
	}
	return session, nil
}

// lists a user's sessions, skipping ones that never got a meaningful
// title (empty or still the default), newest activity first.
func (s *pgStore) ListChatSessions(userID int) ([]model.ChatSession, error) {
	var all []model.ChatSession
	query := `
	SELECT id, user_id, title, created_at, updated_at
	FROM chat_sessions
	WHERE user_id = $1
	AND title <> ''
	AND title <> 'New Islamic Chat'
	ORDER BY updated_at DESC;
	`
	if err := s.db.Select(&all, query, userID); err != nil {
		log.Error().Err(err).Msg("failed to list chat sessions")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) GetChatSessionByID(id int) (*model.ChatSession, error) {
	var session model.ChatSession
	query := `
	SELECT id, user_id, title, created_at, updated_at
	FROM chat_sessions
	WHERE id = $1;`

	err := s.db.Get(&session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get chat session by id")
		return nil, err
	}
	return &session, nil
}

func (s *pgStore) UpdateChatSessionTitle(id int, title string) error {
	query := `
	UPDATE chat_sessions
	SET title = $2,
	updated_at = now()
	WHERE id = $1;
	`
	res, err := s.db.Exec(query, id, title)
	if err != nil {
		log.Error().Err(err).Msg("failed to update chat session title")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("no such session")
	}
	return nil
}

// deletes a session and its messages; scoped to the owning user.
func (s *pgStore) DeleteChatSession(id, userID int) error {
	res, err := s.db.Exec(`DELETE FROM chat_sessions WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete chat session")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("no such session")
	}
	return nil
}

func (s *pgStore) CreateChatMessage(sessionID, userID int, role, content string) (model.ChatMessage, error) {
	var message model.ChatMessage
	query := `
	INSERT INTO messages (session_id, user_id, role, content, created_at)
	VALUES ($1, $2, $3, $4, now())
	RETURNING id, session_id, user_id, role, content, created_at;`

	if err := s.db.Get(&message, query, sessionID, userID, role, content); err != nil {
		log.Error().Err(err).Msg("failed to create chat message")
		return model.ChatMessage{}, err
	}
	return message, nil
}

// returns the session transcript in append order.
func (s *pgStore) ListChatMessages(sessionID int) ([]model.ChatMessage, error) {
	var all []model.ChatMessage
	query := `
	SELECT id, session_id, user_id, role, content, created_at
	FROM messages
	WHERE session_id = $1
	ORDER BY id;
	`
	if err := s.db.Select(&all, query, sessionID); err != nil {
		log.Error().Err(err).Msg("failed to list chat messages")
		return nil, err
	}
	return all, nil
}
