// exposes a Store interface that is passed to API handlers
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// chat functions
	CreateChatSession(userID int, title string) (model.ChatSession, error)
	ListChatSessions(userID int) ([]model.ChatSession, error)
	GetChatSessionByID(id int) (*model.ChatSession, error)
	UpdateChatSessionTitle(id int, title string) error
	DeleteChatSession(id, userID int) error
	CreateChatMessage(sessionID, userID int, role, content string) (model.ChatMessage, error)
	ListChatMessages(sessionID int) ([]model.ChatMessage, error)

	// knowledge functions
	ListKnowledge(category, search string, limit int) ([]model.KnowledgeItem, error)

	// newsletter functions
	CreateSubscriber(name, email, reason, sentiment string, score float64, tags []string) (int, error)
	GetSubscriberByEmail(email string) (*model.Subscriber, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
