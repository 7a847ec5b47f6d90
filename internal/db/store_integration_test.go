package db

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests need a throwaway Postgres; set TEST_DATABASE_URL.
func integrationStore(t *testing.T) Store {
	t.Helper()
	if TestStore == nil {
		if err := InitTestDB("../../migrations"); err != nil {
			t.Skipf("skipping integration tests: %v", err)
		}
	}
	return TestStore
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s+%d@example.com", prefix, time.Now().UnixNano())
}

func TestUserRoundTrip(t *testing.T) {
	store := integrationStore(t)
	email := uniqueEmail("user")

	name := "Aisha"
	id, err := store.CreateUser(email, "hashed", &name)
	require.NoError(t, err)

	byEmail, err := store.GetUserByEmail(email)
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	require.NotNil(t, byEmail.Name)
	assert.Equal(t, "Aisha", *byEmail.Name)

	_, err = store.GetUserByEmail(uniqueEmail("missing"))
	assert.ErrorIs(t, err, sql.ErrNoRows)

	newEmail := uniqueEmail("renamed")
	require.NoError(t, store.UpdateUserProfile(id, newEmail, nil))
	updated, err := store.GetUserByID(id)
	require.NoError(t, err)
	assert.Equal(t, newEmail, updated.Email)
	assert.Nil(t, updated.Name)
}

func TestChatSessionLifecycle(t *testing.T) {
	store := integrationStore(t)
	userID, err := store.CreateUser(uniqueEmail("chat"), "hashed", nil)
	require.NoError(t, err)

	session, err := store.CreateChatSession(userID, "New Islamic Chat")
	require.NoError(t, err)

	// Default-titled sessions are hidden from the list.
	sessions, err := store.ListChatSessions(userID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	require.NoError(t, store.UpdateChatSessionTitle(session.ID, "Fasting questions"))
	sessions, err = store.ListChatSessions(userID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Fasting questions", sessions[0].Title)

	_, err = store.CreateChatMessage(session.ID, userID, "user", "When does fasting start?")
	require.NoError(t, err)
	_, err = store.CreateChatMessage(session.ID, userID, "assistant", "At Fajr.")
	require.NoError(t, err)

	transcript, err := store.ListChatMessages(session.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 2)
	assert.Equal(t, "user", transcript[0].Role)
	assert.Equal(t, "assistant", transcript[1].Role)

	// Another user must not be able to delete the session.
	assert.Error(t, store.DeleteChatSession(session.ID, userID+1))

	require.NoError(t, store.DeleteChatSession(session.ID, userID))
	_, err = store.GetChatSessionByID(session.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Messages cascade with the session.
	orphans, err := store.ListChatMessages(session.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestSubscriberRoundTrip(t *testing.T) {
	store := integrationStore(t)
	email := uniqueEmail("sub")

	id, err := store.CreateSubscriber("Omar", email, "love the insights", "positive", 0.91, []string{"insights"})
	require.NoError(t, err)

	sub, err := store.GetSubscriberByEmail(email)
	require.NoError(t, err)
	assert.Equal(t, id, sub.ID)
	assert.Equal(t, "positive", sub.Sentiment)
	assert.Equal(t, 0.91, sub.SentimentScore)
	require.Len(t, sub.Tags, 1)
	assert.Equal(t, "insights", sub.Tags[0])

	// Unique email constraint.
	_, err = store.CreateSubscriber("Omar", email, "again", "neutral", 0.5, nil)
	assert.Error(t, err)
}

func TestListKnowledgeFilters(t *testing.T) {
	store := integrationStore(t)

	items, err := store.ListKnowledge("", "", 20)
	require.NoError(t, err)
	for _, item := range items {
		assert.True(t, item.Verified, "unverified entries must never surface")
	}

	items, err = store.ListKnowledge("quran", "", 20)
	require.NoError(t, err)
	for _, item := range items {
		require.NotNil(t, item.Category)
		assert.Equal(t, "quran", *item.Category)
	}

	items, err = store.ListKnowledge("", "", 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(items), 1)
}
