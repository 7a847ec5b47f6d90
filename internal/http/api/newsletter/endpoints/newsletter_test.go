package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noor-Labs-LLC/minbar/internal/ai"
	"github.com/Noor-Labs-LLC/minbar/internal/db"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api/newsletter/packets"
	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

type fakeStore struct {
	db.Store
	subscribers map[string]*model.Subscriber
	lastTags    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{subscribers: map[string]*model.Subscriber{}}
}

func (s *fakeStore) CreateSubscriber(name, email, reason, sentiment string, score float64, tags []string) (int, error) {
	id := len(s.subscribers) + 1
	s.subscribers[email] = &model.Subscriber{ID: id, Name: name, Email: email, Reason: reason, Sentiment: sentiment, SentimentScore: score, Tags: tags}
	s.lastTags = tags
	return id, nil
}

func (s *fakeStore) GetSubscriberByEmail(email string) (*model.Subscriber, error) {
	sub, ok := s.subscribers[email]
	if !ok {
		return nil, nil
	}
	return sub, nil
}

type fakeSender struct {
	sent []string
	fail bool
}

func (f *fakeSender) Send(ctx context.Context, to, subject, html string) error {
	if f.fail {
		return errors.New("delivery refused")
	}
	f.sent = append(f.sent, to)
	return nil
}

func newSignupRouter(store db.Store, sentimentURL string, sender *fakeSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sentiment := ai.NewSentimentClient("key")
	sentiment.BaseURL = sentimentURL

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, NewsletterModule(store, sentiment, sender))
	return r
}

func postSignup(t *testing.T, r *gin.Engine, body packets.SignupRequest) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/api/newsletter/signup", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func positiveSentimentServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[{"label": "LABEL_2", "score": 0.93}]]`))
	}))
}

func TestSignupHappyPath(t *testing.T) {
	sentiment := positiveSentimentServer()
	defer sentiment.Close()

	store := newFakeStore()
	sender := &fakeSender{}
	r := newSignupRouter(store, sentiment.URL, sender)

	w := postSignup(t, r, packets.SignupRequest{
		Name:   "Aisha",
		Email:  "Aisha@Example.com",
		Reason: "I love AI and technology insights",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.SignupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "positive", resp.Sentiment)
	assert.Equal(t, 0.93, resp.Score)
	assert.True(t, resp.WelcomeSent)
	assert.Contains(t, resp.Tags, "ai")

	// Email was normalized to lowercase before storage and delivery.
	assert.NotNil(t, store.subscribers["aisha@example.com"])
	assert.Equal(t, []string{"aisha@example.com"}, sender.sent)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	sentiment := positiveSentimentServer()
	defer sentiment.Close()

	store := newFakeStore()
	store.subscribers["taken@example.com"] = &model.Subscriber{ID: 1, Email: "taken@example.com"}
	r := newSignupRouter(store, sentiment.URL, &fakeSender{})

	w := postSignup(t, r, packets.SignupRequest{
		Name:   "Omar",
		Email:  "taken@example.com",
		Reason: "news",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupSurvivesSentimentOutage(t *testing.T) {
	sentiment := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer sentiment.Close()

	store := newFakeStore()
	r := newSignupRouter(store, sentiment.URL, &fakeSender{})

	w := postSignup(t, r, packets.SignupRequest{Name: "Omar", Email: "o@example.com", Reason: "curious"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.SignupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "neutral", resp.Sentiment)
	assert.Equal(t, 0.5, resp.Score)
}

func TestSignupEmailFailureIsNonFatal(t *testing.T) {
	sentiment := positiveSentimentServer()
	defer sentiment.Close()

	store := newFakeStore()
	r := newSignupRouter(store, sentiment.URL, &fakeSender{fail: true})

	w := postSignup(t, r, packets.SignupRequest{Name: "Omar", Email: "o@example.com", Reason: "curious"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.SignupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.WelcomeSent)
	assert.NotNil(t, store.subscribers["o@example.com"], "signup must persist despite delivery failure")
}

func TestSignupValidation(t *testing.T) {
	sentiment := positiveSentimentServer()
	defer sentiment.Close()
	r := newSignupRouter(newFakeStore(), sentiment.URL, &fakeSender{})

	assert.Equal(t, http.StatusBadRequest,
		postSignup(t, r, packets.SignupRequest{Name: "Omar", Email: "not-an-email", Reason: "x"}).Code)
	assert.Equal(t, http.StatusBadRequest,
		postSignup(t, r, packets.SignupRequest{Email: "o@example.com", Reason: "x"}).Code)
}
