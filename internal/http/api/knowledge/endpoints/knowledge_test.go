package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noor-Labs-LLC/minbar/internal/db"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api"
	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

type fakeStore struct {
	db.Store
	gotCategory string
	gotSearch   string
	gotLimit    int
	items       []model.KnowledgeItem
}

func (s *fakeStore) ListKnowledge(category, search string, limit int) ([]model.KnowledgeItem, error) {
	s.gotCategory = category
	s.gotSearch = search
	s.gotLimit = limit
	return s.items, nil
}

func newKnowledgeRouter(store db.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, KnowledgeModule(store))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBrowsePassesFilters(t *testing.T) {
	store := &fakeStore{items: []model.KnowledgeItem{{ID: 1, Title: "Patience in hardship", Type: "quran"}}}
	r := newKnowledgeRouter(store)

	w := get(r, "/api/knowledge?category=quran&search=patience")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "quran", store.gotCategory)
	assert.Equal(t, "patience", store.gotSearch)
	assert.Equal(t, browseLimit, store.gotLimit)

	var resp struct {
		Items []model.KnowledgeItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Patience in hardship", resp.Items[0].Title)
}

func TestBrowseAllCategoryMeansNoFilter(t *testing.T) {
	store := &fakeStore{}
	r := newKnowledgeRouter(store)

	require.Equal(t, http.StatusOK, get(r, "/api/knowledge?category=all").Code)
	assert.Equal(t, "", store.gotCategory)
}

func TestBrowseRejectsUnknownCategory(t *testing.T) {
	r := newKnowledgeRouter(&fakeStore{})
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/knowledge?category=astrology").Code)
}

func TestCategories(t *testing.T) {
	r := newKnowledgeRouter(&fakeStore{})
	w := get(r, "/api/knowledge/categories")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.KnowledgeCategories, resp.Categories)
}
