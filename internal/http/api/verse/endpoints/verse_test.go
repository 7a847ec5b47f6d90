package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noor-Labs-LLC/minbar/internal/http/api"
	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

func newVerseRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, VerseModule())
	return r
}

func getVerse(t *testing.T, r *gin.Engine, path string) model.Verse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var v model.Verse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestDailyVerseIsStableAcrossRequests(t *testing.T) {
	r := newVerseRouter()
	first := getVerse(t, r, "/api/verse/daily")
	second := getVerse(t, r, "/api/verse/daily")
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.Reference)
}

func TestRandomVerseIsComplete(t *testing.T) {
	r := newVerseRouter()
	v := getVerse(t, r, "/api/verse/random")
	assert.NotEmpty(t, v.Text)
	assert.NotEmpty(t, v.Translation)
	assert.NotEmpty(t, v.Reference)
}
