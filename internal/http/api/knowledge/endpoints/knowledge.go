package endpoints

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/db"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api"
	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

// At most this many entries per browse request.
const browseLimit = 20

// KnowledgeModule mounts the public knowledge-base browser.
func KnowledgeModule(store db.Store) api.Module {
	ctl := &KnowledgeController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/knowledge", ctl.browse)
		c.PUBLIC_GET("/knowledge/categories", ctl.categories)
	})
}

type KnowledgeController struct {
	store db.Store
}

// GET /api/knowledge?category&search
func (k *KnowledgeController) browse(ctx *gin.Context) (any, *api.APIError) {
	category := strings.TrimSpace(ctx.Query("category"))
	if category == "all" {
		category = ""
	}
	if category != "" && !validCategory(category) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown category"}
	}
	search := strings.TrimSpace(ctx.Query("search"))

	items, err := k.store.ListKnowledge(category, search, browseLimit)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("knowledge lookup failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load knowledge entries"}
	}
	return gin.H{"items": items}, nil
}

// GET /api/knowledge/categories
func (k *KnowledgeController) categories(ctx *gin.Context) (any, *api.APIError) {
	return gin.H{"categories": model.KnowledgeCategories}, nil
}

func validCategory(category string) bool {
	for _, c := range model.KnowledgeCategories {
		if c == category {
			return true
		}
	}
	return false
}
