package endpoints

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Noor-Labs-LLC/minbar/internal/http/api"
	"github.com/Noor-Labs-LLC/minbar/internal/verse"
)

// VerseModule mounts the public daily verse endpoints.
func VerseModule() api.Module {
	ctl := &VerseController{now: time.Now}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/verse/daily", ctl.daily)
		c.PUBLIC_GET("/verse/random", ctl.random)
	})
}

type VerseController struct {
	now func() time.Time
}

// GET /api/verse/daily
func (v *VerseController) daily(ctx *gin.Context) (any, *api.APIError) {
	return verse.Daily(v.now()), nil
}

// GET /api/verse/random
func (v *VerseController) random(ctx *gin.Context) (any, *api.APIError) {
	return verse.Random(), nil
}
