package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/aladhan"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api"
)

// Event is a notable date on the Islamic calendar.
type Event struct {
	Name        string `json:"name"`
	Date        string `json:"date"` // Hijri day and month, e.g. "1 Shawwal"
	Type        string `json:"type"` // "religious" or "historical"
	Description string `json:"description"`
}

var islamicEvents = []Event{
	{
		Name:        "Laylat al-Qadr",
		Date:        "27 Ramadan",
		Type:        "religious",
		Description: "The Night of Power, when the Quran was first revealed",
	},
	{
		Name:        "Eid al-Fitr",
		Date:        "1 Shawwal",
		Type:        "religious",
		Description: "Festival marking the end of Ramadan",
	},
	{
		Name:        "Eid al-Adha",
		Date:        "10 Dhul Hijjah",
		Type:        "religious",
		Description: "Festival of Sacrifice during Hajj",
	},
	{
		Name:        "Muharram",
		Date:        "1 Muharram",
		Type:        "historical",
		Description: "Islamic New Year",
	},
	{
		Name:        "Day of Ashura",
		Date:        "10 Muharram",
		Type:        "historical",
		Description: "Day of remembrance and fasting",
	},
	{
		Name:        "Mawlid an-Nabi",
		Date:        "12 Rabi' al-awwal",
		Type:        "religious",
		Description: "Birth of Prophet Muhammad (PBUH)",
	},
}

const upcomingEventCount = 3

// CalendarModule mounts the public Islamic calendar endpoints.
func CalendarModule(client *aladhan.Client) api.Module {
	ctl := &CalendarController{client: client, now: time.Now}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/calendar/today", ctl.today)
		c.PUBLIC_GET("/calendar/events", ctl.events)
	})
}

type CalendarController struct {
	client *aladhan.Client
	now    func() time.Time
}

// GET /api/calendar/today
func (cc *CalendarController) today(ctx *gin.Context) (any, *api.APIError) {
	data, err := cc.client.GToH(ctx.Request.Context(), cc.now())
	if err != nil {
		log.Error().Err(err).Msg("gregorian to hijri conversion failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "could not resolve the Islamic date"}
	}

	return gin.H{
		"hijri":           data.Hijri,
		"hijri_formatted": data.Hijri.Format(),
		"gregorian":       data.Gregorian,
		"upcoming_events": islamicEvents[:upcomingEventCount],
	}, nil
}

// GET /api/calendar/events
func (cc *CalendarController) events(ctx *gin.Context) (any, *api.APIError) {
	return gin.H{"events": islamicEvents}, nil
}
