package prayer

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/geocode"
	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

// Resolver owns one display session's schedule: it runs Location
// Acquisition, fetches and holds the current PrayerSchedule, and
// re-projects the next prayer once per minute.
//
// Every fetch cycle carries a generation number. A settings change or
// refresh strictly supersedes any in-flight fetch; a late result from
// a superseded generation is discarded so stale data never overwrites
// fresher state.
type Resolver struct {
	fetcher *Fetcher
	locator *geocode.Resolver

	mu           sync.Mutex
	generation   uint64
	schedule     *model.PrayerSchedule
	settings     model.CalculationSettings
	position     model.GeoPosition
	usedFallback bool

	// now is the clock source; replaced in tests.
	now func() time.Time

	// onNext fires when the upcoming prayer changes between ticks.
	onNext       func(model.NextPrayerProjection)
	lastAnnounce string

	stop chan struct{}
	done chan struct{}
}

func NewResolver(fetcher *Fetcher, locator *geocode.Resolver, settings model.CalculationSettings) *Resolver {
	return &Resolver{
		fetcher:  fetcher,
		locator:  locator,
		settings: settings,
		now:      time.Now,
	}
}

// OnNextPrayer registers a hook invoked whenever the projected next
// prayer changes. Must be called before Start.
func (r *Resolver) OnNextPrayer(fn func(model.NextPrayerProjection)) {
	r.onNext = fn
}

// Refresh re-runs the pipeline from the top: Location Acquisition,
// then Schedule Fetch. It returns the fallback-location flag so the
// caller can surface exactly one warning.
func (r *Resolver) Refresh(ctx context.Context) (*model.PrayerSchedule, bool, error) {
	pos, fallback := r.locator.Locate(ctx)
	if fallback {
		log.Warn().Msg("geolocation unavailable, showing times for Mecca")
	}

	gen, settings := r.begin(pos, fallback)
	schedule, err := r.fetcher.Fetch(ctx, pos, settings, r.now())
	if err != nil {
		return nil, fallback, err
	}
	if !r.commit(gen, schedule) {
		// A newer cycle superseded this one; its result wins.
		log.Debug().Uint64("generation", gen).Msg("discarding superseded schedule fetch")
		cur, _ := r.Current()
		return cur, fallback, nil
	}
	return schedule, fallback, nil
}

// SetSettings validates and applies new calculation settings, then
// starts a fresh fetch cycle that invalidates any in-flight one.
func (r *Resolver) SetSettings(ctx context.Context, settings model.CalculationSettings) (*model.PrayerSchedule, error) {
	if err := ValidateMethod(settings.MethodID); err != nil {
		return nil, err
	}
	if err := ValidateSchool(settings.SchoolID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.settings = settings
	r.generation++
	gen := r.generation
	pos := r.position
	r.mu.Unlock()

	schedule, err := r.fetcher.Fetch(ctx, pos, settings, r.now())
	if err != nil {
		return nil, err
	}
	if !r.commit(gen, schedule) {
		cur, _ := r.Current()
		return cur, nil
	}
	return schedule, nil
}

// Current returns the committed schedule, if any.
func (r *Resolver) Current() (*model.PrayerSchedule, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.schedule == nil {
		return nil, false
	}
	return r.schedule, true
}

// Settings returns the active calculation settings.
func (r *Resolver) Settings() model.CalculationSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// Next projects the upcoming prayer from the committed schedule.
func (r *Resolver) Next() (model.NextPrayerProjection, bool) {
	schedule, ok := r.Current()
	if !ok {
		return model.NextPrayerProjection{}, false
	}
	return ProjectNext(*schedule, r.now()), true
}

func (r *Resolver) begin(pos model.GeoPosition, fallback bool) (uint64, model.CalculationSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.position = pos
	r.usedFallback = fallback
	return r.generation, r.settings
}

func (r *Resolver) commit(gen uint64, schedule *model.PrayerSchedule) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		return false
	}
	r.schedule = schedule
	return true
}

// Start launches the minute tick that keeps the projection current and
// feeds the announcement hook. Stop tears the timer down; leaking it
// across refreshes is a bug.
func (r *Resolver) Start(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.tick()
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop halts the projection tick and waits for the loop to exit.
func (r *Resolver) Stop() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	<-r.done
	r.stop = nil
}

func (r *Resolver) tick() {
	next, ok := r.Next()
	if !ok {
		return
	}
	if r.onNext == nil {
		return
	}

	r.mu.Lock()
	changed := next.PrayerName != r.lastAnnounce
	if changed {
		r.lastAnnounce = next.PrayerName
	}
	r.mu.Unlock()

	if changed {
		r.onNext(next)
	}
}
