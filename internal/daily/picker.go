// internal/daily/picker.go
//
// Daily pick selection.
// Exactly one language is committed per calendar day:
//   - An existing pick for today wins.
//   - Otherwise a random catalog entry is inserted; a uniqueness violation means
//     another caller got there first, so the winner is re-read and returned.
//   - Transient insert failures are retried a bounded number of times with
//     exponential backoff, then surface as ErrPickUnavailable.
//   - Concurrent callers in this process share one in-flight attempt per day.

package daily

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/robalobadob/langle/internal/catalog"
)

const (
	DefaultPickAttempts = 5
	DefaultPickBackoff  = 50 * time.Millisecond
)

// PickerOptions tune the retry loop of Ensure.
type PickerOptions struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Picker selects and persists the language of the day.
type Picker struct {
	store       Store
	catalog     *catalog.Catalog
	cal         Calendar
	maxAttempts int
	backoff     time.Duration
	group       singleflight.Group
}

type pickResult struct {
	name    string
	day     string
	already bool
}

// NewPicker returns a Picker. Zero options fall back to the defaults.
func NewPicker(store Store, cat *catalog.Catalog, cal Calendar, opts PickerOptions) *Picker {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultPickAttempts
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultPickBackoff
	}
	return &Picker{
		store:       store,
		catalog:     cat,
		cal:         cal,
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.Backoff,
	}
}

// Today returns today's language name, or ErrNoPick.
func (p *Picker) Today(ctx context.Context) (string, error) {
	pick, ok, err := p.find(ctx, p.cal.Today())
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoPick
	}
	return pick.LanguageName, nil
}

// TodaysLanguage resolves today's pick (creating it if needed) to its catalog record.
func (p *Picker) TodaysLanguage(ctx context.Context) (catalog.Language, error) {
	lang, _, err := p.TodaysTarget(ctx)
	return lang, err
}

// TodaysTarget is TodaysLanguage plus the day key the pick belongs to.
// Near midnight the key is the one the pick was made for, not a second
// reading of the clock.
func (p *Picker) TodaysTarget(ctx context.Context) (catalog.Language, string, error) {
	r, err := p.ensureToday(ctx)
	if err != nil {
		return catalog.Language{}, "", err
	}
	lang, ok := p.catalog.Lookup(r.name)
	if !ok {
		return catalog.Language{}, "", fmt.Errorf("daily pick %q is not in the catalog", r.name)
	}
	return lang, r.day, nil
}

// Ensure returns today's pick, creating it if none exists.
// alreadyPicked is false for the callers that took part in the insert that
// committed the pick, true for everyone after.
func (p *Picker) Ensure(ctx context.Context) (name string, alreadyPicked bool, err error) {
	r, err := p.ensureToday(ctx)
	if err != nil {
		return "", false, err
	}
	return r.name, r.already, nil
}

func (p *Picker) ensureToday(ctx context.Context) (pickResult, error) {
	day := p.cal.Today()
	// the shared attempt must not die with whichever caller started it
	shared := context.WithoutCancel(ctx)
	v, err, _ := p.group.Do(day, func() (any, error) {
		return p.ensure(shared, day)
	})
	if err != nil {
		return pickResult{}, err
	}
	return v.(pickResult), nil
}

func (p *Picker) ensure(ctx context.Context, day string) (pickResult, error) {
	wait := p.backoff
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		pick, ok, err := p.find(ctx, day)
		if err != nil {
			return pickResult{}, err
		}
		if ok {
			return pickResult{name: pick.LanguageName, day: day, already: true}, nil
		}

		name := p.catalog.Random().Name
		_, err = p.store.InsertPick(ctx, Pick{LanguageName: name, Day: day, CreatedAt: p.cal.Now()})
		if err == nil {
			log.Info().Str("day", day).Str("language", name).Msg("daily pick created")
			return pickResult{name: name, day: day}, nil
		}
		if errors.Is(err, ErrDuplicate) {
			pick, ok, rerr := p.find(ctx, day)
			if rerr != nil {
				return pickResult{}, rerr
			}
			if ok {
				return pickResult{name: pick.LanguageName, day: day, already: true}, nil
			}
		}

		lastErr = err
		log.Warn().Err(err).Str("day", day).Int("attempt", attempt).Msg("insert daily pick failed")
		if attempt == p.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return pickResult{}, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return pickResult{}, fmt.Errorf("%w after %d attempts: %w", ErrPickUnavailable, p.maxAttempts, lastErr)
}

func (p *Picker) find(ctx context.Context, day string) (Pick, bool, error) {
	picks, err := p.store.ListPicks(ctx)
	if err != nil {
		return Pick{}, false, fmt.Errorf("read daily picks: %w", err)
	}
	for _, pick := range picks {
		if pick.Day == day {
			return pick, true, nil
		}
	}
	return Pick{}, false, nil
}
