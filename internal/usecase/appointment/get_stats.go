package appointment

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/timezone"
)

const statsKey = "stats:"

// GetStats serves aggregate counts from a short-lived cache. Writes call
// Invalidate so a booking shows up on the next read.
type GetStats struct {
	repo  domain.Repository
	cal   CalendarProvider
	now   timezone.NowFunc
	cache *cache.Cache
}

func NewGetStats(
	repo domain.Repository,
	cal CalendarProvider,
	now timezone.NowFunc,
	ttl time.Duration,
) *GetStats {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &GetStats{
		repo:  repo,
		cal:   cal,
		now:   nowOrDefault(now),
		cache: cache.New(ttl, 2*ttl),
	}
}

// Execute counts appointments overall and for today in the business
// timezone. Cache entries are keyed by day so midnight starts a fresh count.
func (uc *GetStats) Execute(ctx context.Context) (*domain.Stats, error) {
	today := uc.now().In(uc.cal.Current().Location).Format(domain.DateLayout)
	key := statsKey + today

	if v, ok := uc.cache.Get(key); ok {
		return v.(*domain.Stats), nil
	}

	stats, err := uc.repo.Stats(ctx, today)
	if err != nil {
		return nil, err
	}

	uc.cache.SetDefault(key, stats)
	return stats, nil
}

func (uc *GetStats) Invalidate() {
	uc.cache.Flush()
}
