package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultSlotStep = 30

type Service struct {
	Name            string          `json:"name"`
	DurationMinutes int             `json:"duration"`
	Price           decimal.Decimal `json:"price"`
}

// DayHours is the open interval of a working day, [Open, Close).
type DayHours struct {
	Open  Clock `json:"open"`
	Close Clock `json:"close"`
}

func (h DayHours) Minutes() int {
	return int(h.Close - h.Open)
}

func (h DayHours) String() string {
	return h.Open.String() + "-" + h.Close.String()
}

// BusinessHours is indexed by time.Weekday; a nil entry means closed.
type BusinessHours [7]*DayHours

func (b BusinessHours) For(day time.Weekday) (DayHours, bool) {
	h := b[day]
	if h == nil {
		return DayHours{}, false
	}
	return *h, true
}

type Contact struct {
	Phone   string `json:"phone" mapstructure:"phone"`
	Email   string `json:"email" mapstructure:"email"`
	Address string `json:"address" mapstructure:"address"`
}

// Calendar is the immutable business configuration the scheduler works
// against. Replace it through a Holder, never mutate it in place.
type Calendar struct {
	BusinessName string
	Timezone     string
	Location     *time.Location
	SlotStep     int
	Hours        BusinessHours
	Services     []Service
	Contact      Contact
}

// FindService looks a service up by name, ignoring case and surrounding
// whitespace.
func (c *Calendar) FindService(name string) (Service, bool) {
	want := strings.TrimSpace(name)
	for _, s := range c.Services {
		if strings.EqualFold(s.Name, want) {
			return s, true
		}
	}
	return Service{}, false
}

func (c *Calendar) HoursOn(date time.Time) (DayHours, bool) {
	return c.Hours.For(date.Weekday())
}

// Validate checks the invariants the scheduler relies on.
func (c *Calendar) Validate() error {
	var errs []error

	if c.Location == nil {
		errs = append(errs, errors.New("timezone is required"))
	}
	if c.SlotStep <= 0 {
		errs = append(errs, fmt.Errorf("slot step must be positive, got %d", c.SlotStep))
	}

	for day, h := range c.Hours {
		if h == nil {
			continue
		}
		if !h.Open.valid() || !h.Close.valid() || h.Open >= h.Close {
			errs = append(errs, fmt.Errorf("%s: open must be before close", time.Weekday(day)))
		}
	}

	seen := make(map[string]struct{}, len(c.Services))
	for _, s := range c.Services {
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if key == "" {
			errs = append(errs, errors.New("service name is required"))
			continue
		}
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("duplicate service %q", s.Name))
		}
		seen[key] = struct{}{}

		if s.DurationMinutes <= 0 {
			errs = append(errs, fmt.Errorf("service %q: duration must be positive", s.Name))
		}
		if s.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("service %q: price must not be negative", s.Name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("calendar: %w", errors.Join(errs...))
	}
	return nil
}
