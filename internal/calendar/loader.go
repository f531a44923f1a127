package calendar

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/BruksfildServices01/receptionist/internal/timezone"
)

// fileConfig mirrors business_config.json / business_config.yaml.
type fileConfig struct {
	BusinessName    string            `mapstructure:"business_name"`
	Timezone        string            `mapstructure:"timezone"`
	SlotStepMinutes int               `mapstructure:"slot_step_minutes"`
	WorkingHours    map[string]string `mapstructure:"working_hours"`
	Services        []fileService     `mapstructure:"services"`
	ContactInfo     Contact           `mapstructure:"contact_info"`
}

type fileService struct {
	Name     string `mapstructure:"name"`
	Price    string `mapstructure:"price"`
	Duration int    `mapstructure:"duration"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load reads the business calendar from a JSON or YAML file. TIMEZONE in
// the environment fills in a missing timezone.
func Load(path string) (*Calendar, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("slot_step_minutes", DefaultSlotStep)
	v.SetDefault("timezone", defaultTimezone())

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("calendar: read %s: %w", path, err)
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("calendar: decode %s: %w", path, err)
	}

	return build(raw)
}

func build(raw fileConfig) (*Calendar, error) {
	if !timezone.IsValid(raw.Timezone) {
		return nil, fmt.Errorf("calendar: unknown timezone %q", raw.Timezone)
	}

	cal := &Calendar{
		BusinessName: raw.BusinessName,
		Timezone:     raw.Timezone,
		Location:     timezone.Location(raw.Timezone),
		SlotStep:     raw.SlotStepMinutes,
		Contact:      raw.ContactInfo,
	}

	for name, spec := range raw.WorkingHours {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("calendar: unknown weekday %q", name)
		}
		hours, err := ParseDayHours(spec)
		if err != nil {
			return nil, fmt.Errorf("calendar: %s: %w", name, err)
		}
		cal.Hours[day] = hours
	}

	for _, s := range raw.Services {
		price := decimal.Zero
		if strings.TrimSpace(s.Price) != "" {
			p, err := decimal.NewFromString(strings.TrimSpace(s.Price))
			if err != nil {
				return nil, fmt.Errorf("calendar: service %q: invalid price %q", s.Name, s.Price)
			}
			price = p
		}
		cal.Services = append(cal.Services, Service{
			Name:            strings.TrimSpace(s.Name),
			DurationMinutes: s.Duration,
			Price:           price,
		})
	}

	if err := cal.Validate(); err != nil {
		return nil, err
	}
	return cal, nil
}

func defaultTimezone() string {
	if tz := strings.TrimSpace(os.Getenv("TIMEZONE")); tz != "" {
		return tz
	}
	return timezone.DefaultTimezone
}

// ParseDayHours parses "9:00 AM - 6:00 PM", "09:00-18:00" or "Closed".
// A nil result means the business is closed that day.
func ParseDayHours(spec string) (*DayHours, error) {
	s := strings.TrimSpace(spec)
	if s == "" || strings.EqualFold(s, "closed") {
		return nil, nil
	}

	openPart, closePart, ok := strings.Cut(s, "-")
	if !ok {
		return nil, fmt.Errorf("invalid hours %q", spec)
	}

	open, err := ParseClock(openPart)
	if err != nil {
		return nil, err
	}
	closing, err := ParseClock(closePart)
	if err != nil {
		return nil, err
	}
	if open >= closing {
		return nil, fmt.Errorf("invalid hours %q: open must be before close", spec)
	}

	return &DayHours{Open: open, Close: closing}, nil
}
