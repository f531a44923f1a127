package calendar

import (
	"errors"
	"sync/atomic"
)

// Holder publishes the active calendar. Readers always see a complete
// calendar; Reload and Swap replace it in one atomic store.
type Holder struct {
	path    string
	current atomic.Pointer[Calendar]
}

func NewHolder(cal *Calendar, path string) *Holder {
	h := &Holder{path: path}
	h.current.Store(cal)
	return h
}

func (h *Holder) Current() *Calendar {
	return h.current.Load()
}

func (h *Holder) Swap(cal *Calendar) error {
	if cal == nil {
		return errors.New("calendar: nil calendar")
	}
	if err := cal.Validate(); err != nil {
		return err
	}
	h.current.Store(cal)
	return nil
}

// Reload re-reads the file the holder was created from. On error the
// active calendar is left untouched.
func (h *Holder) Reload() (*Calendar, error) {
	if h.path == "" {
		return nil, errors.New("calendar: holder has no source file")
	}
	cal, err := Load(h.path)
	if err != nil {
		return nil, err
	}
	h.current.Store(cal)
	return cal, nil
}
