package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DayHours describes the opening window for a single weekday. Start and End
// are "HH:MM" clock strings; both are ignored when IsOpen is false.
type DayHours struct {
	IsOpen bool   `json:"isOpen"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// BusinessHours maps lowercase weekday keys ("monday".."sunday") to opening
// windows. A nil map means the company never configured hours and is treated
// as always open.
type BusinessHours map[string]DayHours

var weekdayKeys = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// WeekdayKey returns the map key used for a weekday.
func WeekdayKey(day time.Weekday) string {
	return weekdayKeys[day]
}

// ForWeekday looks up the entry for a weekday.
func (h BusinessHours) ForWeekday(day time.Weekday) (DayHours, bool) {
	entry, ok := h[WeekdayKey(day)]
	return entry, ok
}

// Value serialises the table as JSONB.
func (h BusinessHours) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

// Scan deserialises the table from JSONB, leaving nil for NULL columns.
func (h *BusinessHours) Scan(src interface{}) error {
	if src == nil {
		*h = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported business hours column type %T", src)
	}
	if len(raw) == 0 {
		*h = nil
		return nil
	}
	return json.Unmarshal(raw, h)
}
