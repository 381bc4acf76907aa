// Package timex extends time.Duration with the parsing rules used by
// gophboard configuration: everything time.ParseDuration accepts, plus a
// whole-day suffix ("7d") and plain integers meaning nanoseconds in JSON.
package timex

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Day is the length of the "d" unit. Calendar days are not modelled.
const Day = 24 * time.Hour

// Duration wraps time.Duration for JSON decoding.
type Duration struct {
	time.Duration
}

// ParseDuration parses s as either "<n>d" or any time.ParseDuration input.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q: %w", s, err)
		}
		if int64(n) > math.MaxInt64/int64(Day) || int64(n) < math.MinInt64/int64(Day) {
			return 0, fmt.Errorf("invalid day duration %q: out of range", s)
		}
		return time.Duration(n) * Day, nil
	}
	return time.ParseDuration(s)
}

// UnmarshalJSON accepts a duration string ("90m", "7d") or an integer number
// of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

// UnmarshalText lets Duration be filled from environment variables.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalJSON writes the duration in time.Duration string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
