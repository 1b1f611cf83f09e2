package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock times are exchanged as minutes from midnight internally and as
// zero-padded 24-hour "HH:MM:00" strings at the storage boundary.

// FormatClock renders minutes from midnight as "HH:MM:00".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d:00", min/60, min%60)
}

// ParseClock parses a stored "HH:MM:00" (or "HH:MM") string into minutes
// from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: unparsable time %q", ErrValidation, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: unparsable time %q", ErrValidation, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: unparsable time %q", ErrValidation, s)
	}
	return h*60 + m, nil
}

// ParseClockInput parses free-form user input like "9:30 am", "14:00", "7pm"
// into minutes from midnight.
func ParseClockInput(s string) (int, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return 0, fmt.Errorf("%w: empty time", ErrValidation)
	}

	meridiem := ""
	for _, suffix := range []string{"am", "a.m.", "pm", "p.m."} {
		if strings.HasSuffix(in, suffix) {
			meridiem = string(suffix[0])
			in = strings.TrimSpace(strings.TrimSuffix(in, suffix))
			break
		}
	}

	hourStr, minStr := in, "0"
	if i := strings.Index(in, ":"); i >= 0 {
		hourStr, minStr = in[:i], in[i+1:]
	}
	h, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, fmt.Errorf("%w: unparsable time %q", ErrValidation, s)
	}
	m, err := strconv.Atoi(minStr)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: unparsable time %q", ErrValidation, s)
	}

	switch meridiem {
	case "a":
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("%w: unparsable time %q", ErrValidation, s)
		}
		if h == 12 {
			h = 0
		}
	case "p":
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("%w: unparsable time %q", ErrValidation, s)
		}
		if h != 12 {
			h += 12
		}
	default:
		if h < 0 || h > 23 {
			return 0, fmt.Errorf("%w: unparsable time %q", ErrValidation, s)
		}
	}
	return h*60 + m, nil
}
