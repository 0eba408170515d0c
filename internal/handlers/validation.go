package handlers

import (
	"strconv"
	"strings"
	"time"

	"danawise/internal/money"
	"danawise/internal/validator"
)

func (h *Handler) check(payload any) ([]validator.FieldError, error) {
	return validator.Check(payload)
}

func parseAmountMinor(raw string) (int64, bool) {
	minor, err := money.ParsePositiveMinor(raw)
	if err != nil {
		return 0, false
	}
	return minor, true
}

func parseBalanceMinor(raw string) (int64, bool) {
	minor, err := money.ParseMinor(raw)
	if err != nil || minor < 0 {
		return 0, false
	}
	return minor, true
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func parseInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// parseRange maps "7d"/"30d"/"90d"/"365d" (or bare day counts) onto days;
// anything unrecognized gets the 30-day default.
func parseRange(raw string) int {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), "d")
	if trimmed == "" {
		return 30
	}
	days, err := strconv.Atoi(trimmed)
	if err != nil {
		return 30
	}
	switch days {
	case 7, 30, 90, 365:
		return days
	default:
		return 30
	}
}
