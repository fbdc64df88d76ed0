package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Request fields that should be numbers are decoded as json.RawMessage and
// coerced here, so clients may send either 10 or "10". Each validator returns
// the parsed value and an empty message, or a user-facing message for the
// field error map.

// parseNumber interprets a raw JSON value as a number, accepting numeric
// strings.
func parseNumber(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// wholeNumber reports whether f has no fractional part, returning it as an
// integer.
func wholeNumber(f float64) (int64, bool) {
	n := int64(f)
	return n, float64(n) == f
}

// fieldMissing reports whether a raw JSON field was absent or null.
func fieldMissing(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// validateQuantity parses a quantity field: a positive whole number.
func validateQuantity(raw json.RawMessage) (int, string) {
	if fieldMissing(raw) {
		return 0, "You must provide the quantity of items"
	}
	f, ok := parseNumber(raw)
	if !ok {
		return 0, "Quantity must be a whole number"
	}
	n, whole := wholeNumber(f)
	if !whole || n <= 0 {
		return 0, "Quantity must be a positive whole number"
	}
	return int(n), ""
}

// validateExpiry parses an expiry field: epoch milliseconds strictly in the
// future at the time of validation.
func validateExpiry(raw json.RawMessage, now time.Time) (time.Time, string) {
	if fieldMissing(raw) {
		return time.Time{}, "You must provide the expiry time"
	}
	f, ok := parseNumber(raw)
	if !ok {
		return time.Time{}, "Expiry time must be a whole number"
	}
	n, whole := wholeNumber(f)
	if !whole {
		return time.Time{}, "Expiry time must be a whole number"
	}
	if n <= now.UnixMilli() {
		return time.Time{}, "Expiry must be a future time in milliseconds since epoch"
	}
	return time.UnixMilli(n), ""
}

// validateName parses an item name field: a non-empty string.
func validateName(raw json.RawMessage) (string, string) {
	if fieldMissing(raw) {
		return "", "An item needs a name for identification"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", "Name must be a valid string"
	}
	if s == "" {
		return "", "An item needs a name for identification"
	}
	return s, ""
}

// parseItemID validates a path id as a UUID before it reaches the store.
func parseItemID(raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
