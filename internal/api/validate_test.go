package api

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"
)

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantMsg bool
	}{
		{`10`, 10, false},
		{`"10"`, 10, false},
		{`" 25 "`, 25, false},
		{`1`, 1, false},
		{``, 0, true},     // missing
		{`null`, 0, true}, // explicit null
		{`0`, 0, true},
		{`-3`, 0, true},
		{`2.5`, 0, true},
		{`"2.5"`, 0, true},
		{`"abc"`, 0, true},
		{`true`, 0, true},
		{`{}`, 0, true},
	}

	for _, tt := range tests {
		got, msg := validateQuantity(json.RawMessage(tt.raw))
		if (msg != "") != tt.wantMsg {
			t.Errorf("validateQuantity(%s): message %q, wantMsg %v", tt.raw, msg, tt.wantMsg)
			continue
		}
		if msg == "" && got != tt.want {
			t.Errorf("validateQuantity(%s) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestValidateQuantityMessages(t *testing.T) {
	if _, msg := validateQuantity(nil); msg != "You must provide the quantity of items" {
		t.Errorf("missing quantity: got %q", msg)
	}
	if _, msg := validateQuantity(json.RawMessage(`"abc"`)); msg != "Quantity must be a whole number" {
		t.Errorf("non-numeric quantity: got %q", msg)
	}
	if _, msg := validateQuantity(json.RawMessage(`0`)); msg != "Quantity must be a positive whole number" {
		t.Errorf("zero quantity: got %q", msg)
	}
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour).UnixMilli()

	raw := json.RawMessage(ms(future))
	till, msg := validateExpiry(raw, now)
	if msg != "" {
		t.Fatalf("future expiry rejected: %q", msg)
	}
	if till.UnixMilli() != future {
		t.Errorf("expected %d, got %d", future, till.UnixMilli())
	}

	// Numeric string form.
	till, msg = validateExpiry(json.RawMessage(`"`+ms(future)+`"`), now)
	if msg != "" || till.UnixMilli() != future {
		t.Errorf("string expiry: got %d, %q", till.UnixMilli(), msg)
	}

	if _, msg := validateExpiry(nil, now); msg != "You must provide the expiry time" {
		t.Errorf("missing expiry: got %q", msg)
	}
	if _, msg := validateExpiry(json.RawMessage(`"soon"`), now); msg != "Expiry time must be a whole number" {
		t.Errorf("non-numeric expiry: got %q", msg)
	}

	past := now.Add(-time.Hour).UnixMilli()
	if _, msg := validateExpiry(json.RawMessage(ms(past)), now); msg != "Expiry must be a future time in milliseconds since epoch" {
		t.Errorf("past expiry: got %q", msg)
	}

	// Exactly now is not strictly in the future.
	if _, msg := validateExpiry(json.RawMessage(ms(now.UnixMilli())), now); msg == "" {
		t.Error("expected expiry equal to now to be rejected")
	}
}

func TestValidateName(t *testing.T) {
	if name, msg := validateName(json.RawMessage(`"Milk"`)); name != "Milk" || msg != "" {
		t.Errorf("valid name: got %q, %q", name, msg)
	}
	if _, msg := validateName(nil); msg != "An item needs a name for identification" {
		t.Errorf("missing name: got %q", msg)
	}
	if _, msg := validateName(json.RawMessage(`""`)); msg != "An item needs a name for identification" {
		t.Errorf("empty name: got %q", msg)
	}
	if _, msg := validateName(json.RawMessage(`42`)); msg != "Name must be a valid string" {
		t.Errorf("numeric name: got %q", msg)
	}
}

func TestParseItemID(t *testing.T) {
	if id, ok := parseItemID("7550a8ab-c496-4225-bae2-e0f85fd86742"); !ok || id != "7550a8ab-c496-4225-bae2-e0f85fd86742" {
		t.Errorf("valid uuid rejected: %q, %v", id, ok)
	}
	for _, bad := range []string{"", "not-a-uuid", "7550a8ab-c496-4225-bae2-e0f85fd86742extra"} {
		if _, ok := parseItemID(bad); ok {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

// ms renders an epoch-millisecond value as a JSON number literal.
func ms(n int64) string {
	return strconv.FormatInt(n, 10)
}
