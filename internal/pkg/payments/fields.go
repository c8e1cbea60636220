package payments

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ManuelReschke/PayHook/app/models"
)

// TimestampLayout is the ISO-8601 layout used for server generated timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// epoch values above this are treated as milliseconds
const epochMillisThreshold = 1e12

// maxEpochMillis is 9999-12-31T23:59:59.999Z. Larger epochs are treated as absent.
const maxEpochMillis = 253402300799999

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok && a != nil
}

// firstObject returns the first element of items when it is an object and an
// empty object otherwise, so lookups on it never need a nil check.
func firstObject(items []any) map[string]any {
	if len(items) > 0 {
		if m, ok := asObject(items[0]); ok {
			return m
		}
	}
	return map[string]any{}
}

// stringValue renders a JSON scalar as a string. Objects, arrays, booleans
// and null yield "".
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// firstString returns the first non-empty string value among keys.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringValue(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// firstPresent returns the first value among keys that is present and not null.
func firstPresent(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func hasAny(m map[string]any, keys ...string) bool {
	_, ok := firstPresent(m, keys...)
	return ok
}

// amountOf resolves the first present amount alias. Anything that does not
// parse as a finite number becomes 0.
func amountOf(m map[string]any, keys ...string) float64 {
	v, ok := firstPresent(m, keys...)
	if !ok {
		return 0
	}
	return amountValue(v)
}

func amountValue(v any) float64 {
	switch t := v.(type) {
	case float64:
		return finite(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		return parseDecimal(t.String())
	case string:
		return parseDecimal(t)
	default:
		return 0
	}
}

func parseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// firstTimestamp returns the first usable timestamp among keys. Strings are
// kept as sent; numbers are read as Unix seconds or milliseconds.
func firstTimestamp(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if ts := timestampValue(m[k]); ts != "" {
			return ts
		}
	}
	return ""
}

func timestampValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64, json.Number, int, int64:
		epoch := amountValue(t)
		if epoch <= 0 || epoch > maxEpochMillis {
			return ""
		}
		var ts time.Time
		if epoch > epochMillisThreshold {
			ts = time.UnixMilli(int64(epoch))
		} else {
			ts = time.Unix(int64(epoch), 0)
		}
		return ts.UTC().Format(TimestampLayout)
	default:
		return ""
	}
}

// tokensFrom copies the token fields named by keys (token, token id, pan token,
// commerce token, in that order). It returns nil when none is present.
func tokensFrom(method map[string]any, keys [4]string) *models.PaymentTokens {
	t := models.PaymentTokens{
		Token:         firstString(method, keys[0]),
		TokenID:       firstString(method, keys[1]),
		PanToken:      firstString(method, keys[2]),
		CommerceToken: firstString(method, keys[3]),
	}
	if t.IsEmpty() {
		return nil
	}
	return &t
}
