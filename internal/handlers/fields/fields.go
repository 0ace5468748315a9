// Package fields holds request and response field types shared by the v1 handlers.
package fields

import (
	"time"

	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// NullableString is a patch field that distinguishes an absent key from an
// explicit null. Null clears the stored value.
type NullableString struct {
	omitnull.Val[string]
}

// Schema describes the field as a nullable string.
func (NullableString) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{Type: huma.TypeString, Nullable: true}
}

// Date formats t as a calendar date.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Timestamp formats t as RFC3339 in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Money formats an amount with exactly two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Amount converts a JSON number into a decimal, keeping the digits as written.
func Amount(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
