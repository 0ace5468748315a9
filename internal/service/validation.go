package service

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omitnull"
	"github.com/shopspring/decimal"

	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
)

const (
	maxAppNameLength                = 200
	maxAppDescriptionLength         = 2000
	maxTransactionDescriptionLength = 500
	maxParticipantNameLength        = 200
	minPasswordLength               = 8
)

var maxAmount = decimal.RequireFromString("999999999.99")

func validateAppName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperr.Validation("app name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxAppNameLength {
		return "", apperr.Validation("app name must be %d characters or less", maxAppNameLength)
	}
	return trimmed, nil
}

// normaliseText trims s and treats blank text as absent.
func normaliseText(field string, s *string, max int) (null.Val[string], error) {
	if s == nil {
		return null.Val[string]{}, nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return null.Val[string]{}, nil
	}
	if utf8.RuneCountInString(trimmed) > max {
		return null.Val[string]{}, apperr.Validation("%s must be %d characters or less", field, max)
	}
	return null.From(trimmed), nil
}

func normaliseURL(s *string) (null.Val[string], error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return null.Val[string]{}, nil
	}
	trimmed := strings.TrimSpace(*s)
	u, err := url.Parse(trimmed)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return null.Val[string]{}, apperr.Validation("url must be an absolute http or https URL")
	}
	return null.From(trimmed), nil
}

// patchText applies normaliseText to a submitted patch field. A blank value
// clears the column, as does an explicit null.
func patchText(field string, v omitnull.Val[string], max int) (omitnull.Val[string], error) {
	if v.IsUnset() {
		return v, nil
	}
	normalised, err := normaliseText(field, v.MustPtr(), max)
	if err != nil {
		return v, err
	}
	return omitnull.FromPtr(normalised.Ptr()), nil
}

func patchURL(v omitnull.Val[string]) (omitnull.Val[string], error) {
	if v.IsUnset() {
		return v, nil
	}
	normalised, err := normaliseURL(v.MustPtr())
	if err != nil {
		return v, err
	}
	return omitnull.FromPtr(normalised.Ptr()), nil
}

func validateTransactionType(s string) (profit.TransactionType, error) {
	t, err := profit.ParseTransactionType(s)
	if err != nil {
		return "", apperr.Validation(`transaction type must be "revenue" or "expense"`)
	}
	return t, nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperr.Validation("amount must not be negative")
	}
	if amount.GreaterThan(maxAmount) {
		return apperr.Validation("amount exceeds maximum value of %s", maxAmount.StringFixed(2))
	}
	if !amount.Equal(amount.Round(2)) {
		return apperr.Validation("amount must have at most two decimal places")
	}
	return nil
}

// validateTransactionDate normalises date to a calendar day and rejects days after today (UTC).
func validateTransactionDate(date, now time.Time) (time.Time, error) {
	day := profit.Day(date)
	if day.After(profit.Day(now.UTC())) {
		return time.Time{}, apperr.Validation("transaction date cannot be in the future")
	}
	return day, nil
}
