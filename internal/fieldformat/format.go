// internal/fieldformat/format.go

// Package fieldformat holds the stateless format/mask/validate routines
// applied to single input values. Formatting never reports errors and
// validation never reformats; callers format first, then validate.
package fieldformat

import (
	"fmt"
	"strings"
)

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phone formats raw input as "(XXX) XXX-XXXX", grouping progressively as
// digits accumulate. Length is not validated here.
func Phone(raw string) string {
	d := Digits(raw)
	if len(d) > 10 {
		d = d[:10]
	}
	switch {
	case len(d) < 4:
		return d
	case len(d) < 7:
		return fmt.Sprintf("(%s) %s", d[:3], d[3:])
	default:
		return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
	}
}

// SSN formats raw input as "XXX-XX-XXXX" with the same progressive grouping,
// inserting dashes once the 4th and 6th digits arrive.
func SSN(raw string) string {
	d := Digits(raw)
	if len(d) > 9 {
		d = d[:9]
	}
	switch {
	case len(d) < 4:
		return d
	case len(d) < 6:
		return fmt.Sprintf("%s-%s", d[:3], d[3:])
	default:
		return fmt.Sprintf("%s-%s-%s", d[:3], d[3:5], d[5:])
	}
}

// MaskSSN renders the at-rest display form of a partially or fully typed
// SSN: every group except the last one typed so far is replaced by bullets.
// This is a display-only policy; stored values are never masked.
func MaskSSN(raw string) string {
	formatted := SSN(raw)
	groups := strings.Split(formatted, "-")
	for i := 0; i < len(groups)-1; i++ {
		groups[i] = strings.Repeat("•", len(groups[i]))
	}
	return strings.Join(groups, "-")
}

// DateInput masks raw input as "MM/DD/YYYY", inserting slashes after the
// 2nd and 4th digits and discarding anything past the 8th digit.
func DateInput(raw string) string {
	d := Digits(raw)
	if len(d) > 8 {
		d = d[:8]
	}
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 4:
		return fmt.Sprintf("%s/%s", d[:2], d[2:])
	default:
		return fmt.Sprintf("%s/%s/%s", d[:2], d[2:4], d[4:])
	}
}

// ISODate reorders an MM/DD/YYYY string into YYYY-MM-DD. Input that is not
// in that pattern (already ISO, partial, malformed) is returned unchanged,
// making the transform idempotent.
func ISODate(masked string) string {
	if !dateMaskRe.MatchString(masked) {
		return masked
	}
	return fmt.Sprintf("%s-%s-%s", masked[6:10], masked[0:2], masked[3:5])
}

// CurrencyDigits strips non-digits and groups the remainder with commas
// every three digits from the right. Purely a display transform; the
// authoritative value is recovered with NormalizeIncome.
func CurrencyDigits(raw string) string {
	d := Digits(raw)
	if len(d) <= 3 {
		return d
	}
	var b strings.Builder
	lead := len(d) % 3
	if lead > 0 {
		b.WriteString(d[:lead])
	}
	for i := lead; i < len(d); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(d[i : i+3])
	}
	return b.String()
}

// NormalizeIncome strips the comma grouping (and any other non-digit noise)
// back off a formatted currency string.
func NormalizeIncome(s string) string {
	return Digits(s)
}

// PhoneE164 converts a phone string to E.164. Ten digits get a "+1" country
// prefix, eleven digits with a leading 1 get "+". Any other digit count
// falls through to a bare "+" prefix; that lenient branch is kept as defined
// behavior and guarded upstream by phone length validation.
func PhoneE164(phone string) string {
	d := Digits(phone)
	switch {
	case len(d) == 10:
		return "+1" + d
	case len(d) == 11 && d[0] == '1':
		return "+" + d
	default:
		return "+" + d
	}
}
