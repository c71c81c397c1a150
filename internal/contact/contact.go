// Package contact extracts contact details from free text and redacts them.
package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRe  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)
	phoneRe  = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{5,}\d`)
	handleRe = regexp.MustCompile(`(^|[^A-Za-z0-9_@.])@([A-Za-z0-9_]{2,30})\b`)
	dateRe   = regexp.MustCompile(`^\d{4}[-./]\d{1,2}[-./]\d{1,2}$|^\d{1,2}[-./]\d{1,2}[-./]\d{4}$`)
)

// Phone numbers outside this digit range are treated as other numbers
// (room numbers, dates, serials).
const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// Redaction markers.
const (
	EmailMask  = "[email]"
	PhoneMask  = "[phone]"
	HandleMask = "[handle]"
)

// Info is the contact information found in a text.
type Info struct {
	Emails  []string
	Phones  []string // digits only, with a leading + when one was written
	Handles []string // without the @
	// Redacted is the input with every match replaced by its mask.
	Redacted string
}

// Empty reports whether nothing was found.
func (i Info) Empty() bool {
	return len(i.Emails) == 0 && len(i.Phones) == 0 && len(i.Handles) == 0
}

// String joins everything found into one line, e.g. for an item's contact
// field.
func (i Info) String() string {
	parts := make([]string, 0, len(i.Emails)+len(i.Phones)+len(i.Handles))
	parts = append(parts, i.Emails...)
	parts = append(parts, i.Phones...)
	for _, h := range i.Handles {
		parts = append(parts, "@"+h)
	}
	return strings.Join(parts, ", ")
}

// Parse finds emails, phone numbers and @handles in text. Matches are
// deduplicated, keeping first-seen order. Emails are found first so their
// local parts are not mistaken for handles.
func Parse(text string) Info {
	var info Info
	seen := make(map[string]bool)
	add := func(list *[]string, v string) {
		if !seen[v] {
			seen[v] = true
			*list = append(*list, v)
		}
	}

	out := emailRe.ReplaceAllStringFunc(text, func(m string) string {
		add(&info.Emails, strings.ToLower(m))
		return EmailMask
	})

	out = phoneRe.ReplaceAllStringFunc(out, func(m string) string {
		normalized, ok := normalizePhone(m)
		if !ok {
			return m
		}
		add(&info.Phones, normalized)
		return PhoneMask
	})

	out = handleRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := handleRe.FindStringSubmatch(m)
		add(&info.Handles, sub[2])
		return sub[1] + HandleMask
	})

	info.Redacted = out
	return info
}

// Preview redacts text and shortens it to at most max runes.
func Preview(text string, max int) string {
	red := strings.Join(strings.Fields(Parse(text).Redacted), " ")
	if max <= 0 || utf8.RuneCountInString(red) <= max {
		return red
	}
	runes := []rune(red)
	if max == 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}

func normalizePhone(raw string) (string, bool) {
	var b strings.Builder
	trimmed := strings.TrimSpace(raw)
	if dateRe.MatchString(trimmed) {
		return "", false
	}
	if strings.HasPrefix(trimmed, "+") {
		b.WriteByte('+')
	}
	digits := 0
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			digits++
		}
	}
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return "", false
	}
	return b.String(), true
}
