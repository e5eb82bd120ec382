// Package dates adapts calendar dates between the backend API format
// (YYYY-MM-DD, optionally "YYYY-MM-DD HH:mm:ss") and the UI display format
// (DD/MM/YYYY), and renders timestamps for humans.
//
// Every function here is total: malformed input comes back unchanged, as a
// sentinel string, or as ok == false. Nothing panics.
package dates

import (
	"strings"
	"time"
)

// Layouts exchanged with the backend and the UI.
const (
	APILayout       = "2006-01-02"
	DisplayLayout   = "02/01/2006"
	TimestampLayout = "2006-01-02 15:04:05"
)

// flexibleLayouts is the ordered list tried by ParseFlexibleIn. Order matters:
// "01/02/2024" is always read with the first layout that strictly matches.
var flexibleLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"02/01/2006",
	TimestampLayout,
	time.RFC3339,
}

// ToAPIFormat converts "DD/MM/YYYY" (optionally followed by " HH:mm:ss") to
// "YYYY-MM-DD". Values that already use '-' and no '/' are returned as is, as
// is anything that is not three '/'-separated numeric parts. One-digit days
// and months are zero padded.
func ToAPIFormat(displayDate string) string {
	if displayDate == "" {
		return ""
	}
	if strings.Contains(displayDate, "-") && !strings.Contains(displayDate, "/") {
		return displayDate
	}

	date, clock, hasClock := strings.Cut(displayDate, " ")
	parts := strings.Split(date, "/")
	if !validParts(parts, 2, 2, 4) {
		return displayDate
	}

	out := parts[2] + "-" + pad2(parts[1]) + "-" + pad2(parts[0])
	if hasClock {
		out += " " + clock
	}
	return out
}

// ToDisplayFormat converts "YYYY-MM-DD" to "DD/MM/YYYY". The space separated
// timestamp variant keeps its time of day; an RFC 3339 'T' suffix is dropped.
// Values that already contain '/' are returned as is.
func ToDisplayFormat(apiDate string) string {
	if apiDate == "" {
		return ""
	}
	if strings.Contains(apiDate, "/") {
		return apiDate
	}

	date, clock, hasClock := strings.Cut(apiDate, " ")
	if !hasClock {
		date, _, _ = strings.Cut(date, "T")
	}
	parts := strings.Split(date, "-")
	if !validParts(parts, 4, 2, 2) {
		return apiDate
	}

	out := pad2(parts[2]) + "/" + pad2(parts[1]) + "/" + parts[0]
	if hasClock {
		out += " " + clock
	}
	return out
}

// ParseFlexible parses s in time.Local. See ParseFlexibleIn.
func ParseFlexible(s string) (time.Time, bool) {
	return ParseFlexibleIn(s, time.Local)
}

// ParseFlexibleIn tries each accepted layout in declaration order and returns
// the first strict match: YYYY-MM-DD, DD-MM-YYYY, YYYY/MM/DD, DD/MM/YYYY,
// then the "YYYY-MM-DD HH:mm:ss" and RFC 3339 timestamps. Dates without an
// offset are interpreted in loc.
func ParseFlexibleIn(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range flexibleLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatAPI renders t as "YYYY-MM-DD".
func FormatAPI(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(APILayout)
}

// FormatDisplay renders t as "DD/MM/YYYY".
func FormatDisplay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayLayout)
}

// validParts reports whether parts holds exactly three numeric fields whose
// lengths do not exceed the given widths. The year field must be exact.
func validParts(parts []string, widths ...int) bool {
	if len(parts) != len(widths) {
		return false
	}
	for i, p := range parts {
		if p == "" || len(p) > widths[i] || !isDigits(p) {
			return false
		}
		if widths[i] == 4 && len(p) != 4 {
			return false
		}
	}
	return true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
