// Package rut implements the Chilean RUT/RUN identifier: cleaning, Module-11
// check digit computation, validation and the dotted display format.
//
// Every caller that needs to show or validate a RUT goes through this package;
// the check digit is always recomputed from the body and never trusted from
// input.
//
// Domain Purity: no I/O, no logging, no time. All functions are total and
// safe for concurrent use.
package rut

import (
	"strings"
)

// NotAvailable is returned by Format when there is nothing to format.
const NotAvailable = "N/A"

// maxBodyDigits is the longest body accepted by Parse and IsValid once leading
// zeros are dropped.
const maxBodyDigits = 9

// Clean strips every '.' and '-' from input. It performs no other validation.
func Clean(input string) string {
	if !strings.ContainsAny(input, ".-") {
		return input
	}
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		if c := input[i]; c != '.' && c != '-' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// CheckDigit computes the Module-11 check digit of body, as published by the
// SII: digits are weighted from the least significant with the repeating
// multipliers 2,3,4,5,6,7 and r = 11 - sum%11 maps 11 to '0' and 10 to 'K'.
//
// Non-digit bytes are skipped. An empty body sums to zero and yields '0'.
func CheckDigit(body string) byte {
	sum := 0
	multiplier := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			continue
		}
		sum += int(c-'0') * multiplier
		multiplier++
		if multiplier > 7 {
			multiplier = 2
		}
	}
	switch r := 11 - sum%11; r {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + r)
	}
}

// Format renders raw as "12.345.678-5".
//
// The last character of the cleaned input is read as an already supplied
// check digit, dropped and recomputed, when the cleaned value is longer than
// eight characters, when the raw input separates it with '-', or when it is a
// 'K'. Otherwise the whole cleaned input is the body. Empty input and bodies
// with non-digit characters yield NotAvailable.
//
// Format is idempotent: Format(Format(x)) == Format(x).
func Format(raw string) string {
	body, ok := formatBody(raw)
	if !ok {
		return NotAvailable
	}
	return group(body) + "-" + string(CheckDigit(body))
}

// IsValid reports whether the last character of rutWithDv is the check digit
// of the digits before it. Separators are ignored and the comparison is case
// insensitive. Empty, too short, non-numeric and all-zero bodies are invalid.
func IsValid(rutWithDv string) bool {
	_, err := Parse(rutWithDv)
	return err == nil
}

// formatBody extracts the digits to format, following the rules of Format.
func formatBody(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	cleaned := Clean(raw)
	if cleaned == "" {
		return "", false
	}

	body := cleaned
	if hasSuppliedCheckDigit(raw, cleaned) {
		body = cleaned[:len(cleaned)-1]
	}
	if body == "" || !isDigits(body) {
		return "", false
	}
	return trimLeadingZeros(body), true
}

func hasSuppliedCheckDigit(raw, cleaned string) bool {
	if len(cleaned) > 8 {
		return true
	}
	last := cleaned[len(cleaned)-1]
	if last == 'K' || last == 'k' {
		return true
	}
	// "1234567-4": the dash sits right before the final character.
	if i := strings.LastIndexByte(raw, '-'); i >= 0 && i == len(raw)-2 {
		return true
	}
	return false
}

// group inserts '.' every three digits counting from the right.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func trimLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
