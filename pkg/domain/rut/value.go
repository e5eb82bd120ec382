package rut

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Rut is a validated Chilean RUT.
//
// Invariants:
//   - body is non-zero and has at most nine digits
//   - dv is always CheckDigit(body)
type Rut struct {
	body uint32
	dv   byte
}

var (
	// ErrInvalidRut indicates the input is not shaped like a RUT.
	ErrInvalidRut = errors.New("invalid rut: expected 1-9 digits followed by a check digit")

	// ErrCheckDigitMismatch indicates a well-formed RUT whose check digit does
	// not match its body.
	ErrCheckDigitMismatch = errors.New("invalid rut: check digit mismatch")
)

// New builds a Rut from its numeric body, computing the check digit.
// It returns the zero Rut for a zero body or one longer than nine digits.
func New(body uint32) Rut {
	if body == 0 || body > 999_999_999 {
		return Rut{}
	}
	digits := strconv.FormatUint(uint64(body), 10)
	return Rut{body: body, dv: CheckDigit(digits)}
}

// Parse reads a RUT that carries its check digit as the last character, in
// any of the usual shapes ("12.345.678-5", "12345678-5", "123456785").
// Surrounding whitespace is ignored and 'k' is accepted for 'K'.
func Parse(s string) (Rut, error) {
	cleaned := Clean(strings.TrimSpace(s))
	if len(cleaned) < 2 {
		return Rut{}, ErrInvalidRut
	}

	digits := cleaned[:len(cleaned)-1]
	claimed := upper(cleaned[len(cleaned)-1])
	if !isDigits(digits) {
		return Rut{}, ErrInvalidRut
	}
	digits = trimLeadingZeros(digits)
	if digits == "0" || len(digits) > maxBodyDigits {
		return Rut{}, ErrInvalidRut
	}

	expected := CheckDigit(digits)
	if claimed != expected {
		return Rut{}, fmt.Errorf("%w: got %q, want %q", ErrCheckDigitMismatch, claimed, expected)
	}

	body, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return Rut{}, ErrInvalidRut
	}
	return Rut{body: uint32(body), dv: expected}, nil
}

// MustParse is like Parse but panics on invalid input.
// Use only in tests or for constants known to be valid.
func MustParse(s string) Rut {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Body returns the numeric body without check digit.
func (r Rut) Body() uint32 {
	return r.body
}

// CheckDigit returns the check digit ('0'-'9' or 'K').
func (r Rut) CheckDigit() byte {
	return r.dv
}

// String returns the dotted display form, "12.345.678-5".
func (r Rut) String() string {
	if r.IsZero() {
		return NotAvailable
	}
	return group(strconv.FormatUint(uint64(r.body), 10)) + "-" + string(r.dv)
}

// Compact returns the form the backend stores, "12345678-5".
func (r Rut) Compact() string {
	if r.IsZero() {
		return ""
	}
	return strconv.FormatUint(uint64(r.body), 10) + "-" + string(r.dv)
}

// IsZero returns true if this is the zero value (uninitialized).
func (r Rut) IsZero() bool {
	return r.body == 0
}

// MarshalText encodes the Rut in compact form.
func (r Rut) MarshalText() ([]byte, error) {
	return []byte(r.Compact()), nil
}

// UnmarshalText parses any shape accepted by Parse. Empty text leaves the
// zero Rut.
func (r *Rut) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*r = Rut{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func upper(c byte) byte {
	if c == 'k' {
		return 'K'
	}
	return c
}
