// Package domain holds value types shared across the service surface.
package domain

import (
	"fmt"
	"strings"
)

// APIVersion represents a valid API version string.
// This is a domain primitive that enforces validity at parse time.
type APIVersion string

// Supported API versions.
const (
	APIVersionV1 APIVersion = "v1"
)

// versionOrder defines the ordering of versions for comparison.
// Higher numbers represent newer versions.
var versionOrder = map[APIVersion]int{
	APIVersionV1: 1,
}

// ParseAPIVersion validates and returns an APIVersion. "V1" and " v1 " are
// accepted as v1.
func ParseAPIVersion(s string) (APIVersion, error) {
	v := APIVersion(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := versionOrder[v]; !ok {
		return "", fmt.Errorf("unknown API version: %s", s)
	}
	return v, nil
}

// String returns the string representation of the API version.
func (v APIVersion) String() string {
	return string(v)
}

// IsNil returns true if the API version is empty.
func (v APIVersion) IsNil() bool {
	return v == ""
}

// IsAtLeast returns true if this version is >= other. Unknown versions sort
// below every known one.
func (v APIVersion) IsAtLeast(other APIVersion) bool {
	thisOrder, thisOK := versionOrder[v]
	otherOrder, otherOK := versionOrder[other]
	if !thisOK {
		return false
	}
	if !otherOK {
		return true
	}
	return thisOrder >= otherOrder
}
