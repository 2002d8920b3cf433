// Package sanitize strips embedded markup from free-text input before it
// reaches the store layer.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML tags and attributes from s and trims whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}

// TextPtr sanitizes an optional field in place. Nil stays nil.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := Text(*s)
	return &clean
}
