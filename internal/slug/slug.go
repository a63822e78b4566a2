// Package slug assigns unique URL identifiers to organizations.
package slug

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Derive returns the identifier form of an organization name: lowercased
// with spaces replaced by hyphens.
func Derive(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// WithSuffix returns the candidate for attempt n. Attempt 0 is the bare
// base; attempts 1, 2, ... append -1, -2, ...
func WithSuffix(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// NextAvailable walks candidates deterministically from suffix 0 upward and
// returns the first one no client currently uses. The unique index on
// clients.slug remains the authoritative guard; callers must treat a
// duplicate-key error at insert time as a signal to call this again.
func NextAvailable(db *gorm.DB, base string) (string, error) {
	for n := 0; ; n++ {
		candidate := WithSuffix(base, n)
		var count int64
		if err := db.Table("clients").Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
}
