package utils

import (
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// GenerateSlug turns a display name into a url-safe slug matching
// [a-z0-9-]+: lowercase, trim, whitespace and dashes collapse to a
// single "-", every other character is stripped. Non-ASCII letters are
// stripped too so the stored slug is always URL safe.
func GenerateSlug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	lastDash := false
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		case r == '-' || unicode.IsSpace(r):
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// EnsureUniqueSlug appends -2, -3, ... until the slug is free in the
// given table/column.
func EnsureUniqueSlug(db *gorm.DB, base, table, column string) (string, error) {
	slug := base
	for n := 2; ; n++ {
		var count int64
		if err := db.Table(table).
			Where(fmt.Sprintf("%s = ?", column), slug).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
