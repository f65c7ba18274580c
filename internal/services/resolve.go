package services

import (
	"strings"

	"gorm.io/gorm"
)

// looksLikeID reports whether the identifier already has the shape of a
// generated UUID rather than a slug or name.
func looksLikeID(identifier string) bool {
	return strings.Contains(identifier, "-") && len(identifier) > 30
}

// resolveReference turns a slug-or-name-or-id string into an entity id using
// a three-tier fallback: id-shape check, slug lookup, then case-insensitive
// name lookup. resource is the user-facing label used in errors.
func resolveReference(db *gorm.DB, table, resource, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", &ReferenceNotFoundError{Resource: resource, Identifier: identifier}
	}
	if looksLikeID(identifier) {
		return identifier, nil
	}

	var ids []string
	if err := db.Table(table).Where("slug = ?", identifier).Limit(1).Pluck("id", &ids).Error; err != nil {
		return "", err
	}
	if len(ids) == 0 {
		if err := db.Table(table).Where("LOWER(name) = LOWER(?)", identifier).Limit(1).Pluck("id", &ids).Error; err != nil {
			return "", err
		}
	}
	if len(ids) == 0 {
		return "", &ReferenceNotFoundError{Resource: resource, Identifier: identifier}
	}
	return ids[0], nil
}

// slugTaken builds an existence probe over one table's slug namespace,
// additionally honoring slugs staged in the current batch.
func slugTaken(db *gorm.DB, table string, staged map[string]bool) func(string) bool {
	return func(s string) bool {
		if staged != nil && staged[s] {
			return true
		}
		var n int64
		db.Table(table).Where("slug = ?", s).Count(&n)
		return n > 0
	}
}
