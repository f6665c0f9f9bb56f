package errs

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Markers emitted by the sqlite and postgres drivers for constraint
// violations. Gorm only translates these when TranslateError is on,
// so the raw messages are matched as well.
var integrityMarkers = []string{
	"UNIQUE constraint failed",
	"NOT NULL constraint failed",
	"FOREIGN KEY constraint failed",
	"duplicate key value violates unique constraint",
	"violates not-null constraint",
	"violates foreign key constraint",
}

// IsIntegrityViolation reports whether err is a store-enforced constraint
// violation (uniqueness, foreign key, non-null). These surface at write
// time and are not recovered here; the caller rolls back its unit of work.
func IsIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	for _, marker := range integrityMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
