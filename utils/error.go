package utils

import (
	"errors"

	"gorm.io/gorm"
)

// Error taxonomy surfaced by the stores. Handlers translate these to
// HTTP statuses; everything else is treated as an internal error.
var (
	ErrorRecordNotFound   = errors.New("record not found")
	ErrorInvalidInput     = errors.New("invalid input")
	ErrorDuplicateRecord  = errors.New("duplicate record")
	ErrorStoreUnavailable = errors.New("store unavailable")
)

// TranslateStoreError maps gorm's translated driver errors onto the
// taxonomy so callers only ever check sentinel errors.
func TranslateStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrorRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrorDuplicateRecord
	case errors.Is(err, gorm.ErrInvalidTransaction):
		return ErrorStoreUnavailable
	default:
		return err
	}
}
