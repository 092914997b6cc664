package repository

import (
	"errors"

	"github.com/coreledger/banking/pkg/domain"
	"gorm.io/gorm"
)

// mapGormError converts GORM errors to domain errors so database concerns
// stay inside the infrastructure layer. Record-not-found and duplicate-key
// map to the supplied sentinels; anything else is a storage failure the
// caller may retry.
func mapGormError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	}
	return domain.WrapStorage(err)
}
