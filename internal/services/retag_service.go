package services

import (
	"gorm.io/gorm"

	apperrors "stashup/internal/errors"
	"stashup/internal/models"
)

// retagService implements the transaction label cascade. Transactions store a
// denormalized (category, type) pair rather than a foreign key, so a rename
// or delete would silently orphan their labels unless cascaded here. This is
// the single choke point for all category label mutation.
type retagService struct{}

// NewRetagService creates a new Retagger.
func NewRetagService() Retagger {
	return &retagService{}
}

// RetagRename moves every transaction of the user tagged with the old
// (name, type) label to the new one in a single bulk update.
func (s *retagService) RetagRename(tx *gorm.DB, userID uint, oldName string, oldType models.CategoryType, newName string, newType models.CategoryType) error {
	res := tx.Model(&models.Transaction{}).
		Where("user_id = ? AND category = ? AND type = ?", userID, oldName, oldType).
		Updates(map[string]interface{}{
			"category": newName,
			"type":     newType,
		})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	return nil
}

// RetagFallback moves every transaction of the user tagged with the given
// (name, type) label to the fallback category name, keeping the type, in a
// single bulk update.
func (s *retagService) RetagFallback(tx *gorm.DB, userID uint, name string, categoryType models.CategoryType, fallbackName string) error {
	res := tx.Model(&models.Transaction{}).
		Where("user_id = ? AND category = ? AND type = ?", userID, name, categoryType).
		Update("category", fallbackName)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	return nil
}
