package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "stashup/internal/errors"
	"stashup/internal/models"
)

// defaultCategories are the system-wide categories seeded on first startup.
var defaultCategories = map[models.CategoryType][]string{
	models.CategoryTypeExpense: {"Dining", "Transport", "Shopping", "Entertainment", "Household", "Medical", models.FallbackCategoryName},
	models.CategoryTypeIncome:  {"Salary", "Bonus", "Investment", "Side Job", models.FallbackCategoryName},
}

// categoryService handles category-related business logic.
type categoryService struct {
	db       *gorm.DB
	retagger Retagger
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, retagger Retagger) CategoryServicer {
	return &categoryService{db: db, retagger: retagger}
}

// ListVisible returns the user's visible category names partitioned by type:
// the union of system-wide categories and the user's own. The two ownership
// scopes are not deduplicated, so a user-owned category shadowing a
// system-wide one appears twice.
func (s *categoryService) ListVisible(userID uint) (map[models.CategoryType][]string, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ? OR user_id IS NULL", userID).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := map[models.CategoryType][]string{
		models.CategoryTypeIncome:  {},
		models.CategoryTypeExpense: {},
	}
	for _, cat := range categories {
		if _, ok := result[cat.Type]; ok {
			result[cat.Type] = append(result[cat.Type], cat.Name)
		}
	}
	return result, nil
}

// CreateCategory creates a new category owned by the user. Uniqueness is
// checked only within the user's own scope; shadowing a system-wide category
// with the same name and type is allowed.
func (s *categoryService) CreateCategory(userID uint, name string, categoryType models.CategoryType) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID: &userID,
		Name:   name,
		Type:   categoryType,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// UpdateCategory renames a category owned by the user. Ownership is checked
// by exact id+owner match, so system-wide and foreign categories yield
// CATEGORY_NOT_FOUND. When the (name, type) label changes, all of the user's
// transactions carrying the old label are retagged to the new one in the
// same DB transaction as the rename.
func (s *categoryService) UpdateCategory(userID, categoryID uint, name string, categoryType models.CategoryType) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Another category of this user must not already occupy the new label.
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND type = ? AND id <> ?", userID, name, categoryType, categoryID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	labelChanged := category.Name != name || category.Type != categoryType

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if labelChanged {
			if err := s.retagger.RetagRename(tx, userID, category.Name, category.Type, name, categoryType); err != nil {
				return err
			}
		}
		if err := tx.Model(&category).Updates(map[string]interface{}{
			"name": name,
			"type": categoryType,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Type = categoryType
	return &category, nil
}

// DeleteCategory removes a category owned by the user, matched by
// (name, type). The user's transactions carrying the label are retagged to
// the fallback category, type unchanged, in the same DB transaction as the
// delete. Returns the deleted category.
func (s *categoryService) DeleteCategory(userID uint, name string, categoryType models.CategoryType) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.retagger.RetagFallback(tx, userID, name, categoryType, models.FallbackCategoryName); err != nil {
			return err
		}
		if err := tx.Delete(&category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// SeedDefaults inserts the system-wide default categories if the categories
// table is completely empty, across all owners. The count check is only a
// fast path: if two instances race past it, the (user_id, name, type) unique
// index rejects the duplicate seed on commit.
func (s *categoryService) SeedDefaults() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil
		}

		for categoryType, names := range defaultCategories {
			for _, name := range names {
				category := &models.Category{Name: name, Type: categoryType}
				if err := tx.Create(category).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
		}
		return nil
	})
}
