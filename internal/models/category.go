package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// FallbackCategoryName is the catch-all label transactions are moved to
// when their category is deleted.
const FallbackCategoryName = "Other"

// Category represents a named income/expense bucket. A NULL UserID marks a
// system-wide category visible to every user. The (user_id, name, type)
// tuple is unique per owner scope, so a user-owned category may shadow a
// system-wide one with the same name and type.
type Category struct {
	Base
	UserID *uint        `gorm:"uniqueIndex:idx_categories_owner_name_type" json:"user_id,omitempty"`
	Name   string       `gorm:"not null;uniqueIndex:idx_categories_owner_name_type" json:"name"`
	Type   CategoryType `gorm:"not null;uniqueIndex:idx_categories_owner_name_type" json:"type"`
}

// IsSystemWide reports whether the category has no specific owner.
func (c *Category) IsSystemWide() bool {
	return c.UserID == nil
}
