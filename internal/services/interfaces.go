package services

import (
	"io"
	"time"

	"gorm.io/gorm"

	"stashup/internal/models"
	"stashup/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	DeleteUser(userID uint) error
}

// CategoryServicer defines the contract for category-related business logic.
// Mutations that change a category's (name, type) label cascade onto the
// owner's transactions through the Retagger within the same DB transaction.
type CategoryServicer interface {
	ListVisible(userID uint) (map[models.CategoryType][]string, error)
	CreateCategory(userID uint, name string, categoryType models.CategoryType) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name string, categoryType models.CategoryType) (*models.Category, error)
	DeleteCategory(userID uint, name string, categoryType models.CategoryType) (*models.Category, error)
	SeedDefaults() error
}

// Retagger defines the bulk label-update cascade applied to transactions when
// a category is renamed or deleted. Both operations run on the caller's
// transaction handle so the cascade and the category mutation commit or roll
// back as one unit.
type Retagger interface {
	RetagRename(tx *gorm.DB, userID uint, oldName string, oldType models.CategoryType, newName string, newType models.CategoryType) error
	RetagFallback(tx *gorm.DB, userID uint, name string, categoryType models.CategoryType, fallbackName string) error
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(userID uint, window pagination.Window, search string) ([]models.Transaction, error)
	CreateTransaction(userID uint, txType models.TransactionType, description string, amount float64, category string, date time.Time) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, txType models.TransactionType, description string, amount float64, category string, date time.Time) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) (*models.Transaction, error)
}

// CSVServicer defines the contract for bulk CSV import/export of transactions.
type CSVServicer interface {
	Import(userID uint, r io.Reader) (int, error)
	Export(userID uint, w io.Writer) error
}
