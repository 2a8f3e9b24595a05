package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "stashup/internal/errors"
	"stashup/internal/models"
	"stashup/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// ListTransactions retrieves the user's transactions. An optional search term
// matches as a substring against the description or the category label.
// Results are ordered by id so repeated paging calls see a consistent
// snapshot absent concurrent writes.
func (s *transactionService) ListTransactions(userID uint, window pagination.Window, search string) ([]models.Transaction, error) {
	window.Defaults()

	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("description LIKE ? OR category LIKE ?", pattern, pattern)
	}

	var transactions []models.Transaction
	if err := query.Scopes(pagination.Scope(window)).
		Order("id").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// CreateTransaction creates a new transaction for the user. The category is a
// free-text label: it is deliberately not validated against the category
// table, matching the permissive create/import contract.
func (s *transactionService) CreateTransaction(userID uint, txType models.TransactionType, description string, amount float64, category string, date time.Time) (*models.Transaction, error) {
	transaction := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// UpdateTransaction replaces all fields of a transaction owned by the user.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, txType models.TransactionType, description string, amount float64, category string, date time.Time) (*models.Transaction, error) {
	transaction, err := s.getOwnedTransaction(userID, transactionID)
	if err != nil {
		return nil, err
	}

	transaction.Type = txType
	transaction.Description = description
	transaction.Amount = amount
	transaction.Category = category
	transaction.Date = date

	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// DeleteTransaction removes a transaction owned by the user and returns the
// deleted snapshot.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) (*models.Transaction, error) {
	transaction, err := s.getOwnedTransaction(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

func (s *transactionService) getOwnedTransaction(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}
