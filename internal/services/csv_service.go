package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"gorm.io/gorm"

	apperrors "stashup/internal/errors"
	"stashup/internal/models"
)

// csvDateLayout is the bit-exact date format of the CSV contract.
const csvDateLayout = "2006-01-02"

// csvHeader is the fixed column order of the CSV contract.
var csvHeader = []string{"type", "description", "amount", "category", "date"}

// csvService implements bulk CSV import/export of transactions.
type csvService struct {
	db *gorm.DB
}

// NewCSVService creates a new CSVServicer.
func NewCSVService(db *gorm.DB) CSVServicer {
	return &csvService{db: db}
}

// Import reads transactions from CSV and inserts them for the user. The
// header row is skipped; every record must have exactly 5 fields with a
// parseable amount and a YYYY-MM-DD date. Any invalid record rejects the
// whole batch: all records are validated before a single row is persisted,
// and the insert itself runs in one DB transaction. Category labels are
// accepted as-is with no cross-check against the category table.
func (s *csvService) Import(userID uint, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Header row
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidImportRow, "empty file: missing header row")
		}
		return 0, apperrors.WithMessage(apperrors.ErrInvalidImportRow, fmt.Sprintf("malformed header row: %v", err))
	}

	var transactions []models.Transaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidImportRow, fmt.Sprintf("malformed row: %v", err))
		}
		if len(record) != 5 {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidImportRow,
				fmt.Sprintf("invalid row format: %v, expected 5 columns", record))
		}

		amount, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidImportRow,
				fmt.Sprintf("invalid amount in row %v: %v", record, err))
		}

		date, err := time.Parse(csvDateLayout, record[4])
		if err != nil {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidImportRow,
				fmt.Sprintf("invalid date in row %v: %v", record, err))
		}

		transactions = append(transactions, models.Transaction{
			UserID:      userID,
			Type:        models.TransactionType(record[0]),
			Description: record[1],
			Amount:      amount,
			Category:    record[3],
			Date:        date,
		})
	}

	if len(transactions) == 0 {
		return 0, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transactions).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(transactions), nil
}

// Export writes all of the user's transactions as CSV: a header row followed
// by one record per transaction, columns in the fixed contract order, dates
// rendered back to YYYY-MM-DD.
func (s *csvService) Export(userID uint, w io.Writer) error {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&transactions).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, t := range transactions {
		record := []string{
			string(t.Type),
			t.Description,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
			t.Category,
			t.Date.Format(csvDateLayout),
		}
		if err := writer.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
