package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "stashup/internal/errors"
	"stashup/internal/models"
	"stashup/internal/pagination"
	"stashup/internal/services"
)

// dateLayout is the wire format for transaction dates.
const dateLayout = "2006-01-02"

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	csvService         services.CSVServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer, csvService services.CSVServicer) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		csvService:         csvService,
	}
}

// TransactionRequest represents the payload for creating or replacing a
// transaction. The category is a free-text label and is not checked against
// the category table.
type TransactionRequest struct {
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Description string                 `json:"description"`
	Amount      float64                `json:"amount"`
	Category    string                 `json:"category"`
	Date        string                 `json:"date" binding:"required,datetime=2006-01-02"`
}

// ListTransactionsQuery represents the query parameters for listing transactions.
type ListTransactionsQuery struct {
	pagination.Window
	Query string `form:"query"`
}

// TransactionResponse represents a transaction in the response
type TransactionResponse struct {
	ID          uint                   `json:"id"`
	Type        models.TransactionType `json:"type"`
	Description string                 `json:"description"`
	Amount      float64                `json:"amount"`
	Category    string                 `json:"category"`
	Date        string                 `json:"date"`
}

func toTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Description: t.Description,
		Amount:      t.Amount,
		Category:    t.Category,
		Date:        t.Date.Format(dateLayout),
	}
}

// ListTransactions handles the retrieval of the user's transactions
// @Summary     List transactions
// @Description Get the user's transactions with optional substring search and skip/limit paging
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       skip query int false "Number of transactions to skip"
// @Param       limit query int false "Maximum number of transactions to return (default 100)"
// @Param       query query string false "Substring to match against description or category"
// @Success     200 {array} TransactionResponse "List of transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactions, err := h.transactionService.ListTransactions(userID, query.Window, query.Query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		response = append(response, toTransactionResponse(&transactions[i]))
	}
	c.JSON(http.StatusOK, response)
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a new transaction for the authenticated user
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, _ := time.Parse(dateLayout, req.Date)
	transaction, err := h.transactionService.CreateTransaction(userID, req.Type, req.Description, req.Amount, req.Category, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// UpdateTransaction handles a full-record replace of a transaction
// @Summary     Update transaction
// @Description Replace all fields of an existing transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Param       request body TransactionRequest true "Updated transaction details"
// @Success     200 {object} TransactionResponse "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, _ := time.Parse(dateLayout, req.Date)
	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, req.Type, req.Description, req.Amount, req.Category, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete transaction
// @Description Delete a transaction by ID and return the deleted snapshot
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} TransactionResponse "Deleted transaction"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.DeleteTransaction(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// ImportTransactions handles bulk CSV import
// @Summary     Import transactions
// @Description Import transactions from an uploaded CSV file; the whole batch is rejected if any row is invalid
// @Tags        transactions
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "CSV file (type,description,amount,category,date)"
// @Success     200 {object} MessageResponse "Import summary"
// @Failure     400 {object} ErrorResponse "Invalid file or row"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/import [post]
func (h *TransactionHandler) ImportTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	count, err := h.csvService.Import(userID, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully imported transactions.",
		"count":   count,
	})
}

// ExportTransactions handles bulk CSV export
// @Summary     Export transactions
// @Description Export all of the user's transactions as a CSV attachment
// @Tags        transactions
// @Accept      json
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {string} string "CSV content"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Render to a buffer first so errors still produce a JSON response.
	var buf bytes.Buffer
	if err := h.csvService.Export(userID, &buf); err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=transactions.csv`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
