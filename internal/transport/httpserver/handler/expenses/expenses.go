package expenses

import (
	"errors"
	"net/http"
	"strings"
	"time"

	expensesdomain "finance-tracker-go/internal/domain/expenses"
	commonhandler "finance-tracker-go/internal/transport/httpserver/handler/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type expenseRequest struct {
	CategoryID  string          `json:"category_id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description"`
}

type expenseCategoryResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type expenseResponse struct {
	ID          string                   `json:"id"`
	CategoryID  string                   `json:"category_id"`
	Date        string                   `json:"date"`
	Amount      decimal.Decimal          `json:"amount"`
	Description *string                  `json:"description"`
	Category    *expenseCategoryResponse `json:"category"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func toExpenseResponse(expense expensesdomain.ExpenseWithCategory) expenseResponse {
	response := expenseResponse{
		ID:          expense.ID,
		CategoryID:  expense.CategoryID,
		Date:        commonhandler.FormatDate(expense.Date),
		Amount:      expense.Amount,
		Description: expense.Description,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
	if expense.Category != nil {
		response.Category = &expenseCategoryResponse{
			ID:    expense.Category.ID,
			Name:  expense.Category.Name,
			Color: expense.Category.Color,
		}
	}
	return response
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, err := commonhandler.ParseDateParam(query.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	to, err := commonhandler.ParseDateParam(query.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}
	page, err := commonhandler.ParsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	categoryID := strings.TrimSpace(query.Get("category_id"))
	if categoryID != "" && uuid.Validate(categoryID) != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid category_id")
		return
	}

	filter := expensesdomain.ListFilter{
		From:       from,
		To:         to,
		CategoryID: categoryID,
		Limit:      page.PerPage,
		Offset:     page.Offset(),
	}

	items, total, err := h.Expenses.ListExpenses(r.Context(), user.ID, filter)
	if err != nil {
		h.log.InternalError("expenses.list: list expenses failed", err, "user_id", user.ID)
		internalError(w)
		return
	}

	response := make([]expenseResponse, 0, len(items))
	for _, expense := range items {
		response = append(response, toExpenseResponse(expense))
	}

	writeJSON(w, http.StatusOK, page.Response(response, total))
}

func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, ok := commonhandler.PathID(r)
	if !ok {
		notFound(w, "expense_not_found", "expense not found")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	expense, err := h.Expenses.GetExpense(r.Context(), user.ID, expenseID)
	if err != nil {
		h.writeExpenseError(w, "expenses.get", err, "user_id", user.ID, "expense_id", expenseID)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(*expense))
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	date, err := commonhandler.ParseBodyDate("date", req.Date)
	if err != nil {
		commonhandler.WriteValidationError(w, err)
		return
	}

	created, err := h.Expenses.CreateExpense(r.Context(), expensesdomain.CreateExpenseInput{
		UserID:      user.ID,
		CategoryID:  strings.TrimSpace(req.CategoryID),
		Date:        date,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		h.writeExpenseError(w, "expenses.create", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(*created))
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, ok := commonhandler.PathID(r)
	if !ok {
		notFound(w, "expense_not_found", "expense not found")
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	date, err := commonhandler.ParseBodyDate("date", req.Date)
	if err != nil {
		commonhandler.WriteValidationError(w, err)
		return
	}

	updated, err := h.Expenses.UpdateExpense(r.Context(), expensesdomain.UpdateExpenseInput{
		ID:          expenseID,
		UserID:      user.ID,
		CategoryID:  strings.TrimSpace(req.CategoryID),
		Date:        date,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		h.writeExpenseError(w, "expenses.update", err, "user_id", user.ID, "expense_id", expenseID)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(*updated))
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, ok := commonhandler.PathID(r)
	if !ok {
		notFound(w, "expense_not_found", "expense not found")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	if err := h.Expenses.DeleteExpense(r.Context(), user.ID, expenseID); err != nil {
		h.writeExpenseError(w, "expenses.delete", err, "user_id", user.ID, "expense_id", expenseID)
		return
	}

	commonhandler.WriteNoContent(w)
}

func (h *Handlers) PurgeExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, ok := commonhandler.PathID(r)
	if !ok {
		notFound(w, "expense_not_found", "expense not found")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	if err := h.Expenses.PurgeExpense(r.Context(), user.ID, expenseID); err != nil {
		h.writeExpenseError(w, "expenses.purge", err, "user_id", user.ID, "expense_id", expenseID)
		return
	}

	commonhandler.WriteNoContent(w)
}

func (h *Handlers) writeExpenseError(w http.ResponseWriter, action string, err error, args ...any) {
	switch {
	case errors.Is(err, expensesdomain.ErrExpenseNotFound):
		h.log.BusinessError(action+": expense not found", err, args...)
		notFound(w, "expense_not_found", "expense not found")
	case commonhandler.WriteValidationError(w, err):
		h.log.BusinessError(action+": validation failed", err, args...)
	default:
		h.log.InternalError(action+": failed", err, args...)
		internalError(w)
	}
}
