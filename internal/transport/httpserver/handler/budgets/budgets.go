package budgets

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	budgetsdomain "finance-tracker-go/internal/domain/budgets"
	expensesdomain "finance-tracker-go/internal/domain/expenses"
	commonhandler "finance-tracker-go/internal/transport/httpserver/handler/common"
	"github.com/shopspring/decimal"
)

type budgetRequest struct {
	CategoryID string          `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Period     string          `json:"period"`
}

type budgetCategoryResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type budgetResponse struct {
	ID             string                  `json:"id"`
	CategoryID     string                  `json:"category_id"`
	Category       *budgetCategoryResponse `json:"category"`
	Amount         decimal.Decimal         `json:"amount"`
	Period         budgetsdomain.Period    `json:"period"`
	Spent          decimal.Decimal         `json:"spent"`
	Remaining      decimal.Decimal         `json:"remaining"`
	PercentageUsed float64                 `json:"percentage_used"`
	IsExceeded     bool                    `json:"is_exceeded"`
	PeriodStart    string                  `json:"period_start"`
	PeriodEnd      string                  `json:"period_end"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

func toBudgetResponse(budget budgetsdomain.BudgetWithStatus, categories map[string]expensesdomain.Category) budgetResponse {
	response := budgetResponse{
		ID:             budget.ID,
		CategoryID:     budget.CategoryID,
		Amount:         budget.Amount,
		Period:         budget.Period,
		Spent:          budget.Status.Spent,
		Remaining:      budget.Status.Remaining,
		PercentageUsed: commonhandler.RoundPercentage(budget.Status.PercentageUsed),
		IsExceeded:     budget.Status.IsExceeded,
		PeriodStart:    commonhandler.FormatDate(budget.Status.PeriodStart),
		PeriodEnd:      commonhandler.FormatDate(budget.Status.PeriodEnd),
		CreatedAt:      budget.CreatedAt,
		UpdatedAt:      budget.UpdatedAt,
	}
	if category, ok := categories[budget.CategoryID]; ok {
		response.Category = &budgetCategoryResponse{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
		}
	}
	return response
}

func (h *Handlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	items, err := h.Budgets.ListBudgets(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("budgets.list: list budgets failed", err, "user_id", user.ID)
		commonhandler.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	categories, err := h.categories(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("budgets.list: load categories failed", err, "user_id", user.ID)
		commonhandler.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]budgetResponse, 0, len(items))
	for _, budget := range items {
		response = append(response, toBudgetResponse(budget, categories))
	}

	commonhandler.WriteJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetBudget(w http.ResponseWriter, r *http.Request) {
	budgetID, ok := commonhandler.PathID(r)
	if !ok {
		commonhandler.WriteError(w, http.StatusNotFound, "budget_not_found", "budget not found")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	budget, err := h.Budgets.GetBudget(r.Context(), user.ID, budgetID)
	if err != nil {
		h.writeBudgetError(w, "budgets.get", err, "user_id", user.ID, "budget_id", budgetID)
		return
	}

	h.writeBudget(w, r, http.StatusOK, user.ID, *budget)
}

func (h *Handlers) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	created, err := h.Budgets.CreateBudget(r.Context(), budgetsdomain.CreateBudgetInput{
		UserID:     user.ID,
		CategoryID: strings.TrimSpace(req.CategoryID),
		Amount:     req.Amount,
		Period:     budgetsdomain.Period(strings.TrimSpace(req.Period)),
	})
	if err != nil {
		h.writeBudgetError(w, "budgets.create", err, "user_id", user.ID)
		return
	}

	h.writeBudget(w, r, http.StatusCreated, user.ID, *created)
}

func (h *Handlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	budgetID, ok := commonhandler.PathID(r)
	if !ok {
		commonhandler.WriteError(w, http.StatusNotFound, "budget_not_found", "budget not found")
		return
	}

	var req budgetRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	updated, err := h.Budgets.UpdateBudget(r.Context(), budgetsdomain.UpdateBudgetInput{
		ID:         budgetID,
		UserID:     user.ID,
		CategoryID: strings.TrimSpace(req.CategoryID),
		Amount:     req.Amount,
		Period:     budgetsdomain.Period(strings.TrimSpace(req.Period)),
	})
	if err != nil {
		h.writeBudgetError(w, "budgets.update", err, "user_id", user.ID, "budget_id", budgetID)
		return
	}

	h.writeBudget(w, r, http.StatusOK, user.ID, *updated)
}

func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	budgetID, ok := commonhandler.PathID(r)
	if !ok {
		commonhandler.WriteError(w, http.StatusNotFound, "budget_not_found", "budget not found")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	if err := h.Budgets.DeleteBudget(r.Context(), user.ID, budgetID); err != nil {
		h.writeBudgetError(w, "budgets.delete", err, "user_id", user.ID, "budget_id", budgetID)
		return
	}

	commonhandler.WriteNoContent(w)
}

func (h *Handlers) writeBudget(w http.ResponseWriter, r *http.Request, status int, userID string, budget budgetsdomain.BudgetWithStatus) {
	categories, err := h.categories(r.Context(), userID)
	if err != nil {
		h.log.InternalError("budgets: load categories failed", err, "user_id", userID, "budget_id", budget.ID)
		commonhandler.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	commonhandler.WriteJSON(w, status, toBudgetResponse(budget, categories))
}

func (h *Handlers) categories(ctx context.Context, userID string) (map[string]expensesdomain.Category, error) {
	if h.Expenses == nil {
		return nil, nil
	}
	return h.Expenses.CategoriesByID(ctx, userID)
}

func (h *Handlers) writeBudgetError(w http.ResponseWriter, action string, err error, args ...any) {
	switch {
	case errors.Is(err, budgetsdomain.ErrBudgetNotFound):
		h.log.BusinessError(action+": budget not found", err, args...)
		commonhandler.WriteError(w, http.StatusNotFound, "budget_not_found", "budget not found")
	case errors.Is(err, budgetsdomain.ErrBudgetExists) && commonhandler.WriteConflict(w, "budget_exists", err):
		h.log.BusinessError(action+": budget already exists", err, args...)
	case commonhandler.WriteValidationError(w, err):
		h.log.BusinessError(action+": validation failed", err, args...)
	default:
		h.log.InternalError(action+": failed", err, args...)
		commonhandler.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
