package dashboard

import (
	"net/http"

	dashboarddomain "finance-tracker-go/internal/domain/dashboard"
	commonhandler "finance-tracker-go/internal/transport/httpserver/handler/common"
	"github.com/shopspring/decimal"
)

type summaryResponse struct {
	StartDate          string                  `json:"start_date"`
	EndDate            string                  `json:"end_date"`
	TotalExpenses      decimal.Decimal         `json:"total_expenses"`
	TotalIncome        decimal.Decimal         `json:"total_income"`
	Balance            decimal.Decimal         `json:"balance"`
	ExpensesByCategory []categoryTotalResponse `json:"expenses_by_category"`
	BudgetStatus       []budgetLineResponse    `json:"budget_status"`
	ExceededBudgets    []budgetLineResponse    `json:"exceeded_budgets"`
	RecentExpenses     []recentExpenseResponse `json:"recent_expenses"`
	RecentIncomes      []recentIncomeResponse  `json:"recent_incomes"`
}

type categoryTotalResponse struct {
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryColor string          `json:"category_color"`
	Total         decimal.Decimal `json:"total"`
}

type budgetLineResponse struct {
	ID             string          `json:"id"`
	CategoryID     string          `json:"category_id"`
	CategoryName   string          `json:"category_name"`
	CategoryColor  string          `json:"category_color"`
	Period         string          `json:"period"`
	Amount         decimal.Decimal `json:"amount"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed float64         `json:"percentage_used"`
	IsExceeded     bool            `json:"is_exceeded"`
	PeriodStart    string          `json:"period_start"`
	PeriodEnd      string          `json:"period_end"`
}

type recentExpenseResponse struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryColor string          `json:"category_color"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Description   *string         `json:"description"`
}

type recentIncomeResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Source      *string         `json:"source"`
	Description *string         `json:"description"`
}

func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, err := commonhandler.ParseDateParam(query.Get("start_date"))
	if err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	to, err := commonhandler.ParseDateParam(query.Get("end_date"))
	if err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	summary, err := h.Dashboard.BuildSummary(r.Context(), user.ID, from, to)
	if err != nil {
		h.log.InternalError("dashboard.summary: build summary failed", err, "user_id", user.ID)
		commonhandler.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	commonhandler.WriteJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func toSummaryResponse(summary dashboarddomain.Summary) summaryResponse {
	response := summaryResponse{
		StartDate:          commonhandler.FormatDate(summary.From),
		EndDate:            commonhandler.FormatDate(summary.To),
		TotalExpenses:      summary.TotalExpenses,
		TotalIncome:        summary.TotalIncome,
		Balance:            summary.Balance,
		ExpensesByCategory: make([]categoryTotalResponse, 0, len(summary.ExpensesByCategory)),
		BudgetStatus:       toBudgetLines(summary.BudgetStatus),
		ExceededBudgets:    toBudgetLines(summary.ExceededBudgets),
		RecentExpenses:     make([]recentExpenseResponse, 0, len(summary.RecentExpenses)),
		RecentIncomes:      make([]recentIncomeResponse, 0, len(summary.RecentIncomes)),
	}

	for _, item := range summary.ExpensesByCategory {
		response.ExpensesByCategory = append(response.ExpensesByCategory, categoryTotalResponse{
			CategoryID:    item.CategoryID,
			CategoryName:  item.CategoryName,
			CategoryColor: item.CategoryColor,
			Total:         item.Total,
		})
	}

	for _, expense := range summary.RecentExpenses {
		response.RecentExpenses = append(response.RecentExpenses, recentExpenseResponse{
			ID:            expense.ID,
			CategoryID:    expense.CategoryID,
			CategoryName:  expense.CategoryName,
			CategoryColor: expense.CategoryColor,
			Date:          commonhandler.FormatDate(expense.Date),
			Amount:        expense.Amount,
			Description:   expense.Description,
		})
	}

	for _, income := range summary.RecentIncomes {
		response.RecentIncomes = append(response.RecentIncomes, recentIncomeResponse{
			ID:          income.ID,
			Date:        commonhandler.FormatDate(income.Date),
			Amount:      income.Amount,
			Source:      income.Source,
			Description: income.Description,
		})
	}

	return response
}

func toBudgetLines(lines []dashboarddomain.BudgetLine) []budgetLineResponse {
	result := make([]budgetLineResponse, 0, len(lines))
	for _, line := range lines {
		result = append(result, budgetLineResponse{
			ID:             line.ID,
			CategoryID:     line.CategoryID,
			CategoryName:   line.CategoryName,
			CategoryColor:  line.CategoryColor,
			Period:         string(line.Period),
			Amount:         line.Amount,
			Spent:          line.Status.Spent,
			Remaining:      line.Status.Remaining,
			PercentageUsed: commonhandler.RoundPercentage(line.Status.PercentageUsed),
			IsExceeded:     line.Status.IsExceeded,
			PeriodStart:    commonhandler.FormatDate(line.Status.PeriodStart),
			PeriodEnd:      commonhandler.FormatDate(line.Status.PeriodEnd),
		})
	}
	return result
}
