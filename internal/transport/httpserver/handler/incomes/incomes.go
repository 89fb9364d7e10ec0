package incomes

import (
	"errors"
	"net/http"
	"time"

	incomesdomain "finance-tracker-go/internal/domain/incomes"
	commonhandler "finance-tracker-go/internal/transport/httpserver/handler/common"
	"github.com/shopspring/decimal"
)

type incomeRequest struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Source      *string         `json:"source"`
	Description *string         `json:"description"`
}

type incomeResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Source      *string         `json:"source"`
	Description *string         `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toIncomeResponse(income incomesdomain.Income) incomeResponse {
	return incomeResponse{
		ID:          income.ID,
		Date:        commonhandler.FormatDate(income.Date),
		Amount:      income.Amount,
		Source:      income.Source,
		Description: income.Description,
		CreatedAt:   income.CreatedAt,
		UpdatedAt:   income.UpdatedAt,
	}
}

func (h *Handlers) ListIncomes(w http.ResponseWriter, r *http.Request) {
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
	page, err := commonhandler.ParsePage(r)
	if err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	items, total, err := h.Incomes.ListIncomes(r.Context(), user.ID, incomesdomain.ListFilter{
		From:   from,
		To:     to,
		Limit:  page.PerPage,
		Offset: page.Offset(),
	})
	if err != nil {
		h.log.InternalError("incomes.list: list incomes failed", err, "user_id", user.ID)
		commonhandler.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]incomeResponse, 0, len(items))
	for _, income := range items {
		response = append(response, toIncomeResponse(income))
	}

	commonhandler.WriteJSON(w, http.StatusOK, page.Response(response, total))
}

func (h *Handlers) GetIncome(w http.ResponseWriter, r *http.Request) {
	incomeID, ok := commonhandler.PathID(r)
	if !ok {
		commonhandler.WriteError(w, http.StatusNotFound, "income_not_found", "income not found")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	income, err := h.Incomes.GetIncome(r.Context(), user.ID, incomeID)
	if err != nil {
		h.writeIncomeError(w, "incomes.get", err, "user_id", user.ID, "income_id", incomeID)
		return
	}

	commonhandler.WriteJSON(w, http.StatusOK, toIncomeResponse(*income))
}

func (h *Handlers) CreateIncome(w http.ResponseWriter, r *http.Request) {
	input, user, ok := h.decodeIncome(w, r)
	if !ok {
		return
	}

	created, err := h.Incomes.CreateIncome(r.Context(), input)
	if err != nil {
		h.writeIncomeError(w, "incomes.create", err, "user_id", user)
		return
	}

	commonhandler.WriteJSON(w, http.StatusCreated, toIncomeResponse(*created))
}

func (h *Handlers) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	incomeID, ok := commonhandler.PathID(r)
	if !ok {
		commonhandler.WriteError(w, http.StatusNotFound, "income_not_found", "income not found")
		return
	}

	input, user, ok := h.decodeIncome(w, r)
	if !ok {
		return
	}

	updated, err := h.Incomes.UpdateIncome(r.Context(), incomeID, input)
	if err != nil {
		h.writeIncomeError(w, "incomes.update", err, "user_id", user, "income_id", incomeID)
		return
	}

	commonhandler.WriteJSON(w, http.StatusOK, toIncomeResponse(*updated))
}

func (h *Handlers) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	incomeID, ok := commonhandler.PathID(r)
	if !ok {
		commonhandler.WriteError(w, http.StatusNotFound, "income_not_found", "income not found")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	if err := h.Incomes.DeleteIncome(r.Context(), user.ID, incomeID); err != nil {
		h.writeIncomeError(w, "incomes.delete", err, "user_id", user.ID, "income_id", incomeID)
		return
	}

	commonhandler.WriteNoContent(w)
}

func (h *Handlers) PurgeIncome(w http.ResponseWriter, r *http.Request) {
	incomeID, ok := commonhandler.PathID(r)
	if !ok {
		commonhandler.WriteError(w, http.StatusNotFound, "income_not_found", "income not found")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	if err := h.Incomes.PurgeIncome(r.Context(), user.ID, incomeID); err != nil {
		h.writeIncomeError(w, "incomes.purge", err, "user_id", user.ID, "income_id", incomeID)
		return
	}

	commonhandler.WriteNoContent(w)
}

func (h *Handlers) decodeIncome(w http.ResponseWriter, r *http.Request) (incomesdomain.IncomeInput, string, bool) {
	var req incomeRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return incomesdomain.IncomeInput{}, "", false
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return incomesdomain.IncomeInput{}, "", false
	}

	date, err := commonhandler.ParseBodyDate("date", req.Date)
	if err != nil {
		commonhandler.WriteValidationError(w, err)
		return incomesdomain.IncomeInput{}, "", false
	}

	return incomesdomain.IncomeInput{
		UserID:      user.ID,
		Date:        date,
		Amount:      req.Amount,
		Source:      req.Source,
		Description: req.Description,
	}, user.ID, true
}

func (h *Handlers) writeIncomeError(w http.ResponseWriter, action string, err error, args ...any) {
	switch {
	case errors.Is(err, incomesdomain.ErrIncomeNotFound):
		h.log.BusinessError(action+": income not found", err, args...)
		commonhandler.WriteError(w, http.StatusNotFound, "income_not_found", "income not found")
	case commonhandler.WriteValidationError(w, err):
		h.log.BusinessError(action+": validation failed", err, args...)
	default:
		h.log.InternalError(action+": failed", err, args...)
		commonhandler.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
