package expenses

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	expensesdomain "finance-tracker-go/internal/domain/expenses"
	commonhandler "finance-tracker-go/internal/transport/httpserver/handler/common"
)

type createCategoryRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type updateCategoryRequest struct {
	Name  string                 `json:"name"`
	Color optionalNullableString `json:"color"`
}

type optionalNullableString struct {
	Set   bool
	Value *string
}

func (o *optionalNullableString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	o.Value = &value
	return nil
}

type categoryResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Color         *string   `json:"color"`
	IsDefault     bool      `json:"is_default"`
	ExpensesCount *int64    `json:"expenses_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toCategoryResponse(category expensesdomain.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		IsDefault: category.IsDefault,
		CreatedAt: category.CreatedAt,
	}
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	categories, err := h.Expenses.ListCategories(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("categories.list: list categories failed", err, "user_id", user.ID)
		internalError(w)
		return
	}

	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		item := toCategoryResponse(category.Category)
		count := category.ExpensesCount
		item.ExpensesCount = &count
		response = append(response, item)
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	created, err := h.Expenses.CreateCategory(r.Context(), expensesdomain.CreateCategoryInput{
		UserID: user.ID,
		Name:   req.Name,
		Color:  req.Color,
	})
	if err != nil {
		h.writeCategoryError(w, "categories.create", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(*created))
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := commonhandler.PathID(r)
	if !ok {
		notFound(w, "category_not_found", "category not found")
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	updated, err := h.Expenses.UpdateCategory(r.Context(), expensesdomain.UpdateCategoryInput{
		UserID:     user.ID,
		CategoryID: categoryID,
		Name:       req.Name,
		Color: expensesdomain.OptionalNullableString{
			Set:   req.Color.Set,
			Value: req.Color.Value,
		},
	})
	if err != nil {
		h.writeCategoryError(w, "categories.update", err, "user_id", user.ID, "category_id", categoryID)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(*updated))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := commonhandler.PathID(r)
	if !ok {
		notFound(w, "category_not_found", "category not found")
		return
	}

	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	if err := h.Expenses.DeleteCategory(r.Context(), user.ID, categoryID); err != nil {
		h.writeCategoryError(w, "categories.delete", err, "user_id", user.ID, "category_id", categoryID)
		return
	}

	commonhandler.WriteNoContent(w)
}

func (h *Handlers) writeCategoryError(w http.ResponseWriter, action string, err error, args ...any) {
	switch {
	case errors.Is(err, expensesdomain.ErrCategoryNotFound):
		h.log.BusinessError(action+": category not found", err, args...)
		notFound(w, "category_not_found", "category not found")
	case errors.Is(err, expensesdomain.ErrCategoryInUse):
		h.log.BusinessError(action+": category is in use", err, args...)
		writeError(w, http.StatusConflict, "category_in_use", "Cannot delete category with existing expenses.")
	case errors.Is(err, expensesdomain.ErrCategoryNameTaken) && commonhandler.WriteConflict(w, "category_name_taken", err):
		h.log.BusinessError(action+": category name already exists", err, args...)
	case commonhandler.WriteValidationError(w, err):
		h.log.BusinessError(action+": validation failed", err, args...)
	default:
		h.log.InternalError(action+": failed", err, args...)
		internalError(w)
	}
}
