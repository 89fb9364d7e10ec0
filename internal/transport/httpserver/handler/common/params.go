package common

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finance-tracker-go/internal/domain/calendar"
	"finance-tracker-go/internal/domain/validation"
	"finance-tracker-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100

	// MaxPage keeps Offset well inside the int range.
	MaxPage = math.MaxInt32 / MaxPerPage
)

func ParseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := calendar.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// ParseBodyDate parses a date taken from a request body. Empty input yields
// the zero time and lets the service report the missing field.
func ParseBodyDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := calendar.ParseDate(value)
	if err != nil {
		return time.Time{}, validation.New(field, fmt.Sprintf("The %s is not a valid date.", field))
	}
	return parsed, nil
}

func ParseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

// Page is a resolved page/per_page pair.
type Page struct {
	Number  int
	PerPage int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) LastPage(total int64) int {
	if total == 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(p.PerPage)))
}

type PageResponse struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PerPage  int         `json:"per_page"`
	LastPage int         `json:"last_page"`
}

func (p Page) Response(items interface{}, total int64) PageResponse {
	return PageResponse{
		Items:    items,
		Total:    total,
		Page:     p.Number,
		PerPage:  p.PerPage,
		LastPage: p.LastPage(total),
	}
}

// ParsePage reads page and per_page. Zero values fall back to the first page
// and DefaultPerPage; per_page is capped at MaxPerPage. Pages past MaxPage
// are rejected.
func ParsePage(r *http.Request) (Page, error) {
	query := r.URL.Query()
	number, err := ParseIntParam(query.Get("page"), 1)
	if err != nil || number > MaxPage {
		return Page{}, fmt.Errorf("invalid page")
	}
	perPage, err := ParseIntParam(query.Get("per_page"), DefaultPerPage)
	if err != nil {
		return Page{}, fmt.Errorf("invalid per_page")
	}
	if number == 0 {
		number = 1
	}
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Number: number, PerPage: perPage}, nil
}

// PathID returns the {id} URL parameter when it is a well formed UUID. Any
// other value cannot name a stored row.
func PathID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" || uuid.Validate(id) != nil {
		return "", false
	}
	return id, true
}

// RequireUser writes 401 and reports false when the request has no
// authenticated user.
func RequireUser(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return middleware.User{}, false
	}
	return user, true
}

func FormatDate(t time.Time) string {
	return calendar.FormatDate(t)
}

// RoundPercentage keeps one decimal place.
func RoundPercentage(value float64) float64 {
	return math.Round(value*10) / 10
}
