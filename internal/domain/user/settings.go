package user

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"finance-tracker-go/internal/domain/validation"
)

const (
	SettingCurrency         = "currency"
	SettingCurrencyCode     = "currency_code"
	SettingAllowFutureDates = "allow_future_dates"

	DefaultCurrency     = "৳"
	DefaultCurrencyCode = "BDT"

	maxCurrencyLength     = 10
	maxCurrencyCodeLength = 3
)

type Settings struct {
	Currency         string
	CurrencyCode     string
	AllowFutureDates bool
	// Extra keeps stored keys this service does not interpret.
	Extra map[string]any
}

type Currency struct {
	Symbol string `json:"symbol"`
	Code   string `json:"code"`
	Name   string `json:"name"`
}

var AvailableCurrencies = []Currency{
	{Symbol: "৳", Code: "BDT", Name: "Bangladeshi Taka"},
	{Symbol: "$", Code: "USD", Name: "US Dollar"},
	{Symbol: "€", Code: "EUR", Name: "Euro"},
	{Symbol: "£", Code: "GBP", Name: "British Pound"},
	{Symbol: "₹", Code: "INR", Name: "Indian Rupee"},
	{Symbol: "¥", Code: "JPY", Name: "Japanese Yen"},
	{Symbol: "¥", Code: "CNY", Name: "Chinese Yuan"},
	{Symbol: "A$", Code: "AUD", Name: "Australian Dollar"},
	{Symbol: "C$", Code: "CAD", Name: "Canadian Dollar"},
}

func DefaultSettings() Settings {
	return Settings{
		Currency:     DefaultCurrency,
		CurrencyCode: DefaultCurrencyCode,
	}
}

// ResolveSettings overlays the stored object on the defaults. Known keys with
// an unexpected JSON type keep their default value.
func ResolveSettings(stored map[string]any) Settings {
	settings := DefaultSettings()

	for key, value := range stored {
		switch key {
		case SettingCurrency:
			if text, ok := value.(string); ok {
				settings.Currency = text
			}
		case SettingCurrencyCode:
			if text, ok := value.(string); ok {
				settings.CurrencyCode = text
			}
		case SettingAllowFutureDates:
			if flag, ok := value.(bool); ok {
				settings.AllowFutureDates = flag
			}
		default:
			if settings.Extra == nil {
				settings.Extra = make(map[string]any)
			}
			settings.Extra[key] = value
		}
	}

	return settings
}

// Map flattens the settings back into the object shape that is stored and
// served.
func (s Settings) Map() map[string]any {
	result := make(map[string]any, len(s.Extra)+3)
	for key, value := range s.Extra {
		result[key] = value
	}
	result[SettingCurrency] = s.Currency
	result[SettingCurrencyCode] = s.CurrencyCode
	result[SettingAllowFutureDates] = s.AllowFutureDates
	return result
}

// DecodeSettings parses the stored column. Empty or non-object values decode
// to an empty map.
func DecodeSettings(raw string) map[string]any {
	stored := make(map[string]any)
	if strings.TrimSpace(raw) == "" {
		return stored
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return make(map[string]any)
	}
	return stored
}

func encodeSettings(values map[string]any) (string, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return string(data), nil
}

type UpdateSettingsInput struct {
	Currency         string
	CurrencyCode     string
	AllowFutureDates *bool
}

func (in UpdateSettingsInput) validate() error {
	verr := &validation.Error{}

	currency := strings.TrimSpace(in.Currency)
	switch {
	case currency == "":
		verr.Add(SettingCurrency, "The currency field is required.")
	case utf8.RuneCountInString(currency) > maxCurrencyLength:
		verr.Add(SettingCurrency, fmt.Sprintf("The currency may not be greater than %d characters.", maxCurrencyLength))
	}

	code := strings.TrimSpace(in.CurrencyCode)
	switch {
	case code == "":
		verr.Add(SettingCurrencyCode, "The currency code field is required.")
	case utf8.RuneCountInString(code) > maxCurrencyCodeLength:
		verr.Add(SettingCurrencyCode, fmt.Sprintf("The currency code may not be greater than %d characters.", maxCurrencyCodeLength))
	}

	if in.AllowFutureDates == nil {
		verr.Add(SettingAllowFutureDates, "The allow future dates field is required.")
	}

	return verr.OrNil()
}
