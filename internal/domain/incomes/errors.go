package incomes

import "errors"

var ErrIncomeNotFound = errors.New("income not found")
