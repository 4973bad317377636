package money

import (
	"database/sql"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// thousands: запятые допустимы только как разделители разрядов (20,000.50).
var thousands = regexp.MustCompile(`^-?\d{1,3}(,\d{3})*(\.\d+)?$`)

// Places задаёт число знаков после запятой на выходе из агрегатов.
const Places = 2

// Parse разбирает денежное значение из хранилища. Пустая строка или мусор дают ноль:
// одна битая строка должна уменьшить итог, а не уронить весь расчёт.
func Parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	if strings.Contains(s, ",") {
		// "12,50" или "1,2,3" не угадываем, считаем мусором
		if !thousands.MatchString(s) {
			return decimal.Zero
		}
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return d
}

// FromNull работает как Parse, NULL из базы даёт ноль.
func FromNull(ns sql.NullString) decimal.Decimal {
	if !ns.Valid {
		return decimal.Zero
	}
	return Parse(ns.String)
}

// NonNegative обрезает отрицательные суммы до нуля.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}
