package models

import (
	"github.com/shopspring/decimal"
)

// scale is the number of decimal places the database stores for amounts.
const scale = 8

// nullSum converts the result of an SQL SUM to a decimal.
//
// SUM over no rows is NULL, which is zero here. Some databases
// aggregate decimals as floating point numbers, the result is rounded
// to the stored scale to remove representation artifacts.
func nullSum(sum decimal.NullDecimal) decimal.Decimal {
	if !sum.Valid {
		return decimal.Zero
	}

	return sum.Decimal.Round(scale)
}
