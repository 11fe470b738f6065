package validator

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	amountRegex = `^\d{1,18}(\.\d{1,2})?$`
)

const (
	AmountTag = "amount"
)

var amountPattern = regexp.MustCompile(amountRegex)

var valid = map[string]func(fl validator.FieldLevel) bool{
	AmountTag: ValidateAmount,
}

// ValidateAmount accepts positive point amounts with at most two decimal
// places. Decimal fields reach it as strings, see decimalValue.
func ValidateAmount(fl validator.FieldLevel) bool {
	amount := fl.Field().String()
	if !amountPattern.MatchString(amount) {
		return false
	}

	d, err := decimal.NewFromString(amount)
	return err == nil && d.IsPositive()
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}
