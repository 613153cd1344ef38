package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusmosca/store-backend/internal/apperr"
)

type couponInput struct {
	Name       string `validate:"required,max=30,alnumspace"`
	Porcentaje int    `validate:"min=1,max=100"`
}

var couponMessages = Messages{
	"Name.required":   "coupon name is required",
	"Name.alnumspace": "coupon name must contain only letters, digits and spaces",
	"Porcentaje.max":  "the maximum discount is 100",
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(couponInput{Name: "SUMMER 10", Porcentaje: 10}, couponMessages)

	assert.NoError(t, err)
}

func TestStruct_CollectsEveryViolatedRule(t *testing.T) {
	// Act
	err := Struct(couponInput{Name: "sale-10!", Porcentaje: 150}, couponMessages)

	// Assert
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.ElementsMatch(t, []string{
		"coupon name must contain only letters, digits and spaces",
		"the maximum discount is 100",
	}, apperr.Messages(err))
}

func TestStruct_FallbackMessage(t *testing.T) {
	err := Struct(couponInput{Name: "OK", Porcentaje: 0}, couponMessages)

	require.Error(t, err)
	assert.Equal(t, []string{"Porcentaje is invalid"}, apperr.Messages(err))
}

type lineInput struct {
	Quantity int              `validate:"gt=0"`
	Price    *decimal.Decimal `validate:"required,gte=0,money"`
}

func TestStruct_Money(t *testing.T) {
	tests := []struct {
		name  string
		price string
		valid bool
	}{
		{name: "integer", price: "10", valid: true},
		{name: "two places", price: "0.33", valid: true},
		{name: "trailing zeros", price: "12.500", valid: true},
		{name: "three places", price: "0.333", valid: false},
		{name: "many places", price: "19.9999", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := decimal.RequireFromString(tt.price)

			err := Struct(lineInput{Quantity: 3, Price: &price}, Messages{"Price.money": "invalid price"})

			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, []string{"invalid price"}, apperr.Messages(err))
		})
	}
}
