package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"budgethub/internal/models"
)

type moneyInput struct {
	Amount *decimal.Decimal `validate:"required,gt=0"`
	Goal   *decimal.Decimal `validate:"required,gte=0"`
}

type styleInput struct {
	Name     string               `validate:"required,notblank"`
	Color    string               `validate:"omitempty,hex_color"`
	Source   models.SavingsSource `validate:"omitempty,savings_source"`
	Priority models.Priority      `validate:"omitempty,savings_priority"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	RegisterOn(v)
	return v
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestDecimalTags(t *testing.T) {
	v := newValidate()

	assert.NoError(t, v.Struct(moneyInput{Amount: decPtr("0.01"), Goal: decPtr("0")}))
	assert.Error(t, v.Struct(moneyInput{Amount: decPtr("0"), Goal: decPtr("0")}))
	assert.Error(t, v.Struct(moneyInput{Amount: decPtr("-3"), Goal: decPtr("1")}))
	assert.Error(t, v.Struct(moneyInput{Amount: decPtr("5"), Goal: decPtr("-1")}))
	assert.Error(t, v.Struct(moneyInput{Goal: decPtr("1")}), "missing amount")
}

func TestCustomTags(t *testing.T) {
	v := newValidate()

	valid := []styleInput{
		{Name: "Trip"},
		{Name: "Trip", Color: "#6366f1"},
		{Name: "Trip", Color: "#FFF"},
		{Name: "Trip", Source: models.SavingsSourceAutoSave},
		{Name: "Trip", Priority: models.PriorityLow},
	}
	for _, in := range valid {
		assert.NoError(t, v.Struct(in), "%+v", in)
	}

	invalid := []styleInput{
		{Name: "   "},
		{Name: "Trip", Color: "blue"},
		{Name: "Trip", Color: "#12345"},
		{Name: "Trip", Source: "payroll"},
		{Name: "Trip", Priority: 4},
	}
	for _, in := range invalid {
		assert.Error(t, v.Struct(in), "%+v", in)
	}
}
