package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createRequest struct {
	SKU      string  `validate:"required"`
	Price    float64 `validate:"gte=0"`
	Velocity string  `validate:"omitempty,oneof=slow medium fast"`
}

func TestValidate_Success(t *testing.T) {
	err := Validate(createRequest{SKU: "RLX-001", Price: 9500, Velocity: "fast"})
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(createRequest{Price: 10})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields(), "SKU")
	assert.Equal(t, "is required", valErr.Fields()["SKU"])
}

func TestValidate_NegativePrice(t *testing.T) {
	err := Validate(createRequest{SKU: "RLX-001", Price: -1})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Error(), "Price")
}

func TestValidate_InvalidEnum(t *testing.T) {
	err := Validate(createRequest{SKU: "RLX-001", Price: 1, Velocity: "warp"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields()["Velocity"], "must be one of")
}
