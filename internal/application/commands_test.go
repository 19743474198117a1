package application

import (
	"testing"

	"github.com/bnema/subs-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputValidatorRegistersCustomTags(t *testing.T) {
	t.Parallel()

	validate, err := newInputValidator()
	require.NoError(t, err)
	require.NotNil(t, validate)

	require.NoError(t, validateInput(validate, validInput()))

	input := validInput()
	input.Price = "-1"
	input.RenewalDate = "04/01/2025"
	err = validateInput(validate, input)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
	require.ErrorIs(t, err, domain.ErrInvalidDateFormat)
	assert.Contains(t, err.Error(), "renewal_date")
}
