package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "целое", in: "5", want: "5"},
		{name: "запятая как разделитель", in: "2,5", want: "2.5"},
		{name: "точка как разделитель", in: "2.5", want: "2.5"},
		{name: "пробелы по краям", in: "  7 ", want: "7"},
		{name: "верхняя граница", in: "999999", want: "999999"},
		{name: "ноль", in: "0", wantErr: ErrNonPositive},
		{name: "отрицательное", in: "-3", wantErr: ErrNonPositive},
		{name: "не число", in: "abc", wantErr: ErrInvalidFormat},
		{name: "пустая строка", in: "", wantErr: ErrInvalidFormat},
		{name: "слишком много", in: "1000000", wantErr: ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, got.Equal(want), "ожидалось %s, получено %s", want, got)
		})
	}
}

func TestParseThreshold(t *testing.T) {
	got, err := ParseThreshold("0")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = ParseThreshold("1,5")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("1.5")))

	_, err = ParseThreshold("-1")
	assert.ErrorIs(t, err, ErrNonPositive)

	_, err = ParseThreshold("много")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestInsufficientStockError(t *testing.T) {
	err := &InsufficientStockError{Available: decimal.RequireFromString("3.5")}
	assert.Contains(t, err.Error(), "3.5")
}
