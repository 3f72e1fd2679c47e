package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCleanFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bánh Mì", "banhmi"},
		{"phở bò (1)", "phobo1"},
		{"IMG_2024", "img2024"},
		{"***", "image"},
		{"", "image"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanFilename(tt.in), tt.in)
	}
}

func TestFormatVND(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(75000), "75.000"},
		{decimal.NewFromInt(500), "500"},
		{decimal.NewFromInt(1234567), "1.234.567"},
		{decimal.RequireFromString("1234.50"), "1.234,5"},
		{decimal.NewFromInt(-25000), "-25.000"},
		{decimal.Zero, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatVND(tt.in), tt.in.String())
	}
}
