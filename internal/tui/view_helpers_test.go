package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-ferrari-store/models"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 0, want: "R$ 0,00"},
		{cents: 4599, want: "R$ 45,99"},
		{cents: 129990, want: "R$ 1.299,90"},
		{cents: 125000000, want: "R$ 1.250.000,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatPrice(tt.cents))
	}
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "SF90", fitText("SF90", 10))
	assert.Equal(t, "Ferrar...", fitText("Ferrari F40 Competizione", 9))
	assert.Equal(t, "Fer", fitText("Ferrari", 3))
	assert.Equal(t, "Maranel...", fitText("Maranello Ñoño", 10), "cuts on runes")
}

func TestProductTypeLabel(t *testing.T) {
	assert.Equal(t, "All", productTypeLabel(""))
	assert.Equal(t, "Formula 1", productTypeLabel(models.ProductTypeFormula1))
	assert.Equal(t, "boat", productTypeLabel("boat"))
}
