package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func TestGenerateTicketPDF(t *testing.T) {
	g := NewMarotoTicketGenerator("Tienda")

	out, err := g.GenerateTicketPDF(context.Background(), checkout.TicketDocument{
		Number:       "TCK-2024-000042",
		Date:         time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
		CustomerName: "Ana",
		Items: []*entity.PurchaseItem{
			{ProductName: "Camisa", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00"), Subtotal: decimal.RequireFromString("20.00")},
			{ProductName: "Gorra", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00"), Subtotal: decimal.RequireFromString("5.00")},
		},
		Total: decimal.RequireFromString("25.00"),
		URL:   "http://localhost:8080/ticket/TCK-2024-000042",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe producir un PDF")
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$25.00", money(decimal.RequireFromString("25")))
	assert.Equal(t, "$1,234.50", money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$1,000,000.00", money(decimal.NewFromInt(1_000_000)))
	assert.Equal(t, "-$3.10", money(decimal.RequireFromString("-3.1")))
}
