package ticket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-api/internal/domain/ticket"
)

func TestNumber(t *testing.T) {
	assert.Equal(t, "TCK-2024-000042", ticket.Number(2024, 42))
	assert.Equal(t, "TCK-2025-000001", ticket.Number(2025, 1))
	assert.Equal(t, "TCK-2025-1234567", ticket.Number(2025, 1234567), "ids de más de 6 dígitos no se truncan")
}

func TestValid(t *testing.T) {
	assert.True(t, ticket.Valid("TCK-2024-000042"))
	assert.False(t, ticket.Valid(""))
	assert.False(t, ticket.Valid("../../etc/passwd"))
	assert.False(t, ticket.Valid("TCK 2024"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "ticket_TCK-2024-000042.pdf", ticket.FileName("TCK-2024-000042"))
}
