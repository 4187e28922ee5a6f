// Package ticket define el formato de los números de ticket de compra y el nombre
// del archivo PDF asociado.
package ticket

import (
	"fmt"
	"regexp"
)

var numberPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Number construye el número de ticket: TCK-<año>-<id de compra con 6 dígitos>.
func Number(year int, purchaseID int64) string {
	return fmt.Sprintf("TCK-%d-%06d", year, purchaseID)
}

// Valid indica si s puede ser un número de ticket. Evita rutas fuera del directorio de tickets.
func Valid(s string) bool {
	return numberPattern.MatchString(s)
}

// FileName nombre del PDF para un número de ticket.
func FileName(number string) string {
	return "ticket_" + number + ".pdf"
}
