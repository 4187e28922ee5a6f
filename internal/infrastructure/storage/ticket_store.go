// Package storage guarda en disco los archivos públicos de la tienda:
// PDFs de tickets e imágenes de productos.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/domain/ticket"
)

var _ checkout.TicketFileStore = (*TicketStore)(nil)

// TicketStore guarda los PDF como <dir>/ticket_<numero>.pdf.
type TicketStore struct {
	dir string
}

// NewTicketStore crea el directorio si no existe.
func NewTicketStore(dir string) (*TicketStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de tickets: %w", err)
	}
	return &TicketStore{dir: dir}, nil
}

// Save escribe el PDF de forma atómica (archivo temporal + rename).
func (s *TicketStore) Save(number string, content []byte) (string, error) {
	if !ticket.Valid(number) {
		return "", fmt.Errorf("número de ticket inválido %q", number)
	}
	path := filepath.Join(s.dir, ticket.FileName(number))
	tmp, err := os.CreateTemp(s.dir, ".ticket-*")
	if err != nil {
		return "", fmt.Errorf("crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("escribir ticket: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("cerrar ticket: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("permisos ticket: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("mover ticket: %w", err)
	}
	return path, nil
}

// Read lee un PDF guardado. Devuelve un error que cumple errors.Is(err, fs.ErrNotExist) si falta.
func (s *TicketStore) Read(path string) ([]byte, error) {
	b, err := os.ReadFile(s.inside(path))
	if err != nil {
		return nil, fmt.Errorf("leer ticket: %w", err)
	}
	return b, nil
}

// Remove borra un PDF; no falla si ya no existe.
func (s *TicketStore) Remove(path string) error {
	if err := os.Remove(s.inside(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar ticket: %w", err)
	}
	return nil
}

// inside limita la ruta al directorio de tickets aunque la fila guardada haya sido alterada.
func (s *TicketStore) inside(path string) string {
	return filepath.Join(s.dir, filepath.Base(path))
}
