package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

var _ usecase.ImageStore = (*ImageStore)(nil)

// ImageStore guarda las imágenes subidas como <uuid>_<nombre saneado>.
type ImageStore struct {
	dir string
}

// NewImageStore crea el directorio si no existe.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de imágenes: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save copia el contenido y devuelve el nombre generado.
func (s *ImageStore) Save(originalName string, content io.Reader) (string, error) {
	name := uuid.NewString() + "_" + SanitizeFileName(originalName)
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("crear imagen: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("copiar imagen: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("cerrar imagen: %w", err)
	}
	return name, nil
}

// Remove borra una imagen; no falla si ya no existe.
func (s *ImageStore) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar imagen: %w", err)
	}
	return nil
}

// SanitizeFileName quita la ruta, pliega acentos ("niño" → "nino") y reemplaza
// lo que no sea [A-Za-z0-9._-] por guion bajo.
func SanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "imagen"
	}
	return out
}
