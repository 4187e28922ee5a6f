package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los adaptadores de persistencia y los casos de uso los envuelven con %w;
// la capa HTTP los distingue con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmptyCart          = errors.New("el carrito está vacío")
)
