package dto

import "github.com/shopspring/decimal"

// AddToCartRequest entrada de POST /carrito/agregar. Cantidad por defecto 1;
// sin precio_unitario se toma el precio con descuento vigente.
type AddToCartRequest struct {
	IDProducto     int64            `json:"id_producto"`
	Cantidad       *int             `json:"cantidad"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

// UpdateCartItemRequest entrada de PUT /carrito/actualizar/:detalleId. Cantidad <= 0 elimina la línea.
type UpdateCartItemRequest struct {
	Cantidad *int `json:"cantidad"`
}

// CartItemResponse línea del carrito con datos del producto.
type CartItemResponse struct {
	IDDetalleCarrito int64           `json:"id_detalle_carrito"`
	IDProducto       int64           `json:"id_producto"`
	Cantidad         int             `json:"cantidad"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Nombre           string          `json:"nombre"`
	Descripcion      string          `json:"descripcion"`
	Imagen           string          `json:"imagen"`
}

// CartResponse contenido del carrito abierto.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// CartMutationResponse respuesta de las operaciones que modifican el carrito.
type CartMutationResponse struct {
	Success bool         `json:"success"`
	Carrito CartResponse `json:"carrito"`
}
