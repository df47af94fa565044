package sales

import (
	"context"

	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de ventas e inventario atados a esa tx. Toda mutación de líneas
// (crear/actualizar/borrar) corre completa aquí: movimiento de stock, cantidad
// del producto, línea y total de la factura, o nada.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}
