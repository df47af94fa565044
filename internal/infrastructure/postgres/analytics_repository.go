package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard, estadísticas y reportes.
// Siempre calcula desde las tablas base; no hay agregados materializados.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// RevenueSince suma total_amount de las facturas del vendedor desde la fecha.
// Con since en cero suma todo el histórico.
func (r *AnalyticsRepo) RevenueSince(ctx context.Context, userID string, since time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE user_id = $1 AND date >= $2`
	var revenue decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, userID, since).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.RevenueSince: %w", err)
	}
	return revenue, nil
}

// StockPurchaseValue valor del inventario a precio de compra (Σ quantity × purchase_price).
func (r *AnalyticsRepo) StockPurchaseValue(ctx context.Context) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(quantity * purchase_price), 0)
		FROM products`
	var value decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&value); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.StockPurchaseValue: %w", err)
	}
	return value, nil
}

// LowStockCount cuenta productos en o por debajo del umbral de alerta.
func (r *AnalyticsRepo) LowStockCount(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE quantity <= alert_threshold`)
}

// CustomerCount cuenta clientes registrados.
func (r *AnalyticsRepo) CustomerCount(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM customers`)
}

// ProductCount cuenta productos del catálogo.
func (r *AnalyticsRepo) ProductCount(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products`)
}

// InvoiceCount cuenta facturas del vendedor.
func (r *AnalyticsRepo) InvoiceCount(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM invoices WHERE user_id = $1`, userID)
}

func (r *AnalyticsRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics count: %w", err)
	}
	return n, nil
}

// RecentInvoices últimas facturas del vendedor, más recientes primero.
func (r *AnalyticsRepo) RecentInvoices(ctx context.Context, userID string, limit int) ([]*entity.Invoice, error) {
	const query = `
		SELECT id, number, customer_id, date, status, total_amount, paid_amount, user_id
		FROM invoices
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.RecentInvoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var customerID, uID *string
		if err := rows.Scan(&inv.ID, &inv.Number, &customerID, &inv.Date, &inv.Status,
			&inv.TotalAmount, &inv.PaidAmount, &uID); err != nil {
			return nil, fmt.Errorf("analytics.RecentInvoices scan: %w", err)
		}
		inv.CustomerID = derefStr(customerID)
		inv.UserID = derefStr(uID)
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// RecentMovements últimos movimientos de stock, más recientes primero.
func (r *AnalyticsRepo) RecentMovements(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	const query = `
		SELECT id, product_id, type, quantity, reason, user_id, date
		FROM stock_movements
		ORDER BY date DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.RecentMovements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// LowStockProducts productos en alerta, los más críticos primero (menor stock relativo al umbral).
func (r *AnalyticsRepo) LowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	const query = `
		SELECT id, category_id, name, description, purchase_price, selling_price, quantity, alert_threshold, barcode, created_at, updated_at
		FROM products
		WHERE quantity <= alert_threshold
		ORDER BY quantity - alert_threshold
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.LowStockProducts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var categoryID, barcode *string
		if err := rows.Scan(&p.ID, &categoryID, &p.Name, &p.Description, &p.PurchasePrice,
			&p.SellingPrice, &p.Quantity, &p.AlertThreshold, &barcode, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("analytics.LowStockProducts scan: %w", err)
		}
		p.CategoryID = derefStr(categoryID)
		p.Barcode = derefStr(barcode)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// MonthlySales totales facturados por mes para el vendedor desde la fecha,
// en orden cronológico.
func (r *AnalyticsRepo) MonthlySales(ctx context.Context, userID string, since time.Time) ([]repository.MonthlySalesResult, error) {
	const query = `
		SELECT date_trunc('month', date) AS month, COALESCE(SUM(total_amount), 0) AS total
		FROM invoices
		WHERE user_id = $1 AND date >= $2
		GROUP BY month
		ORDER BY month`
	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.MonthlySales: %w", err)
	}
	defer rows.Close()
	var results []repository.MonthlySalesResult
	for rows.Next() {
		var row repository.MonthlySalesResult
		if err := rows.Scan(&row.Month, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.MonthlySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// StockByCategory subtotales de inventario agrupados por categoría.
// Los productos sin categoría se consolidan en el grupo "Sans catégorie".
func (r *AnalyticsRepo) StockByCategory(ctx context.Context) ([]repository.CategoryStockResult, error) {
	const query = `
		SELECT
		    COALESCE(c.id::TEXT, '')                          AS category_id,
		    COALESCE(c.name, 'Sans catégorie')                AS category_name,
		    COALESCE(SUM(p.quantity), 0)                      AS quantity,
		    COALESCE(SUM(p.quantity * p.purchase_price), 0)   AS purchase_value,
		    COALESCE(SUM(p.quantity * p.selling_price), 0)    AS selling_value
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		GROUP BY c.id, c.name
		ORDER BY category_name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.StockByCategory: %w", err)
	}
	defer rows.Close()
	var results []repository.CategoryStockResult
	for rows.Next() {
		var row repository.CategoryStockResult
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Quantity,
			&row.PurchaseValue, &row.SellingValue); err != nil {
			return nil, fmt.Errorf("analytics.StockByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
