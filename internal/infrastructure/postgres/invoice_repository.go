package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, number, customer_id, date, status, total_amount, paid_amount, user_id`

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, number, customer_id, date, status, total_amount, paid_amount, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, nullIfEmpty(invoice.CustomerID), invoice.Date,
		invoice.Status, invoice.TotalAmount, invoice.PaidAmount, nullIfEmpty(invoice.UserID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una cabecera de factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var inv entity.Invoice
	var customerID, userID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.Number, &customerID, &inv.Date, &inv.Status,
		&inv.TotalAmount, &inv.PaidAmount, &userID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.CustomerID = derefStr(customerID)
	inv.UserID = derefStr(userID)
	return &inv, nil
}

// Update actualiza la cabecera (status, paid_amount, customer). Nunca toca total_amount.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $2, status = $3, paid_amount = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, nullIfEmpty(invoice.CustomerID), invoice.Status, invoice.PaidAmount,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// UpdateTotal escribe solo total_amount (recalculado por el motor de líneas).
func (r *InvoiceRepo) UpdateTotal(id string, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET total_amount = $2 WHERE id = $1`, id, total)
	if err != nil {
		return fmt.Errorf("update invoice total: %w", err)
	}
	return nil
}

// List lista facturas del vendedor según filtro, más recientes primero.
func (r *InvoiceRepo) List(filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `
		SELECT i.id, i.number, i.customer_id, i.date, i.status, i.total_amount, i.paid_amount, i.user_id
		FROM invoices i
		LEFT JOIN customers c ON c.id = i.customer_id
		WHERE 1=1`
	var args []any
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND i.user_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (i.number ILIKE $%d OR c.name ILIKE $%d)", len(args), len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND i.status = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND i.date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND i.date <= $%d", len(args))
	}
	query += " ORDER BY i.date DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var customerID, userID *string
		if err := rows.Scan(&inv.ID, &inv.Number, &customerID, &inv.Date, &inv.Status,
			&inv.TotalAmount, &inv.PaidAmount, &userID); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		inv.CustomerID = derefStr(customerID)
		inv.UserID = derefStr(userID)
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Summary agregados (conteo, total facturado, total pagado) sobre el mismo filtro del listado.
func (r *InvoiceRepo) Summary(filter repository.InvoiceFilter) (*repository.InvoiceSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(i.total_amount), 0), COALESCE(SUM(i.paid_amount), 0)
		FROM invoices i
		LEFT JOIN customers c ON c.id = i.customer_id
		WHERE 1=1`
	var args []any
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND i.user_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (i.number ILIKE $%d OR c.name ILIKE $%d)", len(args), len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND i.status = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND i.date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND i.date <= $%d", len(args))
	}

	var s repository.InvoiceSummary
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&s.Count, &s.Total, &s.Paid); err != nil {
		return nil, fmt.Errorf("invoice summary: %w", err)
	}
	return &s, nil
}

// NumbersForYearLocked devuelve los números de factura del año bloqueando las
// filas (FOR UPDATE) para serializar la asignación del consecutivo. Debe
// llamarse dentro de la transacción que crea la factura.
func (r *InvoiceRepo) NumbersForYearLocked(year int) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT number FROM invoices WHERE number LIKE $1 FOR UPDATE`,
		fmt.Sprintf("%d-%%", year),
	)
	if err != nil {
		return nil, fmt.Errorf("lock invoice numbers: %w", err)
	}
	defer rows.Close()
	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan invoice number: %w", err)
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// CreateItem persiste una línea de factura.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_items (id, invoice_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, nullIfEmpty(item.ProductID), item.Quantity,
		item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetItem obtiene una línea por ID.
func (r *InvoiceRepo) GetItem(id string) (*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, unit_price, subtotal
		FROM invoice_items WHERE id = $1`
	var it entity.InvoiceItem
	var productID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.InvoiceID, &productID, &it.Quantity, &it.UnitPrice, &it.Subtotal,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice item: %w", err)
	}
	it.ProductID = derefStr(productID)
	return &it, nil
}

// UpdateItem actualiza cantidad, precio unitario y subtotal de una línea.
func (r *InvoiceRepo) UpdateItem(item *entity.InvoiceItem) error {
	query := `
		UPDATE invoice_items SET quantity = $2, unit_price = $3, subtotal = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("update invoice item: %w", err)
	}
	return nil
}

// DeleteItem elimina una línea de factura.
func (r *InvoiceRepo) DeleteItem(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice item: %w", err)
	}
	return nil
}

// ListItems lista las líneas de una factura en orden estable por id.
func (r *InvoiceRepo) ListItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, unit_price, subtotal
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		var productID *string
		if err := rows.Scan(&it.ID, &it.InvoiceID, &productID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		it.ProductID = derefStr(productID)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// SumItemSubtotals suma los subtotales vigentes de la factura (fuente del total).
func (r *InvoiceRepo) SumItemSubtotals(invoiceID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(subtotal), 0) FROM invoice_items WHERE invoice_id = $1`,
		invoiceID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum invoice items: %w", err)
	}
	return total, nil
}
