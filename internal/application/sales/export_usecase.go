package sales

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// ExportUseCase exporta las facturas del vendedor en CSV.
type ExportUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(invoiceRepo repository.InvoiceRepository, customerRepo repository.CustomerRepository) *ExportUseCase {
	return &ExportUseCase{invoiceRepo: invoiceRepo, customerRepo: customerRepo}
}

// statusLabels etiquetas de estado para el CSV.
var statusLabels = map[string]string{
	"PAID":    "Payée",
	"UNPAID":  "Impayée",
	"PARTIAL": "Partiellement payée",
}

// InvoicesCSV genera el CSV de facturas del vendedor:
// Numéro, Date, Client, Statut, Total, Payé, Reste.
func (uc *ExportUseCase) InvoicesCSV(ctx context.Context, userID string) ([]byte, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	invoices, err := uc.invoiceRepo.List(repository.InvoiceFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Numéro", "Date", "Client", "Statut", "Total", "Payé", "Reste"}); err != nil {
		return nil, fmt.Errorf("csv factures: %w", err)
	}
	for _, inv := range invoices {
		customerName := ""
		if inv.CustomerID != "" {
			if c, err := uc.customerRepo.GetByID(inv.CustomerID); err == nil && c != nil {
				customerName = c.Name
			}
		}
		label := inv.Status
		if l, ok := statusLabels[inv.Status]; ok {
			label = l
		}
		record := []string{
			inv.Number,
			inv.Date.Format("2006-01-02"),
			customerName,
			label,
			inv.TotalAmount.StringFixed(2),
			inv.PaidAmount.StringFixed(2),
			inv.RemainingAmount().StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv factures: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv factures: %w", err)
	}
	return buf.Bytes(), nil
}
