package sales

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// InvoiceLineForPDF línea de factura resuelta para el PDF (nombre ya buscado).
type InvoiceLineForPDF struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// InvoicePDFGenerator puerto de generación del PDF de factura.
// customer puede ser nil si el cliente fue eliminado.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		store *entity.StoreSettings,
		customer *entity.Customer,
		sellerName string,
		lines []InvoiceLineForPDF,
	) ([]byte, error)
}

// PDFUseCase arma los datos de la factura y delega el render al generador.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	settingsRepo repository.SettingsRepository
	userRepo     repository.UserRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	settingsRepo repository.SettingsRepository,
	userRepo repository.UserRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		generator:    generator,
	}
}

// InvoicePDF genera el PDF de una factura del vendedor.
func (uc *PDFUseCase) InvoicePDF(ctx context.Context, userID, invoiceID string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.UserID != userID {
		return nil, domain.ErrForbidden
	}

	items, err := uc.invoiceRepo.ListItems(inv.ID)
	if err != nil {
		return nil, err
	}
	lines := make([]InvoiceLineForPDF, 0, len(items))
	for _, it := range items {
		name := "Produit inconnu"
		if it.ProductID != "" {
			if p, err := uc.productRepo.GetByID(it.ProductID); err == nil && p != nil {
				name = p.Name
			}
		}
		lines = append(lines, InvoiceLineForPDF{
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}

	store, err := uc.settingsRepo.GetOrCreate()
	if err != nil {
		return nil, err
	}

	var customer *entity.Customer
	if inv.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(inv.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	sellerName := ""
	if inv.UserID != "" {
		if u, err := uc.userRepo.GetByID(inv.UserID); err == nil && u != nil {
			sellerName = u.Username
		}
	}

	return uc.generator.GenerateInvoicePDF(ctx, inv, store, customer, sellerName, lines)
}
