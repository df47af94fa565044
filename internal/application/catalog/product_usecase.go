package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/application/inventory"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// ProductUseCase CRUD de productos y exportación CSV del catálogo.
//
// El stock inicial al crear no se escribe directo: el producto nace con
// cantidad 0 y la cantidad pedida se materializa como un movimiento ENTRY en
// la misma transacción, para que el libro quede completo desde el origen.
type ProductUseCase struct {
	txRunner     inventory.TxRunner
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, productRepo: productRepo, categoryRepo: categoryRepo}
}

// Create crea el producto y, si trae cantidad inicial, registra el ENTRY de
// stock inicial dentro de la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.SaveProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		CategoryID:     in.CategoryID,
		Name:           in.Name,
		Description:    in.Description,
		PurchasePrice:  in.PurchasePrice,
		SellingPrice:   in.SellingPrice,
		Quantity:       0, // el stock inicial entra por el libro
		AlertThreshold: in.AlertThreshold,
		Barcode:        in.Barcode,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.Quantity > 0 {
			_, err := inventory.ApplyInTx(movRepo, productRepo, inventory.MovementInput{
				ProductID: product.ID,
				Type:      entity.MovementTypeEntry,
				Quantity:  in.Quantity,
				Reason:    "Stock initial à la création",
				UserID:    userID,
			}, now)
			if err != nil {
				return err
			}
			product.Quantity = in.Quantity
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(product), nil
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product), nil
}

// GetByBarcode busca un producto por código de barras (consulta rápida de
// precio en caja).
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product), nil
}

// Update modifica un producto. La cantidad también es editable aquí, fuera del
// libro de movimientos; es deliberado (paridad con el CRUD existente) aunque
// rompe la derivabilidad estricta del stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.SaveProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	product.Name = in.Name
	product.CategoryID = in.CategoryID
	product.Description = in.Description
	product.PurchasePrice = in.PurchasePrice
	product.SellingPrice = in.SellingPrice
	product.Quantity = in.Quantity
	product.AlertThreshold = in.AlertThreshold
	product.Barcode = in.Barcode
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product), nil
}

// List lista productos con búsqueda, filtro por categoría y filtro de alerta.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *uc.toResponse(p))
	}
	return out, nil
}

// Delete elimina un producto. Se rechaza (ErrConflict) si el libro de
// movimientos lo referencia; las líneas de factura quedan con producto nulo.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

// ProductsCSV genera el CSV del catálogo:
// Nom, Catégorie, Prix Achat, Prix Vente, Stock, Seuil Alerte.
func (uc *ProductUseCase) ProductsCSV(ctx context.Context) ([]byte, error) {
	products, err := uc.productRepo.List(repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Nom", "Catégorie", "Prix Achat", "Prix Vente", "Stock", "Seuil Alerte"}); err != nil {
		return nil, fmt.Errorf("csv produits: %w", err)
	}
	categoryNames := map[string]string{}
	for _, p := range products {
		name, ok := categoryNames[p.CategoryID]
		if !ok {
			if c, err := uc.categoryRepo.GetByID(p.CategoryID); err == nil && c != nil {
				name = c.Name
			}
			categoryNames[p.CategoryID] = name
		}
		record := []string{
			p.Name,
			name,
			p.PurchasePrice.StringFixed(2),
			p.SellingPrice.StringFixed(2),
			strconv.FormatInt(p.Quantity, 10),
			strconv.FormatInt(p.AlertThreshold, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv produits: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv produits: %w", err)
	}
	return buf.Bytes(), nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product) *dto.ProductResponse {
	categoryName := ""
	if c, err := uc.categoryRepo.GetByID(p.CategoryID); err == nil && c != nil {
		categoryName = c.Name
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		CategoryName:   categoryName,
		Name:           p.Name,
		Description:    p.Description,
		PurchasePrice:  p.PurchasePrice,
		SellingPrice:   p.SellingPrice,
		Quantity:       p.Quantity,
		AlertThreshold: p.AlertThreshold,
		Barcode:        p.Barcode,
		LowStock:       p.IsLowStock(),
		CreatedAt:      p.CreatedAt,
	}
}
