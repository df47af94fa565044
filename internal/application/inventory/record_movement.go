package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de stock de forma transaccional
// (ENTRY, EXIT, ADJUSTMENT) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
//
// El libro es la fuente de verdad: la cantidad del producto se escribe solo aquí,
// como efecto del movimiento, en la misma transacción que lo inserta.
type RecordMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner, productRepo: productRepo}
}

// MovementInput entrada para registrar un movimiento de stock.
// Quantity es positiva para ENTRY/EXIT y con signo para ADJUSTMENT.
// No se rechaza una cantidad negativa o cero en ENTRY/EXIT: esa validación
// pertenece a la capa de presentación, no al motor.
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int64
	Reason    string
	UserID    string
}

// RecordMovement inicia una transacción, bloquea la fila del producto, aplica el
// efecto según el tipo y persiste movimiento y cantidad juntos (ambos o ninguno).
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (string, error) {
	switch input.Type {
	case entity.MovementTypeEntry, entity.MovementTypeExit, entity.MovementTypeAdjustment:
	default:
		return "", domain.ErrInvalidInput
	}
	if input.ProductID == "" {
		return "", domain.ErrInvalidInput
	}

	// Existencia del producto (lectura fuera de la tx; la fila se bloquea dentro)
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.ErrNotFound
	}

	var movementID string
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		id, err := ApplyInTx(movRepo, productRepo, input, time.Now())
		movementID = id
		return err
	})
	if err != nil {
		return "", err
	}
	return movementID, nil
}

// ApplyInTx aplica un movimiento usando repositorios atados a la transacción del
// caller (el motor de facturación lo invoca dentro de su propia tx).
//
// Efecto exactamente una vez: el movimiento solo se inserta, nunca se re-guarda,
// y la cantidad del producto se escribe en la misma transacción.
// ENTRY suma, EXIT resta, ADJUSTMENT suma el delta con signo. No hay piso en
// cero: una salida puede dejar el stock negativo y no se rechaza.
func ApplyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	now time.Time,
) (string, error) {
	// Bloquea la fila del producto (SELECT FOR UPDATE) para evitar lost updates
	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.ErrNotFound
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Reason:    input.Reason,
		UserID:    input.UserID,
		Date:      now,
	}

	newQty := product.Quantity + mov.SignedEffect()
	if err := productRepo.UpdateQuantity(input.ProductID, newQty); err != nil {
		return "", err
	}
	if err := movRepo.Create(mov); err != nil {
		return "", err
	}
	return mov.ID, nil
}
