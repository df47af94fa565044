package repository

import "github.com/nayxus/nayxus-stock/internal/domain/entity"

// SettingsRepository define el puerto de la fila única de configuración del negocio.
type SettingsRepository interface {
	// GetOrCreate devuelve la fila id=1, creándola con valores por defecto si no existe.
	GetOrCreate() (*entity.StoreSettings, error)
	Update(settings *entity.StoreSettings) error
}
