package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository sobre la fila única id=1.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// GetOrCreate devuelve la fila id=1, creándola con valores por defecto si no existe.
// El INSERT usa ON CONFLICT DO NOTHING para tolerar la carrera del primer acceso.
func (r *SettingsRepo) GetOrCreate() (*entity.StoreSettings, error) {
	s, err := r.get()
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	_, err = r.q.Exec(context.Background(),
		`INSERT INTO store_settings (id, name, address, phone, email, logo_path)
		 VALUES ($1, '', '', '', '', '')
		 ON CONFLICT (id) DO NOTHING`,
		entity.SettingsID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert settings: %w", err)
	}
	return r.get()
}

func (r *SettingsRepo) get() (*entity.StoreSettings, error) {
	var s entity.StoreSettings
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, address, phone, email, logo_path FROM store_settings WHERE id = $1`,
		entity.SettingsID,
	).Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Email, &s.LogoPath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Update modifica la fila única con los datos del negocio.
func (r *SettingsRepo) Update(settings *entity.StoreSettings) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE store_settings SET name = $2, address = $3, phone = $4, email = $5, logo_path = $6
		 WHERE id = $1`,
		entity.SettingsID, settings.Name, settings.Address, settings.Phone,
		settings.Email, settings.LogoPath,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
