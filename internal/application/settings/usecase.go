// Package settings expone la fila única de configuración del negocio.
package settings

import (
	"context"

	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// UseCase acceso get-or-create a los datos del negocio (fila id=1).
// No es un singleton en memoria: cada lectura pasa por la tabla.
type UseCase struct {
	settingsRepo repository.SettingsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(settingsRepo repository.SettingsRepository) *UseCase {
	return &UseCase{settingsRepo: settingsRepo}
}

// Get devuelve los datos del negocio, creando la fila por defecto si no existe.
func (uc *UseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.settingsRepo.GetOrCreate()
	if err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{
		Name:     s.Name,
		Address:  s.Address,
		Phone:    s.Phone,
		Email:    s.Email,
		LogoPath: s.LogoPath,
	}, nil
}

// Update modifica los datos del negocio (solo ADMIN, aplicado en el router).
func (uc *UseCase) Update(ctx context.Context, in dto.SaveSettingsRequest) (*dto.SettingsResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.settingsRepo.GetOrCreate()
	if err != nil {
		return nil, err
	}
	s.Name = in.Name
	s.Address = in.Address
	s.Phone = in.Phone
	s.Email = in.Email
	s.LogoPath = in.LogoPath
	if err := uc.settingsRepo.Update(s); err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{
		Name:     s.Name,
		Address:  s.Address,
		Phone:    s.Phone,
		Email:    s.Email,
		LogoPath: s.LogoPath,
	}, nil
}
