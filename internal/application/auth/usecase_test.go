package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayxus/nayxus-stock/internal/application/auth"
	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/pkg/jwt"
)

type fakeUserRepo struct {
	users   map[string]*entity.User
	findErr error // simula un fallo transitorio del repositorio
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func newAuthUseCase() *auth.AuthUseCase {
	return auth.NewAuthUseCase(newFakeUserRepo(), auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 15,
		Issuer:     "nayxus-stock",
	})
}

func TestRegister_RolPorDefectoSeller(t *testing.T) {
	uc := newAuthUseCase()

	user, err := uc.RegisterUser(dto.RegisterRequest{Username: "fatou", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, user.Role)
	assert.NotEmpty(t, user.ID)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	uc := newAuthUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "fatou", Password: "s3cret"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Username: "fatou", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuthUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "fatou", Password: "s3cret", Email: "fatou@example.com"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Username: "awa", Password: "s3cret", Email: "fatou@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_CamposRequeridos(t *testing.T) {
	uc := newAuthUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "", Password: "s3cret"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(dto.RegisterRequest{Username: "fatou", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un fallo del repositorio al verificar duplicados se propaga; nunca se trata
// como "no hay duplicado".
func TestRegister_FalloDeRepoSePropaga(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errors.New("conexión perdida")
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 15,
		Issuer:     "nayxus-stock",
	})

	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "fatou", Password: "s3cret"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "conexión perdida")
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_RolInvalido(t *testing.T) {
	uc := newAuthUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "fatou", Password: "s3cret", Role: "SUPERUSER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_TokenConRol(t *testing.T) {
	uc := newAuthUseCase()

	registered, err := uc.RegisterUser(dto.RegisterRequest{Username: "admin", Password: "s3cret", Role: entity.RoleAdmin})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := jwt.Parse("secreto-de-prueba", out.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newAuthUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "fatou", Password: "s3cret"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "fatou", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUseCase()

	_, err := uc.Login(dto.LoginRequest{Username: "nadie", Password: "s3cret"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
