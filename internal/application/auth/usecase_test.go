package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Requisiciones-api/internal/application/auth"
	"github.com/jhoicas/Requisiciones-api/internal/application/dto"
	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Requisiciones-api/pkg/jwt"
)

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: make(map[string]*entity.User)} }

func (r *memUserRepo) Create(u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

const testSecret = "auth-test-secret"

func newAuthUC() *auth.AuthUseCase {
	return auth.NewAuthUseCase(newMemUserRepo(), auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "requisiciones-api-test",
	})
}

func register(t *testing.T, uc *auth.AuthUseCase, role string) *dto.UserResponse {
	t.Helper()
	user, err := uc.RegisterUser(dto.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "contraseña-larga",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterUser_RolPorDefectoEsStandard(t *testing.T) {
	uc := newAuthUC()
	user := register(t, uc, "")
	assert.Equal(t, entity.RoleStandard, user.Role)
}

func TestRegisterUser_EmailDuplicado_RetornaError(t *testing.T) {
	uc := newAuthUC()
	register(t, uc, "")

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Name:     "Otra Ana",
		Email:    "ana@example.com",
		Password: "otra-contraseña",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolDesconocido_RetornaInvalidInput(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.RegisterUser(dto.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "contraseña-larga",
		Role:     "superadmin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_TokenIncluyeRol(t *testing.T) {
	uc := newAuthUC()
	user := register(t, uc, entity.RoleAdmin)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "contraseña-larga"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, user.ID, out.User.ID)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role, "el rol viaja firmado en el token")
}

func TestLogin_PasswordIncorrecta_RetornaUnauthorized(t *testing.T) {
	uc := newAuthUC()
	register(t, uc, "")

	_, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Un email desconocido devuelve el mismo error que una password mala: el login
// no revela qué cuentas existen.
func TestLogin_EmailDesconocido_RetornaUnauthorized(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "cualquiera"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
