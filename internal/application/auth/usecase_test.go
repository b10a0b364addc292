package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/domain"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/pkg/config"
	pkgjwt "github.com/tu-usuario/agroportal-api/pkg/jwt"
)

// fakeUserRepo repositorio de usuarios en memoria indexado por email.
type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

var testJWT = JWTConfig{Secret: "secret-de-test", ExpMinutes: 60, Issuer: "agroportal-test"}

func adminList(emails ...string) config.AdminConfig {
	return config.AdminConfig{Emails: emails}
}

func TestRegister_CreaUsuarioConRolUser(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), adminList("admin@agro.com"), testJWT)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "campesino@agro.com", Password: "12345678x", FullName: "Juan Pérez",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role)
	assert.Equal(t, "Juan Pérez", out.FullName)
	assert.NotEmpty(t, out.ID)
}

func TestRegister_RechazaCorreoAdmin(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), adminList("admin@agro.com"), testJWT)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "ADMIN@agro.com", Password: "12345678x", FullName: "Impostor",
	})
	assert.ErrorIs(t, err, domain.ErrAdminSelfRegister,
		"la comparación con la lista blanca es case-insensitive")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, adminList(), testJWT)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@agro.com", Password: "12345678x", FullName: "A"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "a@agro.com", Password: "otropass1", FullName: "B"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func registrar(t *testing.T, repo *fakeUserRepo, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &entity.User{
		ID: "id-" + email, Email: email, FullName: "Usuario", PasswordHash: string(hash), Status: "active",
	}))
}

func TestLogin_DerivaRolPorListaBlanca(t *testing.T) {
	repo := newFakeUserRepo()
	registrar(t, repo, "admin@agro.com", "clave-admin")
	registrar(t, repo, "user@agro.com", "clave-user")
	uc := NewAuthUseCase(repo, adminList("admin@agro.com"), testJWT)
	ctx := context.Background()

	admin, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@agro.com", Password: "clave-admin"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.User.Role)

	user, err := uc.Login(ctx, dto.LoginRequest{Email: "user@agro.com", Password: "clave-user"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.User.Role)

	// El rol viaja dentro del token, no solo en la respuesta.
	ident, err := pkgjwt.Parse(testJWT.Secret, admin.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, ident.Role)
	assert.Equal(t, "admin@agro.com", ident.Email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	repo := newFakeUserRepo()
	registrar(t, repo, "user@agro.com", "clave-buena")
	uc := NewAuthUseCase(repo, adminList(), testJWT)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "noexiste@agro.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "user@agro.com", Password: "clave-mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUserRepo()
	hash, _ := bcrypt.GenerateFromPassword([]byte("clave"), bcrypt.MinCost)
	require.NoError(t, repo.Create(context.Background(), &entity.User{
		ID: "u-1", Email: "baja@agro.com", PasswordHash: string(hash), Status: "suspended",
	}))
	uc := NewAuthUseCase(repo, adminList(), testJWT)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "baja@agro.com", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMe_RecalculaElRol(t *testing.T) {
	repo := newFakeUserRepo()
	registrar(t, repo, "promovido@agro.com", "clave")

	// Tras añadir el correo a la lista blanca el perfil ya reporta admin.
	uc := NewAuthUseCase(repo, adminList("promovido@agro.com"), testJWT)
	out, err := uc.Me(context.Background(), "id-promovido@agro.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
}
