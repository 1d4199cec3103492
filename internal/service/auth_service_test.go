package service_test

import (
	"context"
	"testing"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/config"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoAuthSvc() (service.AuthService, *stubUsuarioRepo) {
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func TestRegistrarYLogin(t *testing.T) {
	svc, _ := nuevoAuthSvc()

	u, err := svc.Registrar(context.Background(), dto.RegistrarUsuarioRequest{
		Nombre:   "Ana",
		Email:    "Ana@Ejemplo.com",
		Password: "secreto1",
	})
	require.NoError(t, err)
	// Email is normalized and self-registration always lands as cliente.
	assert.Equal(t, "ana@ejemplo.com", u.Email)
	assert.Equal(t, "cliente", u.Rol)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@ejemplo.com",
		Password: "secreto1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, u.ID, resp.User.ID)
}

func TestRegistrarEmailDuplicado(t *testing.T) {
	svc, _ := nuevoAuthSvc()

	_, err := svc.Registrar(context.Background(), dto.RegistrarUsuarioRequest{
		Nombre: "Ana", Email: "ana@ejemplo.com", Password: "secreto1",
	})
	require.NoError(t, err)

	_, err = svc.Registrar(context.Background(), dto.RegistrarUsuarioRequest{
		Nombre: "Otra Ana", Email: "ANA@ejemplo.com", Password: "secreto2",
	})
	e, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindConflict, e.Kind)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	svc, _ := nuevoAuthSvc()

	_, err := svc.Registrar(context.Background(), dto.RegistrarUsuarioRequest{
		Nombre: "Ana", Email: "ana@ejemplo.com", Password: "secreto1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@ejemplo.com", Password: "incorrecta",
	})
	assert.Error(t, err)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	svc, repo := nuevoAuthSvc()

	u, err := svc.Registrar(context.Background(), dto.RegistrarUsuarioRequest{
		Nombre: "Ana", Email: "ana@ejemplo.com", Password: "secreto1",
	})
	require.NoError(t, err)
	repo.usuarios[u.ID].Activo = false

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@ejemplo.com", Password: "secreto1",
	})
	assert.Error(t, err)
}

func TestRefreshEmiteNuevosTokens(t *testing.T) {
	svc, _ := nuevoAuthSvc()

	_, err := svc.Registrar(context.Background(), dto.RegistrarUsuarioRequest{
		Nombre: "Ana", Email: "ana@ejemplo.com", Password: "secreto1",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@ejemplo.com", Password: "secreto1",
	})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
}

func TestRefreshRechazaAccessToken(t *testing.T) {
	svc, _ := nuevoAuthSvc()

	_, err := svc.Registrar(context.Background(), dto.RegistrarUsuarioRequest{
		Nombre: "Ana", Email: "ana@ejemplo.com", Password: "secreto1",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@ejemplo.com", Password: "secreto1",
	})
	require.NoError(t, err)

	// An access token must not be usable as a refresh token.
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.Error(t, err)
}
