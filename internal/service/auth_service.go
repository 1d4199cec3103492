package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/config"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/model"
	"github.com/FelipeF32/Articulacion/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, login and token refresh.
type AuthService interface {
	Registrar(ctx context.Context, req dto.RegistrarUsuarioRequest) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func mapUsuario(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:     u.ID,
		Nombre: u.Nombre,
		Email:  u.Email,
		Rol:    u.Rol,
	}
}

// Registrar creates a cliente account. Staff roles are only granted through
// the seed command or by an administrator editing the row directly.
func (s *authService) Registrar(ctx context.Context, req dto.RegistrarUsuarioRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.ObtenerPorEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Internal("error al consultar usuarios", err)
	}
	if existing != nil {
		return nil, apierror.Conflict("ya existe un usuario con ese email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierror.Internal("error al procesar la contrasena", err)
	}

	u := &model.Usuario{
		Nombre:       req.Nombre,
		Email:        email,
		PasswordHash: string(hash),
		Rol:          model.RolCliente,
		Telefono:     req.Telefono,
		Direccion:    req.Direccion,
		Activo:       true,
	}
	if err := s.repo.Crear(ctx, u); err != nil {
		return nil, apierror.Internal("error al crear el usuario", err)
	}

	log.Info().Uint("usuario_id", u.ID).Str("email", u.Email).Msg("usuario registrado")
	return mapUsuario(u), nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.repo.ObtenerPorEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validation("credenciales invalidas")
		}
		return nil, apierror.Internal("error al consultar usuarios", err)
	}
	if !u.Activo {
		return nil, apierror.Validation("credenciales invalidas")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.Validation("credenciales invalidas")
	}

	return s.emitirTokens(u)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("metodo de firma inesperado")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Validation("refresh token invalido")
	}
	if tipo, _ := claims["tipo"].(string); tipo != "refresh" {
		return nil, apierror.Validation("refresh token invalido")
	}

	sub, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apierror.Validation("refresh token invalido")
	}

	u, err := s.repo.ObtenerPorID(ctx, uint(sub))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validation("refresh token invalido")
		}
		return nil, apierror.Internal("error al consultar usuarios", err)
	}
	if !u.Activo {
		return nil, apierror.Validation("refresh token invalido")
	}

	return s.emitirTokens(u)
}

func (s *authService) emitirTokens(u *model.Usuario) (*dto.LoginResponse, error) {
	access, err := s.firmarToken(u, "access", time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, apierror.Internal("error al generar el token", err)
	}
	refresh, err := s.firmarToken(u, "refresh", time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, apierror.Internal("error al generar el token", err)
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *mapUsuario(u),
	}, nil
}

func (s *authService) firmarToken(u *model.Usuario, tipo string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"rol":     u.Rol,
		"tipo":    tipo,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
