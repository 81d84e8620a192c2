package authenticating

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/internal/config"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTimeout = 60 * time.Minute

//go:generate mockgen -source=service.go -destination=mocks/authenticator_mock.go -package=mocks
type Authenticator interface {
	Enabled() bool
	Login(username, password string) (*domain.Session, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg config.Auth
	now func() time.Time
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg: cfg.Auth,
		now: time.Now,
	}
}

// WithClock substitui o relógio usado na emissão e validação dos tokens
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Enabled indica se as rotas exigem sessão
func (s *Service) Enabled() bool {
	return s.cfg.Enabled()
}

func (s *Service) Login(username, password string) (*domain.Session, error) {
	if !s.Enabled() {
		return nil, NewAuthError(ErrLoginDisabled, apiErrors.ErrLoginDisabled, "")
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios")
	}

	userMatches := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.DashboardUser)) == 1

	// Verificar senha mesmo com usuário errado para não revelar qual dos dois falhou
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.DashboardPasswordHash), []byte(password))
	if !userMatches || passwordErr != nil {
		logrus.WithField("username", username).Warn("Tentativa de login inválida")
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Usuário ou senha incorretos")
	}

	expiresAt := s.now().Add(s.sessionTimeout())
	token, err := s.generateJWT(username, expiresAt)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return &domain.Session{
		Token:     token,
		Username:  username,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *Service) sessionTimeout() time.Duration {
	if timeout := s.cfg.SessionTimeout(); timeout > 0 {
		return timeout
	}
	return defaultSessionTimeout
}

func (s *Service) generateJWT(username string, expiresAt time.Time) (string, error) {
	claims := domain.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
}
