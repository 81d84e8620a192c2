package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/streamboard-api/internal/config"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha-forte"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{Auth: config.Auth{
		SecretKey:             "segredo-de-teste",
		SessionTimeoutMinutes: 30,
		DashboardUser:         "admin",
		DashboardPasswordHash: string(hash),
	}}

	return NewService(cfg).WithClock(func() time.Time { return now })
}

func TestService_Login(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "Login válido gera sessão",
			username: "admin",
			password: "s3nha-forte",
		},
		{
			name:     "Espaços no usuário são ignorados",
			username: "  admin ",
			password: "s3nha-forte",
		},
		{
			name:     "Senha incorreta",
			username: "admin",
			password: "errada",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Usuário incorreto",
			username: "root",
			password: "s3nha-forte",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Dados ausentes",
			username: "",
			password: "",
			wantErr:  ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, now)

			session, err := s.Login(tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "admin", session.Username)
			assert.Equal(t, now.Add(30*time.Minute).Unix(), session.ExpiresAt)

			claims, err := s.ValidateToken(session.Token)
			require.NoError(t, err)
			assert.Equal(t, "admin", claims.Username)
		})
	}
}

func TestService_LoginDisabled(t *testing.T) {
	s := NewService(&config.Config{})

	assert.False(t, s.Enabled())

	_, err := s.Login("admin", "qualquer")
	assert.ErrorIs(t, err, ErrLoginDisabled)
}

func TestService_ValidateToken(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Token expirado", func(t *testing.T) {
		s := newTestService(t, now)
		session, err := s.Login("admin", "s3nha-forte")
		require.NoError(t, err)

		s.WithClock(func() time.Time { return now.Add(31 * time.Minute) })

		_, err = s.ValidateToken(session.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("Token assinado com outra chave", func(t *testing.T) {
		s := newTestService(t, now)

		claims := domain.Claims{
			Username: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("outra-chave"))
		require.NoError(t, err)

		_, err = s.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token malformado", func(t *testing.T) {
		s := newTestService(t, now)

		_, err := s.ValidateToken("nao-e-um-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
