package credentials

import (
	"context"
	"os"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultTokenPath = "token.json"

// storedToken aceita tanto o formato do golang.org/x/oauth2 quanto o
// formato "authorized_user" gravado pelas bibliotecas Python do Google.
type storedToken struct {
	AccessToken  string `json:"access_token"`
	Token        string `json:"token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	Expiry       string `json:"expiry"`
}

func (s storedToken) toOAuth2() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  s.AccessToken,
		TokenType:    s.TokenType,
		RefreshToken: s.RefreshToken,
	}
	if tok.AccessToken == "" {
		tok.AccessToken = s.Token
	}

	if expiry, err := time.Parse(time.RFC3339, s.Expiry); err == nil {
		tok.Expiry = expiry
	} else if tok.RefreshToken != "" {
		// sem validade conhecida: força a renovação no primeiro uso
		tok.Expiry = time.Now().Add(-time.Minute)
	}

	return tok
}

func readToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, errors.Wrap(err, "token em formato inválido")
	}

	tok := stored.toOAuth2()
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, errors.New("token sem access_token e sem refresh_token")
	}

	return tok, nil
}

func writeToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// persistingTokenSource grava no disco cada token renovado
type persistingTokenSource struct {
	base oauth2.TokenSource
	path string

	mu   sync.Mutex
	last string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := writeToken(s.path, tok); err != nil {
			logrus.WithFields(logrus.Fields{
				"token_path": s.path,
				"error":      err.Error(),
			}).Warn("credentials: não foi possível gravar o token renovado")
		}
	}

	return tok, nil
}

// GoogleOAuthToken monta credenciais OAuth de usuário a partir do arquivo de
// client secrets e do token já autorizado. O fluxo interativo de consentimento
// não é executado aqui: sem token gravado a conta falha com AuthError.
func GoogleOAuthToken(ctx context.Context, account domain.AccountConfig, scopes ...string) (option.ClientOption, error) {
	ref := account.Credentials
	if ref.ClientSecretsPath == "" {
		return nil, domain.NewAuthError(account.Provider, account.Name, "client_secrets_path não informado", nil)
	}

	secrets, err := os.ReadFile(ref.ClientSecretsPath)
	if err != nil {
		return nil, domain.NewAuthError(account.Provider, account.Name, "arquivo de client secrets ilegível", err)
	}

	conf, err := google.ConfigFromJSON(secrets, scopes...)
	if err != nil {
		return nil, domain.NewAuthError(account.Provider, account.Name, "client secrets inválido", err)
	}

	tokenPath := ref.TokenPath
	if tokenPath == "" {
		tokenPath = defaultTokenPath
	}

	tok, err := readToken(tokenPath)
	if err != nil {
		return nil, domain.NewAuthError(account.Provider, account.Name, "token OAuth ausente ou inválido, autorize a conta novamente", err)
	}

	src := &persistingTokenSource{
		base: conf.TokenSource(ctx, tok),
		path: tokenPath,
		last: tok.AccessToken,
	}

	if _, err := src.Token(); err != nil {
		return nil, domain.NewAuthError(account.Provider, account.Name, "token OAuth rejeitado", err)
	}

	return option.WithTokenSource(oauth2.ReuseTokenSource(nil, src)), nil
}
