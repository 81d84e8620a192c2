package credentials

import (
	"context"
	"os"

	"github.com/vfg2006/streamboard-api/internal/domain"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// GoogleServiceAccount resolve a chave de conta de serviço da conta, seja ela
// informada inline (credentials_json) ou por arquivo (credentials_path).
func GoogleServiceAccount(ctx context.Context, account domain.AccountConfig, scopes ...string) (option.ClientOption, error) {
	ref := account.Credentials

	var data []byte
	switch {
	case ref.JSON != "":
		data = []byte(ref.JSON)
	case ref.Path != "":
		content, err := os.ReadFile(ref.Path)
		if err != nil {
			return nil, domain.NewAuthError(account.Provider, account.Name, "arquivo de credenciais ilegível", err)
		}
		data = content
	default:
		return nil, domain.NewAuthError(account.Provider, account.Name, "credentials_path ou credentials_json não informado", nil)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, domain.NewAuthError(account.Provider, account.Name, "chave de conta de serviço inválida", err)
	}

	return option.WithCredentials(creds), nil
}
