package domain

// AccountStatus representa o ciclo de vida de uma conta registrada
type AccountStatus string

const (
	AccountStatusUninitialized AccountStatus = "uninitialized"
	AccountStatusActive        AccountStatus = "active"
	AccountStatusError         AccountStatus = "error"
)

// CredentialsRef aponta para o material de autenticação de uma conta.
// Só a camada de credenciais interpreta estes campos.
type CredentialsRef struct {
	Path              string `json:"-"`
	JSON              string `json:"-"`
	ClientSecretsPath string `json:"-"`
	TokenPath         string `json:"-"`
	AccessKeyID       string `json:"-"`
	SecretAccessKey   string `json:"-"`
}

// IsZero indica que nenhuma credencial foi informada
func (c CredentialsRef) IsZero() bool {
	return c == CredentialsRef{}
}

// AccountConfig é a configuração declarada de uma conta de um provedor
type AccountConfig struct {
	Name        string         `json:"name"`
	Provider    Provider       `json:"provider"`
	Credentials CredentialsRef `json:"-"`
	PropertyID  string         `json:"property_id,omitempty"`
	AccountID   string         `json:"account_id,omitempty"`
	Region      string         `json:"region,omitempty"`
	Enabled     bool           `json:"enabled"`
}

// AccountState é o estado de execução de uma conta dentro do registro.
// Client é o handle autenticado devolvido pelo adaptador do provedor.
type AccountState struct {
	Config    AccountConfig `json:"config"`
	Status    AccountStatus `json:"status"`
	Client    any           `json:"-"`
	LastError string        `json:"last_error,omitempty"`
}

// IsActive indica se a conta pode ser consultada
func (s AccountState) IsActive() bool {
	return s.Status == AccountStatusActive
}

// ProviderStatus resume o registro de um provedor para o painel de status
type ProviderStatus struct {
	Provider Provider       `json:"provider"`
	Enabled  bool           `json:"enabled"`
	Accounts []AccountState `json:"accounts"`
	Active   int            `json:"active"`
	Failed   int            `json:"failed"`
}
