package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownProvider  = errors.New("provedor desconhecido")
	ErrUnknownQueryKind = errors.New("consulta desconhecida")
	ErrInvalidParams    = errors.New("parâmetros inválidos")
	ErrShapeMismatch    = errors.New("formato de resultado inesperado")

	ErrInitialization = errors.New("falha ao inicializar conta")
	ErrRemoteQuery    = errors.New("falha na consulta remota")
	ErrAuth           = errors.New("credenciais inválidas ou ausentes")
	ErrAccountTimeout = errors.New("tempo limite da conta excedido")
	ErrMalformedData  = errors.New("resposta remota em formato inesperado")
)

// InitializationError é registrado quando uma conta não consegue ser ativada
type InitializationError struct {
	Provider Provider
	Account  string
	Err      error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("%s: conta %q (%s): %v", ErrInitialization, e.Account, e.Provider, e.Err)
}

func (e *InitializationError) Unwrap() []error {
	return []error{ErrInitialization, e.Err}
}

// RemoteQueryError é uma falha de consulta atribuída a uma única conta
type RemoteQueryError struct {
	Provider Provider
	Account  string
	Kind     QueryKind
	Err      error
}

func NewRemoteQueryError(provider Provider, account string, kind QueryKind, err error) *RemoteQueryError {
	return &RemoteQueryError{Provider: provider, Account: account, Kind: kind, Err: err}
}

func (e *RemoteQueryError) Error() string {
	return fmt.Sprintf("%s: %s/%s conta %q: %v", ErrRemoteQuery, e.Provider, e.Kind, e.Account, e.Err)
}

func (e *RemoteQueryError) Unwrap() []error {
	return []error{ErrRemoteQuery, e.Err}
}

// AuthError indica credencial ausente, ilegível ou rejeitada
type AuthError struct {
	Provider Provider
	Account  string
	Details  string
	Err      error
}

func NewAuthError(provider Provider, account, details string, err error) *AuthError {
	return &AuthError{Provider: provider, Account: account, Details: details, Err: err}
}

func (e *AuthError) Error() string {
	msg := fmt.Sprintf("%s: %s conta %q", ErrAuth, e.Provider, e.Account)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAuth}
	}
	return []error{ErrAuth, e.Err}
}
