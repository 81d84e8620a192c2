package account

import "errors"

// Erros específicos para o contexto de contas
var (
	ErrDuplicateAccount = errors.New("nome de conta duplicado no provedor")
	ErrNoInitializer    = errors.New("provedor sem adaptador configurado")
	ErrInitializerPanic = errors.New("adaptador interrompido durante a inicialização")
)
