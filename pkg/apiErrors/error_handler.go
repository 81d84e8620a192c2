package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/streamboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrInvalidToken       = "AUTH_006" // Token inválido
	ErrExpiredToken       = "AUTH_007" // Token expirado
	ErrLoginDisabled      = "AUTH_011" // Login do painel não configurado

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidParams       = "VAL_004" // days_back ou limit fora dos limites
	ErrNotFound            = "VAL_005" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_006" // Método não suportado pela rota

	// Erros de catálogo
	ErrUnknownProvider  = "CAT_001" // Provedor desconhecido
	ErrUnknownQueryKind = "CAT_002" // Consulta fora do catálogo do provedor

	// Erros do servidor
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_003" // Erro em serviço externo
	ErrCommunication   = "SRV_004" // Erro de comunicação
	ErrAccountTimeout  = "SRV_005" // Conta excedeu o tempo limite
	ErrWarmInProgress  = "SRV_006" // Aquecimento de cache já em andamento
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrLoginDisabled:       http.StatusNotFound,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrInvalidParams:       http.StatusBadRequest,
	ErrNotFound:            http.StatusNotFound,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrUnknownProvider:     http.StatusNotFound,
	ErrUnknownQueryKind:    http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrCommunication:       http.StatusServiceUnavailable,
	ErrAccountTimeout:      http.StatusGatewayTimeout,
	ErrWarmInProgress:      http.StatusConflict,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP de um código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// CodeFor traduz os erros de domínio para códigos da API
func CodeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrUnknownProvider):
		return ErrUnknownProvider
	case errors.Is(err, domain.ErrUnknownQueryKind):
		return ErrUnknownQueryKind
	case errors.Is(err, domain.ErrInvalidParams):
		return ErrInvalidParams
	case errors.Is(err, domain.ErrAccountTimeout):
		return ErrAccountTimeout
	case errors.Is(err, domain.ErrRemoteQuery), errors.Is(err, domain.ErrAuth):
		return ErrExternalService
	}
	return ErrInternalServer
}

// WriteDomainError escreve um erro de domínio com o código correspondente
func WriteDomainError(w http.ResponseWriter, err error) {
	WriteError(w, CodeFor(err), err.Error(), nil)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
