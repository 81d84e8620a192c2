package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/internal/usecases/account"
	"github.com/vfg2006/streamboard-api/internal/usecases/insighting"
	"github.com/vfg2006/streamboard-api/pkg/apiErrors"
)

// AccountQueryResponse é a resposta da consulta a uma única conta
type AccountQueryResponse struct {
	Provider    domain.Provider    `json:"provider"`
	Account     string             `json:"account"`
	Kind        domain.QueryKind   `json:"kind"`
	Params      domain.QueryParams `json:"params"`
	Result      *domain.Result     `json:"result"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// QueryAll combina a consulta de todas as contas ativas do provedor
func QueryAll(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps := httprouter.ParamsFromContext(r.Context())

		provider, err := domain.ParseProvider(ps.ByName("provider"))
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		params, err := parseQueryParams(r)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		kind := domain.QueryKind(ps.ByName("kind"))

		result, err := service.QueryAll(r.Context(), provider, kind, params)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"provider": provider,
				"kind":     kind,
				"error":    err.Error(),
			}).Warn("Erro ao consultar provedor")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// QueryAccount consulta uma única conta; contas inativas recebem dados de demonstração
func QueryAccount(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps := httprouter.ParamsFromContext(r.Context())

		provider, err := domain.ParseProvider(ps.ByName("provider"))
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		params, err := parseQueryParams(r)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		accountName := ps.ByName("account")
		kind := domain.QueryKind(ps.ByName("kind"))

		result, err := service.QueryAccount(r.Context(), provider, accountName, kind, params)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"provider": provider,
				"account":  accountName,
				"kind":     kind,
				"error":    err.Error(),
			}).Warn("Erro ao consultar conta")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AccountQueryResponse{
			Provider:    provider,
			Account:     accountName,
			Kind:        kind,
			Params:      params,
			Result:      result,
			GeneratedAt: time.Now().UTC(),
		})
	}
}

// ListAccounts lista as contas registradas de um provedor
func ListAccounts(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, err := domain.ParseProvider(httprouter.ParamsFromContext(r.Context()).ByName("provider"))
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		status, err := service.ProviderStatus(provider)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

// parseQueryParams lê days_back e limit. Ausentes ficam zerados e a consulta
// aplica os padrões; presentes precisam estar dentro dos limites.
func parseQueryParams(r *http.Request) (domain.QueryParams, error) {
	query := r.URL.Query()
	params := domain.QueryParams{}

	var err error
	if raw := query.Get("days_back"); raw != "" {
		if params.DaysBack, err = boundedInt(raw, "days_back", domain.MaxDaysBack); err != nil {
			return params, err
		}
	}
	if raw := query.Get("limit"); raw != "" {
		if params.Limit, err = boundedInt(raw, "limit", domain.MaxLimit); err != nil {
			return params, err
		}
	}

	return params, nil
}

func boundedInt(raw, name string, max int) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 || value > max {
		return 0, errors.Wrapf(domain.ErrInvalidParams, "%s deve estar entre 1 e %d", name, max)
	}
	return value, nil
}
