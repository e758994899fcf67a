package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/internal/usecases/syncing"
	"github.com/admetrica/adsync-api/pkg/apiErrors"
)

// syncRequest é o corpo aceito no disparo manual de sincronização
type syncRequest struct {
	RunType      domain.SyncRunType   `json:"run_type"`
	EntityLevels []domain.EntityLevel `json:"entity_levels"`
	LookbackDays int                  `json:"lookback_days"`
}

// TriggerAccountSync dispara a sincronização de uma conta específica e
// responde com o registro da execução
func TriggerAccountSync(service syncing.Syncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logrus.WithField("account_id", id).Info("Disparo manual de sincronização recebido")

		req := syncRequest{}
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "corpo da requisição inválido", nil)
				return
			}
		}

		if req.RunType == "" {
			req.RunType = domain.SyncRunTypeIncremental
		}

		switch req.RunType {
		case domain.SyncRunTypeFull, domain.SyncRunTypeIncremental, domain.SyncRunTypeMetricsOnly:
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
				"run_type inválido. Valores aceitos: full, incremental, metrics_only", nil)
			return
		}

		run, err := service.Sync(r.Context(), id, domain.SyncOptions{
			RunType:      req.RunType,
			EntityLevels: req.EntityLevels,
			LookbackDays: req.LookbackDays,
		})
		if err != nil {
			// Runs que chegaram a ser criados sempre voltam finalizados sem
			// erro; erro aqui significa que a conta não existe ou o registro
			// não pôde ser criado
			logrus.WithFields(logrus.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Warn("Sincronização manual não pôde ser iniciada")

			apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, err.Error(), nil)
			return
		}

		response := domain.SyncRunResponse{
			RunID:  run.ID,
			Status: run.Status,
		}
		if run.ErrorMessage != nil {
			response.Message = *run.ErrorMessage
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}

// GetSyncRun retorna o registro de uma execução de sincronização
func GetSyncRun(service syncing.Syncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		run, err := service.GetRun(r.Context(), id)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}
		if run == nil {
			apiErrors.WriteError(w, apiErrors.ErrSyncRunNotFound, "execução de sincronização não encontrada", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(run)
	})
}

// ListSyncRuns retorna as execuções mais recentes de uma conta
func ListSyncRuns(service syncing.Syncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit inválido", nil)
				return
			}
			limit = parsed
		}

		runs, err := service.ListRuns(r.Context(), id, limit)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(runs)
	})
}
