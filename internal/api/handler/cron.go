package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/internal/scheduler"
	"github.com/admetrica/adsync-api/pkg/apiErrors"
	"github.com/admetrica/adsync-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypePlatform    = "platform"
	CronJobTypeAggregation = "aggregation"
	CronJobTypeCleanup     = "cleanup"
	CronJobTypeAll         = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	PlatformSyncService    *scheduler.PlatformSyncService
	AggregationSyncService *scheduler.AggregationSyncService
	CleanupService         *scheduler.CleanupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || !userClaims.CanTrigger() {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "O portador não pode executar cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypePlatform:
			if services.PlatformSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de plataformas não disponível", nil)
				return
			}
			services.PlatformSyncService.TriggerManualSync()

		case CronJobTypeAggregation:
			if services.AggregationSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de agregação não disponível", nil)
				return
			}
			services.AggregationSyncService.TriggerManualSync()

		case CronJobTypeCleanup:
			if services.CleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza não disponível", nil)
				return
			}
			services.CleanupService.TriggerManualSync()

		case CronJobTypeAll:
			if services.PlatformSyncService != nil {
				services.PlatformSyncService.TriggerManualSync()
			}
			if services.AggregationSyncService != nil {
				services.AggregationSyncService.TriggerManualSync()
			}
			if services.CleanupService != nil {
				services.CleanupService.TriggerManualSync()
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: platform, aggregation, cleanup, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || !userClaims.CanTrigger() {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "O portador não pode verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"platform":    services.PlatformSyncService.GetStatus(),
			"aggregation": services.AggregationSyncService.GetStatus(),
			"cleanup":     services.CleanupService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
