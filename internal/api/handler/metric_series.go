package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/internal/usecases/insighting"
	"github.com/admetrica/adsync-api/pkg/apiErrors"
	"github.com/admetrica/adsync-api/pkg/log"
	"github.com/admetrica/adsync-api/pkg/utils"
)

// GetMetricSeries devolve a série de métricas de uma conta na resolução
// pedida, servida do cache quando possível
func GetMetricSeries(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		query := r.URL.Query()

		if query.Get("start_date") == "" || query.Get("end_date") == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "é necessário informar start_date e end_date", nil)
			return
		}

		startDate, err := utils.ParseDate(query.Get("start_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"start_date": query.Get("start_date"),
				"error":      err.Error(),
			}).Warn("series: parâmetro start_date inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		endDate, err := utils.ParseDate(query.Get("end_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"end_date":   query.Get("end_date"),
				"error":      err.Error(),
			}).Warn("series: parâmetro end_date inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		resolution := domain.Resolution(query.Get("resolution"))
		if resolution == "" {
			resolution = domain.ResolutionDaily
		}

		entityLevel := domain.EntityLevel(query.Get("entity_level"))
		if entityLevel == "" {
			entityLevel = domain.EntityLevelCampaign
		}

		filters := &domain.SeriesFilters{
			AccountID:   id,
			EntityLevel: entityLevel,
			EntityID:    query.Get("entity_id"),
			Resolution:  resolution,
			StartDate:   startDate,
			EndDate:     endDate,
		}

		logger.WithFields(log.Fields{
			"account_id": id,
			"resolution": string(resolution),
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Debug("series: consultando série de métricas")

		series, err := service.GetMetricSeries(r.Context(), filters)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Error("series: erro ao consultar série de métricas")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(series); err != nil {
			logger.WithError(err).Error("series: erro ao serializar a resposta")
		}
	})
}
