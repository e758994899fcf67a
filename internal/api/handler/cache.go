package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/internal/usecases/caching"
	"github.com/admetrica/adsync-api/pkg/apiErrors"
)

// invalidateRequest aceita invalidação por substring de chave ou por recurso
type invalidateRequest struct {
	Pattern      string `json:"pattern"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
}

// InvalidateCache remove entradas do cache por padrão de chave ou por recurso
func InvalidateCache(cache caching.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := invalidateRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "corpo da requisição inválido", nil)
			return
		}

		var invalidated int64

		switch {
		case req.Pattern != "":
			invalidated = cache.InvalidateByPattern(r.Context(), req.Pattern)
		case req.ResourceType != "" && req.ResourceID != "":
			invalidated = cache.InvalidateByResource(r.Context(), req.ResourceType, req.ResourceID)
		default:
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData,
				"é necessário informar pattern ou resource_type e resource_id", nil)
			return
		}

		logrus.WithFields(logrus.Fields{
			"pattern":       req.Pattern,
			"resource_type": req.ResourceType,
			"resource_id":   req.ResourceID,
			"invalidated":   invalidated,
		}).Info("Invalidação manual do cache executada")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"invalidated": invalidated})
	})
}
