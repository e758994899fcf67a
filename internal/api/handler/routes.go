package handler

import (
	"net/http"

	"github.com/admetrica/adsync-api/internal/api/handler/router"
	"github.com/admetrica/adsync-api/internal/usecases/caching"
	"github.com/admetrica/adsync-api/internal/usecases/insighting"
	"github.com/admetrica/adsync-api/internal/usecases/syncing"
	"github.com/admetrica/adsync-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func MetricSeries(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts/:id/metrics",
			Method:      http.MethodGet,
			Handler:     GetMetricSeries(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Syncs(service syncing.Syncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts/:id/sync",
			Method:      http.MethodPost,
			Handler:     TriggerAccountSync(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.TriggerOnly()},
		},
		{
			Path:        "/v1/accounts/:id/sync-runs",
			Method:      http.MethodGet,
			Handler:     ListSyncRuns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sync-runs/:id",
			Method:      http.MethodGet,
			Handler:     GetSyncRun(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CacheAdmin(cache caching.Cache) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cache/invalidate",
			Method:      http.MethodPost,
			Handler:     InvalidateCache(cache),
			Middlewares: []func(http.Handler) http.Handler{middleware.TriggerOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.TriggerOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.TriggerOnly()},
		},
	}
}
