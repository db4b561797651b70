package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/behaviorplanner/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/behaviorplanner/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/behaviorplanner/pkg/http/server"
	"github.com/lintang-b-s/behaviorplanner/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type API struct {
	log    *zap.Logger
	hub    *controllers.Hub
	metric *metrics.Metric
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			Behavior Planner API
//	@version		1.0
//	@description	Lane-change trajectory cost evaluation for an autonomous-driving behavior planner.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Handler(config http_server.Config, plannerService controllers.PlannerService) http.Handler {
	registry := prometheus.NewRegistry()
	api.metric = metrics.NewMetric(registry)
	api.metric.TrackRoutes("/api/evaluateTrajectories", "/metrics")

	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	group := router_helper.NewRouteGroup(router, "/api")
	plannerRoutes := controllers.New(plannerService, api.metric, api.log)
	plannerRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), api.metric.HttpMiddleware}
	if config.UseRateLimit {
		mwChain = append(mwChain, Limit(config.RateLimit, config.RateBurst))
	}
	mainMwChain := alice.New(mwChain...).Then(router)
	if config.Timeout > 0 {
		mainMwChain = http.TimeoutHandler(mainMwChain, config.Timeout, "request timed out")
	}

	// the websocket stream hijacks the connection, so it bypasses the wrapping middlewares.
	api.hub = controllers.NewHub(plannerService, api.metric)
	mux := http.NewServeMux()
	mux.Handle("/ws/evaluate", alice.New(api.recoverPanic, RealIP).ThenFunc(api.handleWebsocket))
	mux.Handle("/", mainMwChain)
	return mux
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	plannerService controllers.PlannerService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(config, plannerService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		api.hub.RemoveAllUser()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		api.hub.RemoveAllUser()
		return nil
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
