package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/prtracker/prtracker/internal/auth"
	"github.com/prtracker/prtracker/internal/config"
	"github.com/prtracker/prtracker/internal/db"
	"github.com/prtracker/prtracker/internal/exercises"
	"github.com/prtracker/prtracker/internal/middleware"
	"github.com/prtracker/prtracker/internal/records"
	"github.com/prtracker/prtracker/internal/strava"
	"github.com/prtracker/prtracker/internal/telemetry/metrics"
	"github.com/prtracker/prtracker/internal/telemetry/tracing"
	"github.com/prtracker/prtracker/internal/users"
	"github.com/prtracker/prtracker/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient *redis.Client
	authService *auth.Service

	stravaClient *strava.Client
	stravaSyncer *strava.Syncer

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	JWTSecret               string
	StravaClientID          string
	StravaClientSecret      string
	StravaRedirectURI       string
	RedisPassword           string
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if err := db.ApplySchema(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("apply db schema: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "prtracker-backend")
	if err != nil {
		return nil, err
	}

	usersRepo := users.NewRepo(dbPool)
	authService := auth.NewService(params.JWTSecret, auth.TokenTTL, usersRepo)

	stravaClient := strava.NewClient(strava.NewClientParams{
		APIBaseURL:   params.Config.StravaApiBaseURL,
		AuthBaseURL:  params.Config.StravaAuthBaseURL,
		ClientID:     params.StravaClientID,
		ClientSecret: params.StravaClientSecret,
		RedirectURI:  params.StravaRedirectURI,
	})
	stravaRepo := strava.NewRepo(dbPool)
	stravaSyncer := strava.NewSyncer(
		stravaClient,
		stravaRepo,
		metricsManager,
		params.Config.StravaSyncPageSize,
	)

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient: rdb,
		authService: authService,

		stravaClient: stravaClient,
		stravaSyncer: stravaSyncer,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	usersRepo := users.NewRepo(s.dbPool)
	usersHandler := users.NewHandler(usersRepo, s.authService, s.metricsManager)
	r.HandleFunc("/register", usersHandler.HandleRegister).Methods("POST", "OPTIONS").Name("register")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	r.Handle(
		"/login",
		middleware.RateLimit(
			reqRateLimiter, "login", s.config.LoginRateLimitAllowedPerMin,
		)(http.HandlerFunc(usersHandler.HandleLogin)),
	).Methods("POST", "OPTIONS").Name("login")

	exercisesHandler := exercises.NewHandler(exercises.NewRepo(s.dbPool))
	r.HandleFunc("/exo", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exo", exercisesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")

	recordsHandler := records.NewHandler(records.NewRepo(s.dbPool), s.metricsManager)
	r.HandleFunc("/pr-types", recordsHandler.HandleDistinctTypes).Methods("GET", "OPTIONS").Name("record-types")
	r.HandleFunc("/get-personal-record/{pr_type}/{exo_name}", recordsHandler.HandleListByType).
		Methods("GET", "OPTIONS").Name("records-by-type")
	r.HandleFunc("/personal-record", recordsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-records")
	r.HandleFunc("/personal-record", recordsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-record")
	r.HandleFunc("/personal-record", recordsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-record")

	stravaRepo := strava.NewRepo(s.dbPool)
	stravaHandler := strava.NewHandler(
		s.stravaClient,
		s.stravaSyncer,
		stravaRepo,
		strava.NewStateStore(s.redisClient),
		strava.GenerateStateString,
	)
	r.HandleFunc("/strava/login", stravaHandler.HandleLogin).Methods("GET", "OPTIONS").Name("strava-login")
	r.HandleFunc("/strava/callback", stravaHandler.HandleCallback).Methods("GET", "OPTIONS").Name("strava-callback")
	r.HandleFunc("/strava/sync", stravaHandler.HandleSync).Methods("GET", "OPTIONS").Name("strava-sync")
	r.HandleFunc("/activities", stravaHandler.HandleActivities).Methods("GET", "OPTIONS").Name("list-activities")

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, fmt.Sprintf("prtracker backend, version: %s", s.versionInfo))
	}).Methods("GET", "OPTIONS").Name("root")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
