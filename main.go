package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventkompass/config"
	"eventkompass/cron"
	"eventkompass/handlers"
	"eventkompass/middleware"
	"eventkompass/models"
	"eventkompass/routes"
	"eventkompass/services/auth"
	"eventkompass/services/discovery"
	ai "eventkompass/services/intelligence"
	"eventkompass/services/metrics"
	"eventkompass/services/pages"
	"eventkompass/services/session"
	"eventkompass/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	metricsSvc := metrics.NewService()
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute

	// Session store.
	var (
		store   session.Store
		sweeper session.Sweeper
	)
	switch strings.ToLower(config.AppConfig.SessionBackend) {
	case "redis":
		if err := utils.InitSessionCache(); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		redisStore := session.NewRedisStore(utils.GetSessionCacheClient(), sessionTTL)
		if key := config.AppConfig.SessionEncryptionKey; key != "" {
			sealer, err := session.NewSealer(key)
			if err != nil {
				logger.Sugar().Fatalf("main: %v", err)
			}
			redisStore.WithSealer(sealer)
		}
		store = redisStore
	default:
		mem := session.NewMemoryStore()
		store, sweeper = mem, mem
	}
	defaults := session.Defaults{
		Language: models.ParseLanguage(config.AppConfig.DefaultLanguage, models.LanguageDE),
		Location: config.AppConfig.DefaultLocation,
	}
	sessionSvc := session.NewService(store, defaults, logger)

	// AI gateway.
	gateway, aiClients := newGateway(ctx, defaults.Language, metricsSvc, logger)

	// Services.
	discoverySvc := discovery.NewService(gateway, sessionSvc, metricsSvc, logger)
	authSvc := auth.NewMockAuthService(time.Duration(config.AppConfig.AuthDelayMs)*time.Millisecond, logger)
	grievanceSvc := pages.NewGrievanceService(logger)

	limiter := middleware.NewRateLimiter(config.AppConfig.MaxRequestsPerMin)

	// The worker keeps the /health snapshot current; take the first one now.
	utils.CheckHealth(ctx, utils.GetSessionCacheClient())
	worker, err := cron.NewWorker(cron.Jobs{
		Sessions:   sweeper,
		SessionTTL: sessionTTL,
		Redis:      utils.GetSessionCacheClient(),
		Limiter:    limiter,
	}, metricsSvc, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to schedule housekeeping: %v", err)
	}
	worker.Start()

	if err := handlers.RegisterValidators(); err != nil {
		logger.Sugar().Fatalf("main: failed to register validators: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.TrustedProxies()); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics(metricsSvc))
	router.Use(limiter.Middleware())
	router.MaxMultipartMemory = handlers.MaxFileSize

	sessionHandler := handlers.NewSessionHandler(sessionSvc)
	discoveryHandler := handlers.NewDiscoveryHandler(discoverySvc)
	sttHandler := handlers.NewSTTHandler(gateway)
	authHandler := handlers.NewAuthHandler(authSvc, sessionSvc)
	bookingHandler := handlers.NewBookingHandler(discoverySvc)
	pagesHandler := handlers.NewPagesHandler(grievanceSvc, sessionSvc)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions: sessionSvc,

		HealthHandler:  handlers.HealthHandler,
		MetricsHandler: handlers.MetricsHandler(metricsSvc),

		GetSessionHandler:     sessionHandler.GetSessionHandler,
		SetLanguageHandler:    sessionHandler.SetLanguageHandler,
		ToggleLanguageHandler: sessionHandler.ToggleLanguageHandler,
		SetLocationHandler:    sessionHandler.SetLocationHandler,
		NavigateHandler:       sessionHandler.NavigateHandler,

		CategoriesHandler:       discoveryHandler.CategoriesHandler,
		SearchHandler:           discoveryHandler.SearchHandler,
		DiscoverHandler:         discoveryHandler.DiscoverHandler,
		CurrentDiscoveryHandler: discoveryHandler.CurrentDiscoveryHandler,
		AISTTHandler:            sttHandler.AISTTHandler,

		LoginHandler:    authHandler.LoginHandler,
		RegisterHandler: authHandler.RegisterHandler,
		LogoutHandler:   authHandler.LogoutHandler,

		ProfileHandler:       bookingHandler.ProfileHandler,
		ListBookingsHandler:  bookingHandler.ListBookingsHandler,
		AddBookingHandler:    bookingHandler.AddBookingHandler,
		DeleteBookingHandler: bookingHandler.DeleteBookingHandler,
		CalendarHandler:      bookingHandler.CalendarHandler,
		ShareHandler:         bookingHandler.ShareHandler,

		TranslationsHandler: handlers.TranslationsHandler,
		PageHandler:         pagesHandler.PageHandler,
		GrievanceHandler:    pagesHandler.GrievanceHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, sessionTTL)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Stop(shutdownCtx)
	if client := utils.GetSessionCacheClient(); client != nil {
		aiClients = append(aiClients, client)
	}
	closeAll(aiClients, logger)

	logger.Sugar().Info("main: server stopped gracefully")
}

// newGateway wires the Gemini backends and returns the clients to close on
// shutdown. Missing credentials leave the gateway without backends, so every
// call takes its failure path.
func newGateway(ctx context.Context, lang models.Language, m *metrics.Service, logger *zap.Logger) (*ai.DefaultGateway, []io.Closer) {
	gw := &ai.DefaultGateway{
		SearchModel: config.AppConfig.GeminiSearchModel,
		MapsModel:   config.AppConfig.GeminiMapsModel,
		Metrics:     m,
		Logger:      logger,
	}
	apiKey := config.AppConfig.GeminiAPIKey
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY is not set; AI features will answer with their fallbacks")
		return gw, nil
	}

	var closers []io.Closer

	grounded, err := ai.NewGroundedClient(ctx, apiKey)
	if err != nil {
		logger.Error("Failed to create grounded client", zap.Error(err))
	} else {
		gw.Grounded = grounded
		closers = append(closers, grounded)
	}

	gemini, err := ai.NewGeminiClient(ctx, apiKey, config.AppConfig.GeminiTextModel)
	if err != nil {
		logger.Error("Failed to create Gemini client", zap.Error(err))
	} else {
		gw.Classifier = gemini
		gw.Transcriber = gemini
		closers = append(closers, gemini)
	}

	if strings.EqualFold(config.AppConfig.STTProvider, "google") {
		stt, err := ai.NewCloudSpeechTranscriber(ctx, config.AppConfig.GoogleServiceAccountFile, speechLanguage(lang))
		if err != nil {
			logger.Error("Failed to create Cloud Speech client, using Gemini transcription", zap.Error(err))
		} else {
			gw.Transcriber = stt
			closers = append(closers, stt)
		}
	}
	return gw, closers
}

// closeAll closes every client and logs the failures.
func closeAll(closers []io.Closer, logger *zap.Logger) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warn("main: failed to close client", zap.Error(err))
		}
	}
}

func speechLanguage(lang models.Language) string {
	if lang == models.LanguageEN {
		return "en-US"
	}
	return "de-DE"
}
