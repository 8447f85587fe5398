package main

import (
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/stockwatch/backend/src/config"
	"github.com/username/stockwatch/backend/src/database"
	"github.com/username/stockwatch/backend/src/handlers"
	"github.com/username/stockwatch/backend/src/logger"
	"github.com/username/stockwatch/backend/src/services"
	"golang.org/x/time/rate"
)

func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := make(map[string]bool)
		for _, o := range config.Cfg.AllowedOrigins {
			allowedOrigins[o] = true
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Stockwatch backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	var priceService services.PriceService
	if config.Cfg.QuoteProvider == "simulated" {
		logger.L.Info("Using simulated quote provider")
		priceService = services.NewSimulatedPriceService(time.Now().UnixNano())
	} else {
		quoteCache := cache.New(config.Cfg.QuoteCacheTTL, 2*config.Cfg.QuoteCacheTTL)
		priceService = services.NewPriceService(config.Cfg, quoteCache)
	}

	stockHandler := handlers.NewStockHandler(priceService)
	txHandler := handlers.NewTransactionHandler()
	portfolioHandler := handlers.NewPortfolioHandler(priceService)

	limiter := rate.NewLimiter(rate.Every(config.Cfg.RateLimitInterval), config.Cfg.RateLimitBurst)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware(limiter))

	r.Get("/", handlers.HandleDashboard)
	r.Get("/health", handlers.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/stock/add", stockHandler.HandleAddStock)
		r.Get("/stocks", stockHandler.HandleListStocks)
		r.Post("/stock/delete/{id}", stockHandler.HandleDeleteStock)
		r.Delete("/stock/{id}", stockHandler.HandleDeleteStock)

		r.Post("/transaction/add", txHandler.HandleAddTransaction)
		r.Get("/transactions", txHandler.HandleListTransactions)

		r.Get("/portfolio", portfolioHandler.HandleGetPortfolio)
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
