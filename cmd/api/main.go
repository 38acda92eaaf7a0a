package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cleberrangel/edge-relay-api/internal/client"
	"github.com/cleberrangel/edge-relay-api/internal/config"
	"github.com/cleberrangel/edge-relay-api/internal/estimator"
	"github.com/cleberrangel/edge-relay-api/internal/handler"
	"github.com/cleberrangel/edge-relay-api/internal/logger"
	"github.com/cleberrangel/edge-relay-api/internal/metrics"
	"github.com/cleberrangel/edge-relay-api/internal/service"
	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

const shutdownTimeout = 10 * time.Second

func main() {
	// Carrega configurações
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Erro ao carregar configurações: %v", err)
	}

	// Inicializa logger estruturado
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.Global()
	log.Info().
		Str("version", Version).
		Str("port", cfg.Port).
		Str("metrics_port", cfg.MetricsPort).
		Str("log_level", cfg.LogLevel).
		Bool("dev", cfg.Dev()).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Edge Relay API iniciando")

	if cfg.TurnstileSecret == "" {
		log.Warn().Msg("TURNSTILE_SECRET_KEY ausente: /v1/contact/send responderá 500")
	}
	if cfg.ResendAPIKey == "" || cfg.ContactToEmail == "" {
		log.Warn().Msg("RESEND_API_KEY ou CONTACT_TO_EMAIL ausente: envio de e-mail desabilitado")
	}

	// Inicializa dependências
	gate := service.NewOriginGate(cfg.AllowedOrigins, cfg.Dev())
	contactService := service.NewContactService(
		service.ContactConfig{
			VerificationSecret: cfg.TurnstileSecret,
			EmailAPIKey:        cfg.ResendAPIKey,
			ToEmail:            cfg.ContactToEmail,
			FromEmail:          cfg.FromEmail,
			Dev:                cfg.Dev(),
		},
		client.NewTurnstileClient(cfg.TurnstileSecret, cfg.TurnstileVerifyURL),
		client.NewResendClient(cfg.ResendAPIKey, cfg.ResendAPIURL),
	)
	estimatorService := estimator.NewService(estimator.Options{})

	// Configura modo do Gin
	gin.SetMode(cfg.GinMode)

	r := handler.NewRouter(handler.RouterDeps{
		Version:   Version,
		Gate:      gate,
		Relayer:   contactService,
		Estimator: estimatorService,
		Dev:       cfg.Dev(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	servers := []*http.Server{srv}
	if cfg.MetricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		servers = append(servers, &http.Server{
			Addr:              ":" + cfg.MetricsPort,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	for _, s := range servers {
		go func(s *http.Server) {
			log.Info().Str("addr", s.Addr).Msg("Servidor iniciando")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Str("addr", s.Addr).Msg("Erro ao iniciar servidor")
			}
		}(s)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Encerrando servidores")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, s := range servers {
		if err := s.Shutdown(ctx); err != nil {
			log.Error().Err(err).Str("addr", s.Addr).Msg("Encerramento forçado")
		}
	}

	log.Info().Msg("Servidor encerrado")
}
