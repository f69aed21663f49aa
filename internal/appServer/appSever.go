// launching the server, job storage, kafka producer and render consumer
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/WB_L3/promo/config"
	"github.com/ds124wfegd/WB_L3/promo/internal/database"
	"github.com/ds124wfegd/WB_L3/promo/internal/pkg/compose"
	"github.com/ds124wfegd/WB_L3/promo/internal/pkg/kafka"
	"github.com/ds124wfegd/WB_L3/promo/internal/pkg/processor"
	"github.com/ds124wfegd/WB_L3/promo/internal/pkg/storage"
	"github.com/ds124wfegd/WB_L3/promo/internal/service"
	"github.com/ds124wfegd/WB_L3/promo/internal/transport"
	"github.com/gin-gonic/gin"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewPipeline builds the campaign renderer from the app section.
func NewPipeline(cfg *config.Config) *processor.Pipeline {
	return processor.NewPipeline(
		storage.NewFileStorage(cfg.App.EventsRoot),
		storage.NewFileStorage(cfg.App.OutputRoot),
		compose.NewTextRenderer(cfg.App.FontPaths),
		processor.Options{
			Background:   cfg.App.Background,
			TargetHeight: cfg.App.TargetHeight,
			Workers:      cfg.App.Workers,
			JPEGQuality:  cfg.App.JPEGQuality,
		},
	)
}

// NewServer serves the render API until SIGINT or SIGTERM.
func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	jobStorage := storage.NewFileStorage(cfg.App.StoragePath)
	jobRepo := database.NewJobRepository(jobStorage)
	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()

	pipeline := NewPipeline(cfg)
	renderService := service.NewRenderService(jobRepo, kafkaProducer, pipeline)
	renderHandler := transport.NewRenderHandler(renderService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		err := srv.Run(cfg, transport.InitRoutes(renderHandler, cfg.Server.Timeout))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

// RunProcessor consumes render jobs until SIGINT or SIGTERM.
func RunProcessor(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	jobRepo := database.NewJobRepository(storage.NewFileStorage(cfg.App.StoragePath))
	runner := processor.NewJobRunner(NewPipeline(cfg), jobRepo)

	processor.StartRenderConsumer(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, runner)
}
