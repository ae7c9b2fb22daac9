package http

import (
	"context"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/smsflt/sms-filter/internal/cache"
	"github.com/smsflt/sms-filter/internal/classifier"
	"github.com/smsflt/sms-filter/internal/config"
	"github.com/smsflt/sms-filter/internal/http/middleware"
	"github.com/smsflt/sms-filter/internal/metrics"
	"github.com/smsflt/sms-filter/internal/repository"
	"github.com/smsflt/sms-filter/internal/service/classify"
)

type Server struct{ e *echo.Echo }

// NewServer wires repositories, the classify service, and routes.
// rds may be nil; the verdict cache is skipped in that case.
func NewServer(cfg config.Config, sqliteDB *sqlx.DB, rds *redis.Client, clf classifier.Classifier) *Server {
	messagesRepo := repository.NewMessagesRepository(sqliteDB)

	var verdicts *cache.Verdicts
	if rds != nil {
		verdicts = cache.NewVerdicts(rds, cfg.Cache.TTL)
	}

	classifySvc := classify.New(messagesRepo, clf, verdicts)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger(), middleware.RequestID())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// routes
	e.POST("/classify", classifyHandler(classifySvc))
	e.GET("/messages", listMessagesHandler(messagesRepo))
	e.PUT("/messages/:id", updateMessageHandler(messagesRepo))
	e.DELETE("/messages/:id", deleteMessageHandler(messagesRepo))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
