package server

import (
	"context"
	"net/http"
	"time"

	"github.com/coachably/coachpay/internal/config"
	feesdomain "github.com/coachably/coachpay/internal/fees/domain"
	obsmetrics "github.com/coachably/coachpay/internal/observability/metrics"
	paymentdomain "github.com/coachably/coachpay/internal/payment/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg        config.Config
	Log        *zap.Logger
	WebhookSvc paymentdomain.Service
	Resolver   feesdomain.Resolver
	Calculator feesdomain.Calculator
	Solver     feesdomain.Solver
	Metrics    *obsmetrics.Metrics `optional:"true"`
}

type Server struct {
	cfg        config.Config
	log        *zap.Logger
	webhookSvc paymentdomain.Service
	resolver   feesdomain.Resolver
	calculator feesdomain.Calculator
	solver     feesdomain.Solver
	metrics    *obsmetrics.Metrics
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:        p.Cfg,
		log:        p.Log.Named("http.server"),
		webhookSvc: p.WebhookSvc,
		resolver:   p.Resolver,
		calculator: p.Calculator,
		solver:     p.Solver,
		metrics:    p.Metrics,
	}
}

func NewEngine(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	return r
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))
	}

	r.POST("/webhooks/payments/:provider", s.HandlePaymentWebhook)

	v1 := r.Group("/v1")
	v1.GET("/pricing/gross", s.HandleGrossAmount)
	v1.GET("/pricing/breakdown", s.HandleBreakdown)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http.access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, r *gin.Engine, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.RegisterRoutes(r)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			s.log.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(run),
)
