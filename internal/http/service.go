package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/config"
	"github.com/tuanvumaihuynh/inventory-service/internal/http/apierr"
	"github.com/tuanvumaihuynh/inventory-service/internal/http/metric"
	"github.com/tuanvumaihuynh/inventory-service/internal/http/middleware"
	"github.com/tuanvumaihuynh/inventory-service/internal/http/swagger"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-service/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg       config.HTTP
	logger    *slog.Logger
	metrics   *metric.Metrics
	validator validator.Validator

	healthChecker db.HealthChecker

	inventorySvc service.InventoryService
	orderSvc     service.OrderService
	adminSvc     service.AdminService
	staffSvc     service.StaffService
	userSvc      service.UserService
	authSvc      service.AuthService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	v validator.Validator,
	healthChecker db.HealthChecker,
	inventorySvc service.InventoryService,
	orderSvc service.OrderService,
	adminSvc service.AdminService,
	staffSvc service.StaffService,
	userSvc service.UserService,
	authSvc service.AuthService,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        log.With(slog.String("service", "http")),
		metrics:       metric.New(),
		validator:     v,
		healthChecker: healthChecker,
		inventorySvc:  inventorySvc,
		orderSvc:      orderSvc,
		adminSvc:      adminSvc,
		staffSvc:      staffSvc,
		userSvc:       userSvc,
		authSvc:       authSvc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.AllowedOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	productHandler := newProductHandler(s, s.inventorySvc)
	orderHandler := newOrderHandler(s, s.orderSvc)
	accountHandler := newAccountHandler(s, s.adminSvc, s.staffSvc, s.userSvc, s.authSvc)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.listProducts)
			r.Post("/", productHandler.createProduct)
			r.Get("/low-stock", productHandler.listLowStockProducts)
			r.Get("/stock-status", productHandler.stockStatus)
			r.Post("/check-stock", productHandler.checkStock)
			r.Post("/export", productHandler.exportProducts)
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", productHandler.getProduct)
				r.Put("/", productHandler.updateProduct)
				r.Delete("/", productHandler.deleteProduct)
				r.Post("/replenish", productHandler.replenishStock)
			})
		})

		r.Post("/orders/checkout", orderHandler.checkout)
		r.Post("/alerts/clear", productHandler.clearAlerts)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/", accountHandler.listAdmins)
			r.Post("/", accountHandler.createAdmin)
			r.Route("/{adminId}", func(r chi.Router) {
				r.Get("/", accountHandler.getAdmin)
				r.Put("/", accountHandler.updateAdmin)
				r.Delete("/", accountHandler.deleteAdmin)
			})
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", accountHandler.listStaff)
			r.Post("/", accountHandler.createStaff)
			r.Route("/{staffId}", func(r chi.Router) {
				r.Get("/", accountHandler.getStaff)
				r.Put("/", accountHandler.updateStaff)
				r.Delete("/", accountHandler.deleteStaff)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", accountHandler.listUsers)
			r.Post("/", accountHandler.createUser)
			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", accountHandler.getUser)
				r.Put("/", accountHandler.updateUser)
				r.Delete("/", accountHandler.deleteUser)
			})
		})

		r.Post("/auth/login", accountHandler.login)
		r.Post("/auth/register/super-admin", accountHandler.registerSuperAdmin)
	})

	r.Get("/healthz", s.healthz)

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

func (s *Service) healthz(w http.ResponseWriter, r *http.Request) {
	healthy, err := s.healthChecker.IsHealthy(r.Context())
	if err != nil || !healthy {
		s.writeError(w, r, apperr.DatabaseUnavailableErr.WrapParent(err))
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeAndValidate parses a JSON request body into dst and runs the
// struct validator over it.
func (s *Service) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.ValidationErr.WrapParent(err)
	}

	if err := s.validator.Validate(dst); err != nil {
		return err
	}

	return nil
}

func (s *Service) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}

func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
