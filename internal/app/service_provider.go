package app

import (
	"context"
	wheelAPI "fortune_wheel/internal/api/wheel"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/config/env"
	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/repository/memory_wheel_repo"
	"fortune_wheel/internal/repository/spin_state_repo"
	"fortune_wheel/internal/repository/wheel_repo"
	"fortune_wheel/internal/service"
	wheelServ "fortune_wheel/internal/service/wheel"
	"fortune_wheel/pkg/logger"
	"fortune_wheel/pkg/wheel"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Logging
	logCfg config.LogConfig
	log    *zap.Logger

	// Auth bits
	jwtCfg config.JWTConfig

	// Wheel bits
	wheelCfg      config.WheelConfig
	wheelRepo     repository.WheelRepository
	spinStateRepo repository.SpinStateRepository
	selector      *wheel.Selector
	wheelServ     service.WheelService
	wheelHand     *wheelAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		sp.log = logger.New(sp.LogCfg().Logger())
	}
	return sp.log
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

// TXManager nil, если колеса хранятся в памяти
func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil && sp.PgConfig().Enabled() {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML(env.WheelConfigPath())
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

// WheelRepository Postgres при заданном PG_DSN, иначе память с колесом из config.yaml
func (sp *ServiceProvider) WheelRepository(ctx context.Context) repository.WheelRepository {
	if sp.wheelRepo == nil {
		if sp.PgConfig().Enabled() {
			sp.wheelRepo = wheel_repo.NewWheelRepository(sp.DBClient(ctx))
		} else {
			sp.Logger().Warn("PG_DSN is empty, wheels are kept in memory")
			sp.wheelRepo = memory_wheel_repo.NewWheelRepository(sp.WheelCfg().Definition())
		}
	}
	return sp.wheelRepo
}

func (sp *ServiceProvider) SpinStateRepository() repository.SpinStateRepository {
	if sp.spinStateRepo == nil {
		sp.spinStateRepo = spin_state_repo.NewSpinStateRepository()
	}
	return sp.spinStateRepo
}

func (sp *ServiceProvider) Selector() *wheel.Selector {
	if sp.selector == nil {
		sp.selector = wheel.NewRandomSelector()
	}
	return sp.selector
}

func (sp *ServiceProvider) WheelService(ctx context.Context) service.WheelService {
	if sp.wheelServ == nil {
		sp.wheelServ = wheelServ.NewWheelService(
			sp.WheelRepository(ctx),
			sp.SpinStateRepository(),
			sp.Selector(),
			sp.TXManager(ctx),
			sp.Logger(),
		)
	}
	return sp.wheelServ
}

func (sp *ServiceProvider) WheelHandler(ctx context.Context) *wheelAPI.Handler {
	if sp.wheelHand == nil {
		sp.wheelHand = wheelAPI.NewHandler(wheelAPI.HandlerDeps{
			Serv: sp.WheelService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.wheelHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Handle("/metrics", promhttp.Handler())

		// Wheel endpoints
		wheelHandler := sp.WheelHandler(ctx)
		r.Route("/wheels", func(rr chi.Router) {
			rr.Get("/", wheelHandler.ListWheels)
			rr.Get("/{id}/layout", wheelHandler.Layout)
			rr.Get("/{id}/bounce", wheelHandler.Bounce)

			// Спины привязаны к игроку из токена
			rr.Group(func(auth chi.Router) {
				auth.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey(), sp.Logger()))
				auth.Post("/", wheelHandler.CreateWheel)
				auth.Post("/{id}/spin", wheelHandler.Spin)
				auth.Post("/{id}/spin/tick", wheelHandler.Tick)
				auth.Post("/{id}/spin/complete", wheelHandler.Complete)
				auth.Post("/{id}/simulate", wheelHandler.Simulate)
			})
		})

		r.With(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey(), sp.Logger())).
			Get("/stats", wheelHandler.Stats)

		sp.router = r
	}

	return sp.router
}

// Close Закрывает пул соединений и сбрасывает буфер логгера
func (sp *ServiceProvider) Close() {
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.log != nil {
		_ = sp.log.Sync()
	}
}
