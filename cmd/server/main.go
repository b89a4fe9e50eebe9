package main

import (
	"os"
	"strings"
	"time"

	"github.com/cardealer/dealership-gateway/internal/config"
	"github.com/cardealer/dealership-gateway/internal/handlers"
	"github.com/cardealer/dealership-gateway/internal/repository"
	"github.com/cardealer/dealership-gateway/internal/services"
	xhttp "github.com/cardealer/dealership-gateway/pkg/http"
	"github.com/cardealer/dealership-gateway/pkg/logger"
	"github.com/cardealer/dealership-gateway/pkg/pg"
	"github.com/cardealer/dealership-gateway/pkg/prom"
	"github.com/cardealer/dealership-gateway/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	db, err := openStore()
	if err != nil {
		logger.Error("failed connecting to store", "error", err)
		return
	}

	err = pg.Migrate(storeWriteConfig(), config.Get().MigrationsDir)
	if err != nil {
		logger.Error("failed running migrations", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
	if err != nil {
		logger.Error("failed creating metrics", "error", err)
	}
	if config.Get().AppDebugMetricsAddr != "" {
		go func() {
			prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
		}()
	}

	manufacturerRepo := repository.NewManufacturerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	financialRepo := repository.NewFinancialRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)

	// services
	tradeService := services.NewTradeService(db, manufacturerRepo, vehicleRepo, customerRepo, inventoryRepo, financialRepo)
	catalogService := services.NewCatalogService(vehicleRepo, manufacturerRepo, customerRepo, financialRepo)
	authService := services.NewAuthService(operatorRepo, redisAdap, config.Get().SessionTTL)
	healthService := services.NewHealthService(db)

	// handlers
	tradeHandler := handlers.NewTradeHandler(tradeService)
	healthHandler := handlers.NewHealthHandler(healthService)
	pagesHandler, err := handlers.NewPagesHandler(authService, catalogService, config.Get().SessionTTL)
	if err != nil {
		logger.Error("failed creating pages handler", "error", err)
		return
	}

	g := s.Router.Group("/api/v1")
	handlers.RegisterHealthRoutes(g, healthHandler)
	handlers.RegisterPageRoutes(s.Router, pagesHandler)
	// the trade endpoint keeps its original root-level path
	handlers.RegisterTradeRoutes(s.Router, tradeHandler)

	logger.Info("starting dealership gateway",
		"version", version, "commit", commit, "built", date,
		"addr", config.Get().HttpListenAddr)

	s.CloseOnSignal()
	if err := s.ListenAndServe(config.Get().HttpListenAddr); err != nil {
		logger.Error("error in running http-server", "error", err)
	}
}

func openStore() (*pg.DB, error) {
	debug := config.Get().AppEnv == "dev"

	if config.Get().DBDriver == pg.DriverSQLite {
		return pg.CreateSingle(storeWriteConfig(), debug)
	}

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	return pg.CreateReadWrite(readConf, storeWriteConfig(), debug)
}

func storeWriteConfig() pg.Config {
	if config.Get().DBDriver == pg.DriverSQLite {
		return pg.Config{
			Driver: pg.DriverSQLite,
			Path:   config.Get().SQLitePath,
		}
	}
	return pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
