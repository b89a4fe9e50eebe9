package main

import (
	"context"
	"crypto/subtle"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cardealer/dealership-gateway/internal/config"
	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/internal/repository"
	"github.com/cardealer/dealership-gateway/internal/services"
	"github.com/cardealer/dealership-gateway/pkg/pg"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// The admin console executes operator-supplied SQL directly against the
// store. It bypasses the invariants the gateway enforces, so it runs as
// its own binary on its own port and only admits operators with the
// admin role.

type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

type QueryResponse struct {
	Rows         []map[string]any `json:"rows,omitempty"`
	RowsAffected int64            `json:"rows_affected"`
}

type Handler struct {
	db        *pg.DB
	operators *repository.OperatorRepository
}

func NewHandler(db *pg.DB, operators *repository.OperatorRepository) *Handler {
	return &Handler{db: db, operators: operators}
}

// RequireAdmin admits only basic-auth credentials belonging to an
// operator with the admin role.
func (h *Handler) RequireAdmin(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		c.Header("WWW-Authenticate", `Basic realm="admin"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "credentials required"})
		return
	}

	op, err := h.operators.GetByUsername(c.Request.Context(), username)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	given := services.HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(given), []byte(op.PasswordHash)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if op.Role != model.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	log.Info().Str("operator", op.Username).Msg("Admin authenticated")
	c.Next()
}

// RunQuery executes one SQL statement and returns its rows, or the
// affected row count for statements that produce none.
func (h *Handler) RunQuery(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	query := strings.TrimSpace(req.Query)
	log.Info().Str("query", query).Msg("Executing admin query")

	ctx := c.Request.Context()
	if isReadQuery(query) {
		var rows []map[string]any
		tx := h.db.Read(ctx).Raw(query).Find(&rows)
		if tx.Error != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": tx.Error.Error()})
			return
		}
		c.JSON(http.StatusOK, QueryResponse{Rows: rows, RowsAffected: tx.RowsAffected})
		return
	}

	tx := h.db.Write(ctx).Exec(query)
	if tx.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": tx.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, QueryResponse{RowsAffected: tx.RowsAffected})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	sqlDB, err := h.db.Read(c.Request.Context()).DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

func isReadQuery(query string) bool {
	q := strings.ToLower(query)
	return strings.HasPrefix(q, "select") || strings.HasPrefix(q, "with") || strings.HasPrefix(q, "explain")
}

// SetupRouter configures all routes
func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Msg("Request processed")
	})

	v1 := router.Group("/api/v1")
	v1.Use(handler.RequireAdmin)
	{
		v1.POST("/query", handler.RunQuery)
	}

	router.GET("/health", handler.HealthCheck)

	return router
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.Load(envPath()); err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	db, err := openStore()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to store")
	}

	handler := NewHandler(db, repository.NewOperatorRepository(db))
	router := SetupRouter(handler)

	srv := &http.Server{
		Addr:         config.Get().AdminListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Admin console started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down admin console...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func openStore() (*pg.DB, error) {
	if config.Get().DBDriver == pg.DriverSQLite {
		return pg.CreateSingle(pg.Config{
			Driver: pg.DriverSQLite,
			Path:   config.Get().SQLitePath,
		}, false)
	}
	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}
	return pg.CreateReadWrite(readConf, writeConf, false)
}

func envPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				log.Error().Err(err).Msg("Failed to open the passed env file")
				return ""
			}
			return s[1]
		}
	}
	return ""
}
