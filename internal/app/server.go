// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"ead-service/internal/config"
	"ead-service/internal/db"
	adminHandler "ead-service/internal/handlers/admin"
	authHandler "ead-service/internal/handlers/auth"
	certHandler "ead-service/internal/handlers/certificate"
	courseHandler "ead-service/internal/handlers/course"
	guardHandler "ead-service/internal/handlers/guard"
	inventoryHandler "ead-service/internal/handlers/inventory"
	playerHandler "ead-service/internal/handlers/player"
	profileHandler "ead-service/internal/handlers/profile"
	"ead-service/internal/middleware"
	"ead-service/internal/pkg/jwt"
	"ead-service/internal/pkg/kv"
	"ead-service/internal/repository/ead"
	"ead-service/internal/repository/postgres"
	accesslogsvc "ead-service/internal/service/accesslog"
	"ead-service/internal/service/actor"
	certsvc "ead-service/internal/service/certificate"
	coursesvc "ead-service/internal/service/course"
	invsvc "ead-service/internal/service/inventory"
	playersvc "ead-service/internal/service/player"
	progresssvc "ead-service/internal/service/progress"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Println("[POSTGRES] connected")

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT manager: %w", err)
	}

	// ----- Actor gate -----
	backend := actor.NewHTTPActor(s.cfg.ActorBaseURL, s.cfg.ActorTimeout)
	gate := actor.NewGate(backend, logger)

	// ----- Repositories -----
	store := kv.NewRedis(redisClient)
	courseRepo := ead.NewCourseRepository(store, logger)
	profileRepo := ead.NewProfileRepository(store, logger)
	progressRepo := ead.NewProgressRepository(store, logger)
	certRepo := ead.NewCertificateRepository(store, logger)
	logRepo := ead.NewAccessLogRepository(store, logger)
	dbWrapper := postgres.NewDB(pool)
	inventoryRepo := postgres.NewInventoryRepository(dbWrapper)

	if err := inventoryRepo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure inventory schema: %w", err)
	}

	// ----- Services -----
	courseService := coursesvc.NewService(courseRepo, logger)
	progressService := progresssvc.NewService(progressRepo)
	certService := certsvc.NewService(certRepo, logger)
	accessLogService := accesslogsvc.NewService(logRepo, logger)
	playerService := playersvc.NewService(courseRepo, progressRepo, certService, logger)
	inventoryService := invsvc.NewService(inventoryRepo, logger)

	// ----- Handlers -----
	guardHandlerInst := guardHandler.NewGuardHandler(gate, s.cfg.StatusTimeout)
	authHandlerInst := authHandler.NewAuthHandler(jwtManager.Generator, s.cfg.BootstrapSecretHash, logger)
	profileHandlerInst := profileHandler.NewProfileHandler(gate, profileRepo, accessLogService)
	courseHandlerInst := courseHandler.NewCourseHandler(courseService, progressService)
	playerHandlerInst := playerHandler.NewPlayerHandler(playerService, gate, profileRepo)
	streamHandlerInst := playerHandler.NewStreamHandler(playerHandlerInst, logger)
	certHandlerInst := certHandler.NewCertificateHandler(certService)
	adminHandlerInst := adminHandler.NewAdminHandler(gate, courseService, certService)
	inventoryHandlerInst := inventoryHandler.NewInventoryHandler(inventoryService)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(jwtManager.Verifier, gate)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.CORS(s.cfg.AllowedOrigins),
	)

	// ----- Router -----
	handlers := &Handlers{
		GuardHandler:     guardHandlerInst,
		AuthHandler:      authHandlerInst,
		ProfileHandler:   profileHandlerInst,
		CourseHandler:    courseHandlerInst,
		PlayerHandler:    playerHandlerInst,
		StreamHandler:    streamHandlerInst,
		CertHandler:      certHandlerInst,
		AdminHandler:     adminHandlerInst,
		InventoryHandler: inventoryHandlerInst,
		AuthMiddleware:   authMiddleware,
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
