package server

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"studyroom-backend/internal/auth"
	"studyroom-backend/internal/config"
	"studyroom-backend/internal/handler"
	"studyroom-backend/internal/service"
)

// Server Fiber 서버 래퍼
type Server struct {
	app            *fiber.App
	cfg            *config.Config
	db             *gorm.DB
	logger         hclog.Logger
	jwtManager     *auth.JWTManager
	healthHandler  *handler.HealthHandler
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	roomHandler    *handler.RoomHandler
	feedHandler    *handler.FeedHandler
	commentHandler *handler.CommentHandler
}

// New 새 서버 인스턴스 생성
func New(cfg *config.Config, db *gorm.DB) *Server {
	app := fiber.New(fiber.Config{
		AppName:       "Studyroom API",
		ServerHeader:  "Fiber",
		StrictRouting: false,
		CaseSensitive: true,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		IdleTimeout:   cfg.Server.IdleTimeout,
		BodyLimit:     cfg.Server.BodyLimit,
	})

	rootLogger := hclog.New(&hclog.LoggerOptions{
		Name:       "studyroom",
		Level:      hclog.LevelFromString(cfg.Log.Level),
		JSONFormat: cfg.Log.JSON,
	})

	jwtManager := auth.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)

	members := service.NewMemberService(db, rootLogger)
	rooms := service.NewRoomService(db, rootLogger)
	feeds := service.NewFeedService(db, members, rootLogger)
	comments := service.NewCommentService(db, members, rootLogger)
	users := service.NewUserService(db, cfg.Auth.BcryptCost, rootLogger)

	return &Server{
		app:            app,
		cfg:            cfg,
		db:             db,
		logger:         rootLogger.Named("server"),
		jwtManager:     jwtManager,
		healthHandler:  handler.NewHealthHandler(db),
		authHandler:    handler.NewAuthHandler(users, jwtManager, cfg.Auth.SecureCookie),
		userHandler:    handler.NewUserHandler(users, cfg.Auth.SecureCookie),
		roomHandler:    handler.NewRoomHandler(rooms),
		feedHandler:    handler.NewFeedHandler(feeds),
		commentHandler: handler.NewCommentHandler(comments),
	}
}

// App 내부 Fiber 인스턴스 (테스트용)
func (s *Server) App() *fiber.App {
	return s.app
}

// SetupMiddleware 미들웨어 설정
func (s *Server) SetupMiddleware() {
	// 패닉 복구
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// 로깅
	s.app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	// CORS. fiber 는 와일드카드 오리진과 credentials 의 조합을 거부하므로
	// 오리진이 명시된 경우에만 credentials 를 허용한다.
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORS.AllowOrigins,
		AllowHeaders:     s.cfg.CORS.AllowHeaders,
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: s.cfg.CORS.AllowOrigins != "*",
	}))
}

// SetupRoutes 라우트 설정
func (s *Server) SetupRoutes() {
	// 헬스체크
	s.app.Get("/health", s.healthHandler.Check)
	s.app.Get("/health/live", s.healthHandler.Liveness)

	// Rate Limiter (인증 엔드포인트 Brute Force 방지)
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, please try again later",
			})
		},
	})

	authRequired := auth.AuthMiddleware(s.jwtManager)

	// Auth 라우트 그룹
	authGroup := s.app.Group("/auth")
	authGroup.Post("/register", authLimiter, s.authHandler.Register)
	authGroup.Post("/login", authLimiter, s.authHandler.Login)
	authGroup.Post("/refresh", authLimiter, s.authHandler.RefreshToken)
	authGroup.Post("/logout", authRequired, s.authHandler.Logout)
	authGroup.Get("/me", authRequired, s.authHandler.GetMe)
	authGroup.Put("/me", authRequired, s.authHandler.UpdateMe)

	// User 라우트 그룹 (인증 필요)
	userGroup := s.app.Group("/api/users", authRequired)
	userGroup.Delete("/me", s.userHandler.DeleteMe)

	// Room 라우트 그룹 (인증 필요)
	roomGroup := s.app.Group("/api/rooms", authRequired)
	roomGroup.Post("/", s.roomHandler.CreateRoom)
	roomGroup.Get("/", s.roomHandler.GetMyRooms)
	roomGroup.Get("/:id", s.roomHandler.GetRoom)
	roomGroup.Put("/:id", s.roomHandler.UpdateRoom)
	roomGroup.Delete("/:id", s.roomHandler.DeleteRoom)
	roomGroup.Post("/:id/join", s.roomHandler.JoinRoom)
	roomGroup.Post("/:id/leave", s.roomHandler.LeaveRoom)

	// Feed 라우트 (방 하위 목록 + 단건)
	roomGroup.Get("/:roomId/feeds", s.feedHandler.GetRoomFeeds)
	feedGroup := s.app.Group("/api/feeds", authRequired)
	feedGroup.Post("/", s.feedHandler.CreateFeed)
	feedGroup.Get("/:id", s.feedHandler.GetFeed)
	feedGroup.Put("/:id", s.feedHandler.UpdateFeed)
	feedGroup.Delete("/:id", s.feedHandler.DeleteFeed)

	// Comment 라우트 (게시글 하위 목록 + 단건)
	roomGroup.Get("/:roomId/feeds/:feedId/comments", s.commentHandler.GetFeedComments)
	commentGroup := s.app.Group("/api/comments", authRequired)
	commentGroup.Post("/", s.commentHandler.CreateComment)
	commentGroup.Get("/:id", s.commentHandler.GetComment)
	commentGroup.Put("/:id", s.commentHandler.UpdateComment)
	commentGroup.Delete("/:id", s.commentHandler.DeleteComment)
}

// Start 서버 시작 (Graceful Shutdown 지원)
func (s *Server) Start() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		s.logger.Info("shutting down server")
		if err := s.app.ShutdownWithTimeout(30 * time.Second); err != nil {
			s.logger.Error("server shutdown failed", "error", err)
			os.Exit(1)
		}
	}()

	s.logger.Info("server starting", "port", s.cfg.Server.Port)

	return s.app.Listen(s.cfg.Server.Port)
}

// Shutdown 서버 종료
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(30 * time.Second)
}
