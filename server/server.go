package server

import (
	"chat-server/auth"
	"chat-server/confs"
	"chat-server/db"
	"chat-server/handlers"
	httpHandler "chat-server/handlers/http"
	"chat-server/repositories"
	"chat-server/usecases"
	"chat-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	db  db.Database
	cfg *confs.Config
}

func NewServer(database db.Database, cfg *confs.Config) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
		cfg: cfg,
	}
}

// setupRoutes wires repositories, use cases and handlers onto the engine.
func (s *Server) setupRoutes() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	roomRepo := repositories.NewChatRoomPgRepository(s.db)

	// Initialize use cases
	authUseCase := usecases.NewAuthUseCase(userRepo, auth.NewTokenManager(s.cfg.JWTSecret))
	chatUseCase := usecases.NewChatUseCase(roomRepo, userRepo)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUseCase)
	chatHandler := httpHandler.NewChatHandler(chatUseCase)
	taskHandler := httpHandler.NewTaskHandler()

	// WebSocket manager and relay handler
	manager := ws.NewManager()
	wsHandler := handlers.NewChatWSHandler(manager, chatUseCase)

	// Auth routes
	authRoutes := s.app.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Chat room routes
	chatRoutes := s.app.Group("/chat")
	{
		chatRoutes.POST("/create-room", chatHandler.CreateRoom)
		chatRoutes.POST("/join-room", chatHandler.JoinRoom)
	}

	// Task routes (stubs)
	taskRoutes := s.app.Group("/task")
	{
		taskRoutes.POST("/create-task", taskHandler.CreateTask)
		taskRoutes.PUT("/update-task/:taskId", taskHandler.UpdateTask)
		taskRoutes.DELETE("/delete-task/:taskId", taskHandler.DeleteTask)
	}

	s.app.GET("/ws", wsHandler.HandleChatWS)
}

func (s *Server) Start() {
	s.setupRoutes()
	if err := s.app.Run("0.0.0.0:" + s.cfg.Port); err != nil {
		panic(err)
	}
}
