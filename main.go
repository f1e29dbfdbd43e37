package main

import (
	"log"

	"talkdata/agent"
	"talkdata/ai"
	"talkdata/cache"
	"talkdata/config"
	_ "talkdata/docs" // Swagger docs
	"talkdata/engine"
	"talkdata/handlers"
	"talkdata/sqlfix"
	"talkdata/store"
	"talkdata/suggest"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	cfg := config.GetConfig()

	// Initialize document store
	st, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Initialize cache
	appCache := cache.New()

	// Initialize DashScope AI client
	aiService, err := ai.New(cfg.APIKey, cfg.ModelName, cfg.APIBaseURL, appCache)
	if err != nil {
		log.Fatalf("Failed to initialize AI service: %v", err)
	}
	defer aiService.Close()

	// Initialize query engine (optional)
	var eng *engine.Service
	if cfg.SQLServer.Server != "" && cfg.SQLServer.Database != "" {
		eng, err = engine.New(cfg.SQLServer)
		if err != nil {
			log.Printf("Warning: Failed to initialize query engine: %v", err)
			log.Println("Query execution features will be unavailable")
			eng = nil
		} else {
			defer eng.Close()
			log.Println("Query engine initialized successfully")
		}
	}

	// Load dataset descriptors from directory into the store
	loaded, err := st.LoadDatasetsFromDir(cfg.DatasetsDir)
	if err != nil {
		log.Printf("Warning: Failed to load dataset descriptors: %v", err)
	} else {
		log.Printf("Loaded %d dataset descriptors into store", loaded)
	}

	// Wire up the conversation pipeline
	repairer := sqlfix.New(cfg.LabelColumns...)
	suggestSvc := suggest.New(st, aiService)
	var agentEngine agent.Engine
	if eng != nil {
		agentEngine = eng
	}
	ag := agent.New(aiService, agentEngine, suggestSvc, repairer)

	// Initialize handlers
	h := handlers.New(st, aiService, eng, ag, suggestSvc)

	// Setup Gin router
	r := gin.Default()

	// CORS configuration - allow all origins, headers and methods
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS", "HEAD"}
	r.Use(cors.New(corsConfig))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Routes
	r.GET("/health", h.HealthHandler)

	r.POST("/api/chat/message", h.ChatMessageHandler)
	r.POST("/api/chat/message/stream", h.ChatMessageStreamHandler)
	r.POST("/api/chat/suggestions", h.SuggestionsHandler)
	r.GET("/api/chat/history/:chat_id", h.GetChatHistoryHandler)
	r.GET("/api/chat/history/dataset/:dataset_id", h.ListChatsByDatasetHandler)
	r.DELETE("/api/chat/history/:chat_id", h.DeleteChatHandler)
	r.GET("/api/chat/list", h.ListChatsHandler)

	r.POST("/api/query/execute", h.ExecuteQueryHandler)
	r.POST("/api/query/assist", h.AssistQueryHandler)

	r.GET("/api/datasets", h.ListDatasetsHandler)
	r.GET("/api/datasets/:dataset_id", h.GetDatasetHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
