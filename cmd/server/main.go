// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"literarychat/internal/config"
	"literarychat/internal/domain"
	"literarychat/internal/handlers"
	"literarychat/internal/middleware"
	"literarychat/internal/ratelimit"
	bookrepo "literarychat/internal/repository/book"
	characterrepo "literarychat/internal/repository/character"
	conversationrepo "literarychat/internal/repository/conversation"
	messagerepo "literarychat/internal/repository/message"
	"literarychat/internal/services"
	"literarychat/internal/services/ai"
	"literarychat/internal/services/chat"
	"literarychat/internal/services/tts"
	"literarychat/internal/services/vectorstore"
)

func newVectorStore(cfg *config.Config) (vectorstore.Store, error) {
	logger := services.NewLogger("vectorstore")
	if cfg.VectorBackend == "pinecone" {
		return vectorstore.NewPineconeStore(cfg.PineconeAPIKey, cfg.PineconeIndexHost, logger)
	}
	return vectorstore.NewLocalStore(cfg.VectorStoreDir, logger)
}

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}
	if err := db.AutoMigrate(&domain.Book{}, &domain.Character{}, &domain.Conversation{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	bookRepo := bookrepo.NewBookRepository(db)
	characterRepo := characterrepo.NewCharacterRepository(db)
	conversationRepo := conversationrepo.NewConversationRepository(db)
	messageRepo := messagerepo.NewMessageRepository(db)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.EmbeddingKey = cfg.EmbeddingAPIKey
	aiConfig.EmbeddingBaseURL = cfg.EmbeddingBaseURL
	aiConfig.EmbeddingModel = cfg.EmbeddingModel
	aiConfig.LLMKey = cfg.LLMAPIKey
	aiConfig.LLMBaseURL = cfg.LLMBaseURL
	aiConfig.ChatModel = cfg.ChatModel

	aiProvider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI provider: %v", err)
	}

	store, err := newVectorStore(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize vector store (%s): %v", cfg.VectorBackend, err)
	}

	var speechService *services.SpeechService
	if cfg.TTSAPIKey != "" {
		ttsConfig := tts.DefaultConfig()
		ttsConfig.APIKey = cfg.TTSAPIKey
		ttsConfig.DefaultVoice = cfg.TTSDefaultVoice
		ttsProvider, err := tts.NewGoogleProvider(context.Background(), ttsConfig)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize TTS provider: %v", err)
		}
		speechService = services.NewSpeechService(ttsProvider, cfg.MediaRoot, cfg.TTSDefaultVoice, services.NewLogger("speech"))
	} else {
		log.Println("TTS_API_KEY not set; replies will have no audio")
	}

	chatConfig := chat.DefaultConfig()
	chatConfig.RetrievalTopK = cfg.RetrievalTopK

	queryService, err := services.NewQueryService(chatConfig, aiProvider, store, services.NewLogger("query"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize query service: %v", err)
	}
	chatService, err := services.NewChatService(chatConfig, characterRepo, conversationRepo, messageRepo,
		queryService, speechService, services.NewLogger("chat"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize chat service: %v", err)
	}
	indexingService, err := services.NewIndexingService(bookRepo, aiProvider, store, services.NewLogger("indexing"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize indexing service: %v", err)
	}
	libraryService, err := services.NewLibraryService(bookRepo, characterRepo, services.NewLogger("library"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize library service: %v", err)
	}

	// --- Handlers ---
	secretKey := []byte(cfg.SessionSecret)
	pageHandler := handlers.NewPageHandler(libraryService, chatService)
	chatHandler := handlers.NewChatHandler(chatService)
	adminHandler := handlers.NewAdminHandler(libraryService, indexingService, cfg.AdminPasswordHash, secretKey)

	// --- Rate Limiters ---
	messageLimiter := ratelimit.NewMemoryLimiter(ratelimit.DefaultChatConfig())
	defer messageLimiter.Close()
	loginLimiter := ratelimit.NewMemoryLimiter(ratelimit.AdminLoginConfig())
	defer loginLimiter.Close()

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Static Assets ---
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaRoot))))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	// --- Visitor Routes (session-scoped) ---
	site := r.PathPrefix("/").Subrouter()
	site.Use(middleware.EnsureSession(secretKey))
	site.HandleFunc("/", pageHandler.ShowHomePage).Methods("GET")
	site.HandleFunc("/book/{id:[0-9]+}/", pageHandler.ShowBookPage).Methods("GET")
	site.HandleFunc("/chat/{id:[0-9]+}/", pageHandler.ShowChatPage).Methods("GET")
	site.Handle("/send/{id:[0-9]+}/",
		middleware.RateLimitMiddleware(messageLimiter, "send")(http.HandlerFunc(chatHandler.SendMessage))).Methods("POST")
	site.HandleFunc("/delete-conversation/{id:[0-9]+}/", chatHandler.DeleteConversation).Methods("POST")

	// --- Admin Routes ---
	r.HandleFunc("/admin/login", pageHandler.ShowAdminLoginPage).Methods("GET")
	r.Handle("/admin/login",
		middleware.RateLimitMiddleware(loginLimiter, "admin-login")(http.HandlerFunc(adminHandler.Login))).Methods("POST")

	adminPageRoutes := r.PathPrefix("/admin").Subrouter()
	adminPageRoutes.Use(middleware.RequireAdmin(secretKey))
	adminPageRoutes.HandleFunc("", pageHandler.ShowAdminPage).Methods("GET")

	adminAPIRoutes := r.PathPrefix("/api/admin").Subrouter()
	adminAPIRoutes.Use(middleware.RequireAdmin(secretKey))
	adminAPIRoutes.HandleFunc("/books", adminHandler.ListBooks).Methods("GET")
	adminAPIRoutes.HandleFunc("/books", adminHandler.CreateBook).Methods("POST")
	adminAPIRoutes.HandleFunc("/books/process", adminHandler.ProcessBooks).Methods("POST")
	adminAPIRoutes.HandleFunc("/characters", adminHandler.CreateCharacter).Methods("POST")

	// --- Custom Error Handlers ---
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHandler.ShowNotFoundPage(w)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHandler.ShowErrorPage(w, http.StatusMethodNotAllowed, "Method not allowed", "The method is not allowed for this resource.")
	})

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Literary Chat starting on port %s (vector backend: %s)", cfg.ServerPort, cfg.VectorBackend)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
