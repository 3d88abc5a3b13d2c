package bootstrap

import (
	"context"
	"log"

	"case-knowledge-be/internal/config"
	"case-knowledge-be/internal/controller"
	"case-knowledge-be/internal/pkg/logger"
	"case-knowledge-be/internal/repository/contract"
	"case-knowledge-be/internal/repository/implementation"
	"case-knowledge-be/internal/repository/memory"
	"case-knowledge-be/internal/repository/unitofwork"
	"case-knowledge-be/internal/service"
	"case-knowledge-be/pkg/answer"
	"case-knowledge-be/pkg/embedding"
	"case-knowledge-be/pkg/extract"
	"case-knowledge-be/pkg/llm/factory"
	"case-knowledge-be/pkg/ocr"
	"case-knowledge-be/pkg/storage"
	"case-knowledge-be/pkg/summarizer"
	"case-knowledge-be/pkg/transcribe"

	pktNats "case-knowledge-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// embeddingDimensions matches the vector(768) column; both supported
// embedding models emit 768-dim vectors.
const embeddingDimensions = 768

type Container struct {
	// Controllers
	FileController   controller.IFileController
	SearchController controller.ISearchController
	ChatController   controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.FastModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (fast=%s, reasoning=%s)",
		cfg.Ai.LLMProvider, cfg.Ai.FastModel, cfg.Ai.ReasoningModel)

	// 3.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	var guard contract.ConversationGuard
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, using in-memory busy flags: %v", err)
		guard = memory.NewConversationGuard()
	} else {
		guard = implementation.NewRedisConversationGuard(rdb)
	}

	var blobStore storage.BlobStore
	if cfg.Storage.Driver == "http" {
		blobStore = storage.NewHTTPStore(cfg.Storage.BaseURL, cfg.Storage.Token)
	} else {
		blobStore = storage.NewLocalStore(cfg.Storage.BaseDir)
	}

	// 4. Pipeline Components
	extractor := extract.NewExtractor(
		ocr.NewGeminiProvider(cfg.Keys.GoogleGemini),
		transcribe.NewGeminiProvider(cfg.Keys.GoogleGemini),
	)
	smr := summarizer.NewSummarizer(llmProvider, cfg.Ai.FastModel)
	batchEmbedder := embedding.NewBatchEmbedder(embeddingProvider, cfg.Ai.EmbedBatchSize, embeddingDimensions)
	answerRouter := answer.NewRouter(llmProvider, cfg.Ai.FastModel, cfg.Ai.ReasoningModel)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.ProcessFileTopic)
	ingestionService := service.NewIngestionService(
		uowFactory,
		blobStore,
		extractor,
		smr,
		batchEmbedder,
		natsPub,
		sysLogger,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.ProcessFileTopic,
		ingestionService,
		sysLogger,
	)

	fileService := service.NewFileService(uowFactory, publisherService)
	searchService := service.NewSearchService(uowFactory, embeddingProvider, sysLogger)
	chatService := service.NewChatService(uowFactory, searchService, answerRouter, guard, sysLogger)

	// 6. Controllers
	return &Container{
		FileController:   controller.NewFileController(fileService),
		SearchController: controller.NewSearchController(searchService),
		ChatController:   controller.NewChatController(chatService),

		ConsumerService: consumerService,
	}
}
