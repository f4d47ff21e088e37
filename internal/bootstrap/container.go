package bootstrap

import (
	"log"

	"invoice-review-be/internal/config"
	"invoice-review-be/internal/controller"
	"invoice-review-be/internal/pkg/logger"
	"invoice-review-be/internal/repository/unitofwork"
	"invoice-review-be/internal/service"
	"invoice-review-be/pkg/extraction"

	pktNats "invoice-review-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ChunkController    controller.IChunkController

	// Background Services (Exposed for main.go to run)
	ProcessingService service.IProcessingService

	Logger logger.ILogger
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

	// 3. Extraction Provider based on Config
	var provider extraction.Provider
	if cfg.Extraction.Provider == "ollama" {
		provider = extraction.NewOllamaProvider(
			cfg.Extraction.OllamaBaseURL,
			cfg.Extraction.OllamaModel,
		)
		log.Printf("[INFO] Using Extraction Provider: OLLAMA (%s)", cfg.Extraction.OllamaModel)
	} else {
		provider = extraction.NewGeminiProvider(
			cfg.Extraction.GeminiApiKey,
			cfg.Extraction.GeminiModel,
		)
		log.Printf("[INFO] Using Extraction Provider: GEMINI (%s)", cfg.Extraction.GeminiModel)
	}

	// 4. NATS (optional, lifecycle events only)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.ProcessingTopic, pubSub)
	processingService := service.NewProcessingService(
		cfg.App.ProcessingTopic,
		pubSub,
		uowFactory,
		provider,
		natsPub,
		sysLogger,
	)

	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub)
	chunkService := service.NewChunkService(uowFactory, natsPub)

	// 6. Controllers
	return &Container{
		DocumentController: controller.NewDocumentController(documentService),
		ChunkController:    controller.NewChunkController(chunkService),

		ProcessingService: processingService,

		Logger: sysLogger,
	}
}
