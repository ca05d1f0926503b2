package container

import (
	"fmt"
	"net/http"

	"go-screenshot-detector/internal/config"
	"go-screenshot-detector/internal/detector"
	"go-screenshot-detector/internal/factory"
	"go-screenshot-detector/internal/logger"
	"go-screenshot-detector/internal/observer"
	"go-screenshot-detector/internal/repository"
	"go-screenshot-detector/internal/service"
	"go-screenshot-detector/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config           *config.Config
	sourceFactory    factory.SourceFactory
	imageRepository  repository.ImageRepository
	detector         detector.ScreenshotDetector
	detectionService service.DetectionService
	counts           *observer.CountsObserver
	handler          http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Build dependency graph
	sourceFactory := factory.NewSourceFactory(cfg.ImageFetchTimeout)
	imageRepository := repository.NewSourceImageRepository(sourceFactory)

	recognizer := detector.NewTesseractRecognizer(cfg.OCRLanguage)
	screenshotDetector := detector.NewScreenshotDetector(cfg.ScoreThreshold, recognizer)

	counts := observer.NewCountsObserver()
	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(counts)

	detectionService := service.NewDetectionService(imageRepository, screenshotDetector, events)
	handler := transport.NewHandler(detectionService, counts, cfg)

	return &Container{
		config:           cfg,
		sourceFactory:    sourceFactory,
		imageRepository:  imageRepository,
		detector:         screenshotDetector,
		detectionService: detectionService,
		counts:           counts,
		handler:          handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// DetectionService returns the detection service
func (c *Container) DetectionService() service.DetectionService {
	return c.detectionService
}
