package service

import (
	"context"
	"errors"
	"time"

	"go-screenshot-detector/internal/detector"
	apperrors "go-screenshot-detector/internal/errors"
	"go-screenshot-detector/internal/observer"
	"go-screenshot-detector/internal/repository"
	"go-screenshot-detector/internal/strategy"
	"go-screenshot-detector/pkg/models"
)

// DetectionService defines the interface for running screenshot detection
// against a source reference
type DetectionService interface {
	// DetectScreenshot resolves the reference and runs the full pass
	DetectScreenshot(ctx context.Context, ref string, opts detector.DetectionOptions) (*models.DetectionResponse, error)

	// DetectWithProfile runs detection under a named threshold profile
	DetectWithProfile(ctx context.Context, ref string, profile string, opts detector.DetectionOptions) (*models.DetectionResponse, error)

	// ValidateSourceRef validates a source reference without loading it
	ValidateSourceRef(ref string) error
}

// detectionService implements DetectionService
type detectionService struct {
	imageRepo repository.ImageRepository
	detector  detector.ScreenshotDetector
	events    observer.Subject
}

// NewDetectionService creates a new detection service
func NewDetectionService(
	imageRepo repository.ImageRepository,
	screenshotDetector detector.ScreenshotDetector,
	events observer.Subject,
) DetectionService {
	return &detectionService{
		imageRepo: imageRepo,
		detector:  screenshotDetector,
		events:    events,
	}
}

// DetectScreenshot resolves the reference and runs the full pass
func (s *detectionService) DetectScreenshot(ctx context.Context, ref string, opts detector.DetectionOptions) (*models.DetectionResponse, error) {
	return s.detect(ctx, ref, strategy.NewDefaultStrategy(s.detector), opts)
}

// DetectWithProfile runs detection under a named threshold profile. The
// profile only moves the decision threshold; extraction and scoring are
// identical.
func (s *detectionService) DetectWithProfile(ctx context.Context, ref string, profile string, opts detector.DetectionOptions) (*models.DetectionResponse, error) {
	return s.detect(ctx, ref, strategy.StrategyFor(profile, s.detector), opts)
}

func (s *detectionService) detect(ctx context.Context, ref string, det strategy.DetectionStrategy, opts detector.DetectionOptions) (*models.DetectionResponse, error) {
	start := time.Now()

	if err := s.ValidateSourceRef(ref); err != nil {
		return nil, err
	}

	s.publish(ctx, observer.DetectionEvent{
		EventType: observer.DetectionStarted,
		Timestamp: start,
		Reference: ref,
	})

	src, err := s.imageRepo.ResolveImage(ctx, ref)
	if err != nil {
		s.publish(ctx, observer.DetectionEvent{
			EventType:      observer.SourceResolveFailed,
			Timestamp:      time.Now(),
			Reference:      ref,
			ProcessingTime: time.Since(start),
			ErrorMessage:   err.Error(),
		})
		s.publish(ctx, observer.DetectionEvent{
			EventType:      observer.DetectionFailed,
			Timestamp:      time.Now(),
			Reference:      ref,
			ProcessingTime: time.Since(start),
			ErrorMessage:   err.Error(),
		})
		return nil, wrapResolveError(ref, err)
	}

	s.publish(ctx, observer.DetectionEvent{
		EventType: observer.SourceResolved,
		Timestamp: time.Now(),
		Reference: ref,
		Success:   true,
	})

	report := det.Detect(src, opts)
	elapsed := time.Since(start)

	s.publish(ctx, observer.DetectionEvent{
		EventType:      observer.DetectionCompleted,
		Timestamp:      time.Now(),
		Reference:      ref,
		ProcessingTime: elapsed,
		Success:        true,
		Score:          report.Score,
		IsScreenshot:   report.IsScreenshot,
	})

	return &models.DetectionResponse{
		Source:            ref,
		Timestamp:         start.UTC().Format(time.RFC3339),
		ProcessingTimeSec: elapsed.Seconds(),
		Report:            report,
	}, nil
}

// ValidateSourceRef validates a source reference without loading it. The
// validator already returns typed application errors.
func (s *detectionService) ValidateSourceRef(ref string) error {
	return s.imageRepo.ValidateSourceRef(ref)
}

func (s *detectionService) publish(ctx context.Context, event observer.DetectionEvent) {
	if s.events != nil {
		s.events.NotifyObservers(ctx, event)
	}
}

// wrapResolveError maps resolution failures onto the app error taxonomy,
// preserving typed errors the storage layer already classified.
func wrapResolveError(ref string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError("timed out resolving "+ref, err)
	}
	return apperrors.NewInternalError("failed to resolve "+ref, err)
}
