package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DetectionEvent represents one step of a detection call
type DetectionEvent struct {
	EventType      EventType     `json:"event_type"`
	Timestamp      time.Time     `json:"timestamp"`
	Reference      string        `json:"reference"`
	ProcessingTime time.Duration `json:"processing_time"`
	Success        bool          `json:"success"`
	Score          int           `json:"score,omitempty"`
	IsScreenshot   bool          `json:"is_screenshot,omitempty"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// EventType represents the type of detection event
type EventType string

const (
	// DetectionStarted when a detection call begins
	DetectionStarted EventType = "detection_started"
	// DetectionCompleted when a detection call finishes successfully
	DetectionCompleted EventType = "detection_completed"
	// DetectionFailed when a detection call fails
	DetectionFailed EventType = "detection_failed"
	// SourceResolved when the source image is decoded successfully
	SourceResolved EventType = "source_resolved"
	// SourceResolveFailed when source resolution fails
	SourceResolveFailed EventType = "source_resolve_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event DetectionEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event DetectionEvent)
}

// LoggingObserver logs detection events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles detection events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event DetectionEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"reference":       event.Reference,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	switch event.EventType {
	case DetectionStarted:
		o.logger.WithFields(fields).Info("Screenshot detection started")
	case DetectionCompleted:
		fields["score"] = event.Score
		fields["is_screenshot"] = event.IsScreenshot
		o.logger.WithFields(fields).Info("Screenshot detection completed")
	case DetectionFailed:
		o.logger.WithFields(fields).Error("Screenshot detection failed")
	case SourceResolved:
		o.logger.WithFields(fields).Debug("Source image resolved")
	case SourceResolveFailed:
		o.logger.WithFields(fields).Error("Source image resolution failed")
	default:
		o.logger.WithFields(fields).Info("Detection event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// CountsObserver accumulates running totals from detection events
type CountsObserver struct {
	mu                  sync.RWMutex
	totalDetections     int64
	screenshotsDetected int64
	failedDetections    int64
	totalProcessingTime time.Duration
}

// NewCountsObserver creates a new counts observer
func NewCountsObserver() *CountsObserver {
	return &CountsObserver{}
}

// OnEvent handles detection events by updating counters
func (o *CountsObserver) OnEvent(ctx context.Context, event DetectionEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case DetectionCompleted:
		o.totalDetections++
		o.totalProcessingTime += event.ProcessingTime
		if event.IsScreenshot {
			o.screenshotsDetected++
		}
	case DetectionFailed:
		o.totalDetections++
		o.failedDetections++
	}
}

// GetObserverName returns the observer name
func (o *CountsObserver) GetObserverName() string {
	return "counts_observer"
}

// Counts returns the accumulated totals
func (o *CountsObserver) Counts() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	completed := o.totalDetections - o.failedDetections
	avgProcessingTime := time.Duration(0)
	if completed > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(completed)
	}

	return map[string]interface{}{
		"total_detections":     o.totalDetections,
		"screenshots_detected": o.screenshotsDetected,
		"failed_detections":    o.failedDetections,
		"avg_processing_time":  avgProcessingTime,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{observers: make([]Observer, 0)}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event. Observers run
// synchronously so counters are consistent when the call returns; a
// panicking observer must not take the detection down with it.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event DetectionEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
