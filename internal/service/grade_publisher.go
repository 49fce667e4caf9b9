package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

// GradeObserver reacts to a newly recorded grade. Observers must tolerate
// being called concurrently with feed reads.
type GradeObserver interface {
	Name() string
	HandleGradeCreated(ctx context.Context, grade *models.Grade) error
}

// GradePublisher fans grade events out to registered observers synchronously,
// in registration order. One observer failing never stops the others and
// never fails the publishing write.
type GradePublisher struct {
	mu        sync.RWMutex
	observers []GradeObserver
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewGradePublisher constructs an empty publisher.
func NewGradePublisher(logger *zap.Logger, metrics *MetricsService) *GradePublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradePublisher{logger: logger, metrics: metrics}
}

// Subscribe appends an observer. Registration order is delivery order.
func (p *GradePublisher) Subscribe(observer GradeObserver) {
	if observer == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes the observer with the given name, if registered.
func (p *GradePublisher) Unsubscribe(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, observer := range p.observers {
		if observer.Name() == name {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers the grade event to every observer in order. It returns the
// number of observers that handled the event successfully.
func (p *GradePublisher) Publish(ctx context.Context, grade *models.Grade) int {
	p.mu.RLock()
	observers := make([]GradeObserver, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	if p.metrics != nil {
		p.metrics.RecordGradeEvent()
	}

	delivered := 0
	for _, observer := range observers {
		if err := p.notifyOne(ctx, observer, grade); err != nil {
			p.logger.Warn("grade observer failed",
				zap.String("observer", observer.Name()),
				zap.String("student_id", grade.StudentID),
				zap.String("subject", grade.Subject),
				zap.Error(err))
			if p.metrics != nil {
				p.metrics.RecordObserverFailure(observer.Name())
			}
			continue
		}
		delivered++
	}
	return delivered
}

func (p *GradePublisher) notifyOne(ctx context.Context, observer GradeObserver, grade *models.Grade) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()
	return observer.HandleGradeCreated(ctx, grade)
}
