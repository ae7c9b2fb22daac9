package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smsflt/sms-filter/internal/cache"
	"github.com/smsflt/sms-filter/internal/classifier"
	"github.com/smsflt/sms-filter/internal/metrics"
	"github.com/smsflt/sms-filter/internal/model"
	"github.com/smsflt/sms-filter/internal/repository"
)

var (
	// ErrNoMessage : payload had no message field.
	ErrNoMessage = errors.New("No message provided")
	// ErrInvalidMessage : message was empty after trimming.
	ErrInvalidMessage = errors.New("Invalid message format")
)

// Request carries the classify payload. Message is a pointer so a missing
// field and an empty field produce different validation errors.
type Request struct {
	Message    *string
	Sender     string
	Timestamp  string
	IsVerified bool
}

type Result struct {
	ID     string       `json:"id"`
	Status model.Status `json:"status"`
}

// Service validates input, runs inference, and persists one record per call.
type Service struct {
	repo     repository.MessagesRepository
	clf      classifier.Classifier
	verdicts *cache.Verdicts // nil when redis is not configured
	now      func() time.Time
}

// New constructs the classify service. verdicts may be nil.
func New(repo repository.MessagesRepository, clf classifier.Classifier, verdicts *cache.Verdicts) *Service {
	return &Service{
		repo:     repo,
		clf:      clf,
		verdicts: verdicts,
		now:      time.Now,
	}
}

// Classify runs the full pipeline: validate, lowercase for inference only,
// resolve a status label, generate an id, and persist before returning.
func (s *Service) Classify(ctx context.Context, req Request) (Result, error) {
	if req.Message == nil {
		return Result{}, ErrNoMessage
	}
	if strings.TrimSpace(*req.Message) == "" {
		return Result{}, ErrInvalidMessage
	}

	sender := strings.TrimSpace(req.Sender)
	if sender == "" {
		sender = "Unknown"
	}

	ts := strings.TrimSpace(req.Timestamp)
	if ts == "" {
		ts = s.now().UTC().Format(time.RFC3339)
	}

	lowered := strings.ToLower(*req.Message)

	status, err := s.resolve(ctx, lowered)
	if err != nil {
		return Result{}, fmt.Errorf("classify message: %w", err)
	}

	rec := model.Message{
		ID:         uuid.NewString(),
		Sender:     sender,
		Content:    *req.Message,
		Timestamp:  ts,
		Status:     status,
		IsVerified: req.IsVerified,
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("store record: %w", err)
	}

	metrics.ClassificationsTotal.WithLabelValues(status.String()).Inc()
	metrics.StoreOpsTotal.WithLabelValues("insert").Inc()

	return Result{ID: rec.ID, Status: status}, nil
}

// resolve consults the verdict cache before running the model.
func (s *Service) resolve(ctx context.Context, lowered string) (model.Status, error) {
	if s.verdicts != nil {
		if st, ok := s.verdicts.Get(ctx, lowered); ok {
			return st, nil
		}
	}

	idx, err := s.clf.Classify(ctx, lowered)
	if err != nil {
		return "", err
	}
	st := model.StatusFromClass(idx)

	if s.verdicts != nil {
		s.verdicts.Set(ctx, lowered, st)
	}
	return st, nil
}
