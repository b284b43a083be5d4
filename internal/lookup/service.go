package lookup

import (
	"context"
	"fmt"

	"github.com/wolfman30/sy-number-bot/internal/contacts"
	observemetrics "github.com/wolfman30/sy-number-bot/internal/observability/metrics"
	"github.com/wolfman30/sy-number-bot/internal/phone"
	"github.com/wolfman30/sy-number-bot/pkg/logging"
)

// Lookup results reported to metrics.
const (
	ResultFound       = "found"
	ResultNotFound    = "not_found"
	ResultWrongRegion = "wrong_region"
	ResultUnparseable = "unparseable"
	ResultError       = "error"
)

// Config wires a Service.
type Config struct {
	Normalizer *phone.Normalizer
	Classifier *phone.Classifier
	Contacts   contacts.Repository
	Formatter  *Formatter
	Metrics    *observemetrics.LookupMetrics
	Logger     *logging.Logger
}

// Service runs normalize → classify → find → format for one message.
type Service struct {
	normalizer *phone.Normalizer
	classifier *phone.Classifier
	contacts   contacts.Repository
	formatter  *Formatter
	metrics    *observemetrics.LookupMetrics
	logger     *logging.Logger
}

func NewService(cfg Config) *Service {
	if cfg.Contacts == nil {
		panic("lookup: contacts repository cannot be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = phone.NewNormalizer(phone.CountryPrefix)
	}
	if cfg.Classifier == nil {
		cfg.Classifier = phone.NewClassifier(phone.DefaultRegion)
	}
	if cfg.Formatter == nil {
		cfg.Formatter = NewFormatter()
	}
	return &Service{
		normalizer: cfg.Normalizer,
		classifier: cfg.Classifier,
		contacts:   cfg.Contacts,
		formatter:  cfg.Formatter,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
}

// Answer always returns a reply. Any failure, including a panic further down
// the pipeline, becomes the internal error reply and is logged.
func (s *Service) Answer(ctx context.Context, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("lookup: panic: %v", r)
			s.logger.Error("lookup panicked", "error", err)
			s.metrics.ObserveLookup(ResultError, "")
			reply = s.formatter.InternalError(err)
		}
	}()

	reply, err := s.answer(ctx, text)
	if err != nil {
		s.logger.Error("lookup failed", "error", err)
		s.metrics.ObserveLookup(ResultError, "")
		return s.formatter.InternalError(err)
	}
	return reply
}

func (s *Service) answer(ctx context.Context, text string) (string, error) {
	normalized := s.normalizer.Normalize(text)
	classification := s.classifier.Classify(normalized)
	if !classification.Valid {
		result := ResultUnparseable
		if classification.Reason == phone.ReasonWrongRegion {
			result = ResultWrongRegion
		}
		s.logger.Debug("number rejected", "normalized", normalized, "reason", string(classification.Reason), "region", classification.Region)
		s.metrics.ObserveLookup(result, "")
		return s.formatter.Format(normalized, classification, nil), nil
	}

	contact, err := s.contacts.FindByPhone(ctx, normalized)
	if err != nil {
		return "", err
	}
	result := ResultNotFound
	if contact != nil {
		result = ResultFound
	}
	s.logger.Info("number looked up", "normalized", normalized, "line_type", string(classification.LineType), "result", result)
	s.metrics.ObserveLookup(result, string(classification.LineType))
	return s.formatter.Format(normalized, classification, contact), nil
}
