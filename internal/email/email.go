package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/altavia/voyager/internal/kafka"
)

// Sender delivers booking notifications. The transport is a stub; the worker
// logs what would be sent.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(_ context.Context, event kafka.BookingEvent) error {
	s.logger.Info("send booking notification",
		zap.String("to", event.Email),
		zap.String("type", event.Type),
		zap.Strings("flights", event.Flights),
		zap.Float64("total_cost", event.TotalCost),
	)
	return nil
}
