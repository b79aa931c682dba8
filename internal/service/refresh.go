package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"nostrcal"
	"nostrcal/internal/usecase"
)

var tracer = otel.Tracer("refresh")

const signalChannel = "nostrcal:refresh"

// RefreshService re-runs the event pipeline in the background so the view
// cache and the record mirror stay warm between interactive requests.
type RefreshService struct {
	calendar *usecase.CalendarUsecase
	signal   *SignalService
}

func NewRefreshService(calendar *usecase.CalendarUsecase, signal *SignalService) *RefreshService {
	return &RefreshService{
		calendar: calendar,
		signal:   signal,
	}
}

func (s *RefreshService) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Refresh.Service.Refresh")
	defer span.End()

	events, err := s.calendar.ListEvents(ctx, nostrcal.Filter{})
	if err != nil {
		return errors.Wrap(err, "refresh fetch failed")
	}

	if s.signal != nil {
		err = s.signal.Publish(ctx, signalChannel, RefreshSignal{
			Channel: signalChannel,
			Events:  len(events),
			Stamp:   time.Now().Unix(),
		})
		if err != nil {
			return errors.Wrap(err, "refresh signal failed")
		}
	}

	return nil
}
