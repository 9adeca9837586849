package blink

import (
	"context"
	"sync"
	"time"

	"github.com/google/wire"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/weegigs/wee-blink-go/we"
)

const tracerName = "blink-service"

type Clock func() time.Time

func SystemClock() Clock {
	return time.Now
}

type CounterService interface {
	Value(ctx context.Context) int64
	Index(ctx context.Context) int64
	Increment(ctx context.Context) int64
	Load(ctx context.Context) we.Entity[Counter]
}

// Service holds the process wide blink counter. It starts at zero and is never
// persisted.
type Service struct {
	lk        sync.Mutex
	state     Counter
	revision  we.Revision
	revisions *we.RevisionGenerator
	clock     Clock
}

func NewService(clock Clock) *Service {
	if clock == nil {
		clock = SystemClock()
	}

	return &Service{
		revision:  we.InitialRevision,
		revisions: we.NewRevisionGenerator(),
		clock:     clock,
	}
}

var Live = wire.NewSet(
	SystemClock,
	NewService,
	wire.Bind(new(CounterService), new(*Service)),
)

func (s *Service) Value(ctx context.Context) int64 {
	_, span := otel.Tracer(tracerName).Start(ctx, "blink:value")
	defer span.End()

	s.lk.Lock()
	defer s.lk.Unlock()

	return s.state.Value()
}

func (s *Service) Index(ctx context.Context) int64 {
	_, span := otel.Tracer(tracerName).Start(ctx, "blink:index")
	defer span.End()

	s.lk.Lock()
	defer s.lk.Unlock()

	return s.state.Index()
}

func (s *Service) Increment(ctx context.Context) int64 {
	_, span := otel.Tracer(tracerName).Start(ctx, "blink:increment")
	defer span.End()

	s.lk.Lock()
	s.state.Current++
	s.revision = s.revisions.NewRevision(s.clock())
	value := s.state.Current
	s.lk.Unlock()

	span.SetAttributes(attribute.Int64("blink.value", value))

	return value
}

func (s *Service) Load(ctx context.Context) we.Entity[Counter] {
	_, span := otel.Tracer(tracerName).Start(ctx, "blink:load")
	defer span.End()

	s.lk.Lock()
	defer s.lk.Unlock()

	return we.NewEntity(s.revision, s.state)
}
