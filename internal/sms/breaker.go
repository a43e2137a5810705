package sms

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrGatewayOpen is returned while the breaker is rejecting calls.
var ErrGatewayOpen = errors.New("sms gateway temporarily unavailable")

type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

// CircuitSender wraps a Sender and stops calling the gateway after a run
// of consecutive failures, giving it time to recover. In the open state
// sends fail fast with ErrGatewayOpen; after the cooldown a single probe
// is let through and its result decides whether the breaker closes again.
//
// Rejections the gateway reports about the input (ErrInvalidNumber) do
// not count as failures.
type CircuitSender struct {
	inner            Sender
	logger           *zap.Logger
	failureThreshold int
	cooldown         time.Duration

	mu           sync.Mutex
	state        breakerState
	failures     int
	lastFailTime time.Time
}

func NewCircuitSender(inner Sender, logger *zap.Logger) *CircuitSender {
	return &CircuitSender{
		inner:            inner,
		logger:           logger,
		failureThreshold: 5,
		cooldown:         30 * time.Second,
	}
}

func (s *CircuitSender) Send(ctx context.Context, to, body string) error {
	if !s.allow() {
		return ErrGatewayOpen
	}

	err := s.inner.Send(ctx, to, body)
	s.record(err)
	return err
}

func (s *CircuitSender) allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateOpen:
		if time.Since(s.lastFailTime) < s.cooldown {
			return false
		}
		s.state = stateHalfOpen
		return true
	case stateHalfOpen:
		// one probe at a time
		return false
	default:
		return true
	}
}

func (s *CircuitSender) record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil || errors.Is(err, ErrInvalidNumber) {
		if s.state != stateClosed {
			s.logger.Info("SMS gateway recovered, closing breaker")
		}
		s.state = stateClosed
		s.failures = 0
		return
	}

	s.failures++
	s.lastFailTime = time.Now()

	if s.state == stateHalfOpen || s.failures >= s.failureThreshold {
		if s.state != stateOpen {
			s.logger.Warn("SMS gateway failing, opening breaker",
				zap.Int("consecutive_failures", s.failures),
			)
		}
		s.state = stateOpen
	}
}
