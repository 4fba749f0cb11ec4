package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "test", MaxRequests: 2, Timeout: time.Minute})
	boom := errors.New("boom")

	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.ErrorIs(t, cb.Execute(func() error { return nil }), ErrOpen)
	assert.Equal(t, "open", cb.State())
}

func TestBreakerIgnoresSuccessfulErrors(t *testing.T) {
	notFound := errors.New("not found")
	cb := NewCircuitBreaker(Settings{
		Name:         "test",
		MaxRequests:  1,
		Timeout:      time.Minute,
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, notFound) },
	})
	assert.ErrorIs(t, cb.Execute(func() error { return notFound }), notFound)
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, "closed", cb.State())
}
