package queue

import (
	"errors"
	"sync"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

func newTestPool(size int) *ChannelPool {
	return &ChannelPool{channels: make(chan *amqp.Channel, size)}
}

func TestGetChannel_AfterClose(t *testing.T) {
	p := newTestPool(1)
	p.Close()

	if _, err := p.GetChannel(); !errors.Is(err, errPoolClosed) {
		t.Errorf("expected errPoolClosed, got %v", err)
	}
}

func TestReturnChannel_NilAfterClose(t *testing.T) {
	p := newTestPool(1)
	p.Close()

	// Must not panic on the closed pool channel.
	p.ReturnChannel(nil)
}

func TestClose_Idempotent(t *testing.T) {
	p := newTestPool(1)
	p.Close()
	p.Close()
}

func TestClose_ConcurrentWithGet(t *testing.T) {
	p := newTestPool(4)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.GetChannel()
			p.ReturnChannel(nil)
		}()
	}
	p.Close()
	wg.Wait()

	if _, err := p.GetChannel(); !errors.Is(err, errPoolClosed) {
		t.Errorf("expected errPoolClosed after shutdown, got %v", err)
	}
}
