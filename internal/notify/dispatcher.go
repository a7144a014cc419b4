package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

// Dispatcher is an in-process Queue backed by a buffered channel and a
// fixed pool of worker goroutines.
type Dispatcher struct {
	sender      Sender
	jobs        chan Message
	workers     int
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher. Call Start before enqueueing.
func NewDispatcher(sender Sender, workers, buffer int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if buffer < 1 {
		buffer = 1
	}
	return &Dispatcher{
		sender:      sender,
		jobs:        make(chan Message, buffer),
		workers:     workers,
		sendTimeout: 30 * time.Second,
	}
}

// Start launches the workers
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run(i + 1)
	}
	log.Printf("📨 Notification dispatcher started (%d workers)", d.workers)
}

// Stop refuses new messages, drains what is buffered and waits for workers
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
	log.Println("🛑 Notification dispatcher stopped")
}

// Enqueue buffers a message without blocking. A full buffer is reported
// as ErrQueueFull rather than stalling the caller.
func (d *Dispatcher) Enqueue(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}

	select {
	case d.jobs <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) run(id int) {
	defer d.wg.Done()
	for msg := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		if err := d.sender.Send(ctx, msg); err != nil {
			log.Printf("❌ Notification worker %d: send %q to %v failed: %v", id, msg.Subject, msg.To, err)
		}
		cancel()
	}
}
