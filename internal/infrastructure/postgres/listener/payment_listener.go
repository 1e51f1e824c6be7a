package listener

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
)

const (
	channelName       = "payments_changed"
	reconnectInterval = 5 * time.Second
	keepAliveInterval = 90 * time.Second
)

// PaymentListener subscribes to the postgres change feed for scheduled
// payments and recurring rules, and fans each notification out as an empty
// signal to every subscriber. The occurrence aggregator consumes a subscriber
// channel to know when to re-derive its projection.
type PaymentListener struct {
	connStr    string
	shutdownCh chan struct{}
	done       chan struct{}

	mu          sync.Mutex
	subscribers map[chan struct{}]struct{}
}

// NewPaymentListener creates a listener on the payments change channel
func NewPaymentListener(connStr string) *PaymentListener {
	return &PaymentListener{
		connStr:     connStr,
		shutdownCh:  make(chan struct{}),
		done:        make(chan struct{}),
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Subscribe registers a channel that receives a token per change burst and
// returns it with an unsubscribe function. Each subscriber channel has
// capacity one; coalesced bursts produce a single signal.
func (l *PaymentListener) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	l.mu.Lock()
	l.subscribers[ch] = struct{}{}
	l.mu.Unlock()

	return ch, func() {
		l.mu.Lock()
		delete(l.subscribers, ch)
		l.mu.Unlock()
	}
}

// Start begins listening for notifications in a background goroutine
func (l *PaymentListener) Start(ctx context.Context) {
	go l.listen(ctx)
	log.Println("Payment change listener started")
}

// Stop gracefully shuts down the listener
func (l *PaymentListener) Stop() {
	close(l.shutdownCh)
	<-l.done
	log.Println("Payment change listener stopped")
}

func (l *PaymentListener) listen(ctx context.Context) {
	defer close(l.done)

	for {
		select {
		case <-l.shutdownCh:
			return
		case <-ctx.Done():
			return
		default:
			l.connectAndListen(ctx)
		}

		select {
		case <-l.shutdownCh:
			return
		case <-ctx.Done():
			return
		case <-time.After(reconnectInterval):
			log.Println("Reconnecting to PostgreSQL for payment notifications...")
		}
	}
}

func (l *PaymentListener) connectAndListen(ctx context.Context) {
	pqListener := pq.NewListener(l.connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("Payment listener error: %v", err)
		}
	})
	defer pqListener.Close()

	if err := pqListener.Listen(channelName); err != nil {
		log.Printf("Failed to listen on channel %s: %v", channelName, err)
		return
	}

	log.Printf("Listening on channel: %s", channelName)

	for {
		select {
		case <-l.shutdownCh:
			return
		case <-ctx.Done():
			return
		case notification := <-pqListener.Notify:
			if notification == nil {
				// Connection lost, break out to reconnect.
				return
			}
			l.signal()
		case <-time.After(keepAliveInterval):
			if err := pqListener.Ping(); err != nil {
				log.Printf("Payment listener ping failed: %v", err)
				return
			}
		}
	}
}

// signal delivers a non-blocking token to each subscriber; a pending token
// already covers any number of coalesced changes.
func (l *PaymentListener) signal() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ch := range l.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
