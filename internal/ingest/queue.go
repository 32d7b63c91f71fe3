package ingest

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/RRRRRRR-777/TokoToko-sub005/internal/walk"

	"github.com/redis/go-redis/v9"
)

const appendTimeout = 5 * time.Second

// Appender is the slice of the walk service the queue needs.
type Appender interface {
	AppendLocation(ctx context.Context, walkID string, input walk.LocationSample) (walk.LocationSample, error)
}

// Update is one device-reported GPS fix waiting to be stored.
type Update struct {
	WalkID string
	Sample walk.LocationSample
}

// Queue decouples device delivery from storage: devices push batches of
// fixes, a single consumer goroutine appends them in arrival order, and
// the store's sequence numbering defines the canonical order. Accepted
// samples are published to redis for external subscribers.
type Queue struct {
	appender Appender
	redis    *redis.Client
	updates  chan Update
	done     chan struct{}
}

func NewQueue(appender Appender, redisClient *redis.Client, buffer int) *Queue {
	if buffer <= 0 {
		buffer = 256
	}
	q := &Queue{
		appender: appender,
		redis:    redisClient,
		updates:  make(chan Update, buffer),
		done:     make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue accepts an update for background ingestion. It reports false
// when the buffer is full; the device retries with fresh fixes.
func (q *Queue) Enqueue(u Update) bool {
	select {
	case q.updates <- u:
		return true
	default:
		return false
	}
}

// Close drains the buffer and stops the consumer.
func (q *Queue) Close() {
	close(q.updates)
	<-q.done
}

func (q *Queue) run() {
	defer close(q.done)
	for u := range q.updates {
		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		sample, err := q.appender.AppendLocation(ctx, u.WalkID, u.Sample)
		cancel()
		if err != nil {
			// Rejected fixes are dropped, not retried; the store already
			// guarantees ordering and completed walks stay immutable.
			log.Printf("ingest: dropped sample for walk %s: %v", u.WalkID, err)
			continue
		}
		q.publish(u.WalkID, sample)
	}
}

func (q *Queue) publish(walkID string, sample walk.LocationSample) {
	if q.redis == nil {
		return
	}
	payload, err := json.Marshal(sample)
	if err != nil {
		return
	}
	if err := q.redis.Publish(context.Background(), channel(walkID), payload).Err(); err != nil {
		log.Printf("ingest: redis publish error: %v", err)
	}
}

func channel(walkID string) string {
	return "walks:" + walkID + ":locations"
}
