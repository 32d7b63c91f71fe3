package ingest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RRRRRRR-777/TokoToko-sub005/internal/walk"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeAppender struct {
	mu      sync.Mutex
	appends []Update
	err     error
}

func (f *fakeAppender) AppendLocation(_ context.Context, walkID string, input walk.LocationSample) (walk.LocationSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return walk.LocationSample{}, f.err
	}
	input.WalkID = walkID
	input.SequenceNumber = int64(len(f.appends) + 1)
	f.appends = append(f.appends, Update{WalkID: walkID, Sample: input})
	return input, nil
}

func (f *fakeAppender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appends)
}

func TestQueueAppendsInArrivalOrder(t *testing.T) {
	appender := &fakeAppender{}
	q := NewQueue(appender, nil, 8)

	for i := 0; i < 3; i++ {
		ok := q.Enqueue(Update{WalkID: "walk-1", Sample: walk.LocationSample{Latitude: 35.0 + float64(i)*0.001, Longitude: 139.0}})
		if !ok {
			t.Fatalf("enqueue %d rejected", i)
		}
	}
	q.Close()

	if appender.count() != 3 {
		t.Fatalf("expected 3 appends, got %d", appender.count())
	}
	for i, u := range appender.appends {
		if u.Sample.SequenceNumber != int64(i+1) {
			t.Fatalf("out of order append: %+v", u)
		}
	}
}

func TestQueueDropsRejectedSamples(t *testing.T) {
	appender := &fakeAppender{err: walk.ErrWalkCompleted}
	q := NewQueue(appender, nil, 8)

	q.Enqueue(Update{WalkID: "walk-1", Sample: walk.LocationSample{Latitude: 35, Longitude: 139}})
	q.Close()

	if appender.count() != 0 {
		t.Fatalf("rejected sample was stored")
	}
}

func TestQueueRejectsWhenFull(t *testing.T) {
	appender := &blockingAppender{
		started: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
	q := NewQueue(appender, nil, 1)
	defer func() {
		close(appender.release)
		q.Close()
	}()

	// First update occupies the consumer, second fills the buffer.
	q.Enqueue(Update{WalkID: "walk-1"})
	<-appender.started
	if !q.Enqueue(Update{WalkID: "walk-1"}) {
		t.Fatalf("buffered enqueue should succeed")
	}
	if q.Enqueue(Update{WalkID: "walk-1"}) {
		t.Fatalf("expected enqueue rejection when buffer full")
	}
}

type blockingAppender struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingAppender) AppendLocation(_ context.Context, _ string, input walk.LocationSample) (walk.LocationSample, error) {
	b.started <- struct{}{}
	<-b.release
	return input, nil
}

func TestQueuePublishesAcceptedSamples(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	sub := client.Subscribe(context.Background(), "walks:walk-1:locations")
	defer sub.Close()
	if _, err := sub.Receive(context.Background()); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	appender := &fakeAppender{}
	q := NewQueue(appender, client, 8)
	q.Enqueue(Update{WalkID: "walk-1", Sample: walk.LocationSample{Latitude: 35.6595, Longitude: 139.7005}})
	q.Close()

	select {
	case msg := <-sub.Channel():
		if msg.Channel != "walks:walk-1:locations" {
			t.Fatalf("unexpected channel: %s", msg.Channel)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected published sample")
	}
}

func TestChannelName(t *testing.T) {
	if got := channel("abc"); got != "walks:abc:locations" {
		t.Fatalf("unexpected channel: %s", got)
	}
}
