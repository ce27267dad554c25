package logger

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	sinkQueueSize = 2048
	sinkBatchSize = 50
	sinkFlushTick = 2 * time.Second
)

// logDoc is the record shape stored in Mongo.
type logDoc struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// MongoSink is an slog.Handler that batches records into a Mongo
// collection from a background goroutine. Enqueueing never blocks; when
// the queue is full the record is dropped.
type MongoSink struct {
	col   *mongo.Collection
	queue chan logDoc
	done  chan struct{}
	attrs []slog.Attr
}

// NewMongoSink starts a sink writing into col. Call Close to flush.
func NewMongoSink(col *mongo.Collection) *MongoSink {
	s := &MongoSink{
		col:   col,
		queue: make(chan logDoc, sinkQueueSize),
		done:  make(chan struct{}),
	}
	go s.drain()
	return s
}

func (s *MongoSink) Enabled(_ context.Context, l slog.Level) bool {
	return l >= slog.LevelInfo
}

func (s *MongoSink) Handle(_ context.Context, r slog.Record) error {
	doc := logDoc{Time: r.Time, Level: r.Level.String(), Msg: r.Message, Attrs: bson.M{}}

	collect := func(a slog.Attr) {
		if a.Key == "request_id" {
			doc.RequestID = a.Value.String()
			return
		}
		doc.Attrs[a.Key] = a.Value.Any()
	}
	for _, a := range s.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool { collect(a); return true })

	select {
	case s.queue <- doc:
	default:
		// full queue: drop rather than stall a request
	}
	return nil
}

func (s *MongoSink) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(s.attrs)+len(attrs))
	merged = append(merged, s.attrs...)
	merged = append(merged, attrs...)
	return &MongoSink{col: s.col, queue: s.queue, done: s.done, attrs: merged}
}

// WithGroup is accepted but flattened; the sink stores attrs ungrouped.
func (s *MongoSink) WithGroup(string) slog.Handler { return s }

func (s *MongoSink) drain() {
	ticker := time.NewTicker(sinkFlushTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, sinkBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, _ = s.col.InsertMany(ctx, batch)
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-s.queue:
			batch = append(batch, doc)
			if len(batch) >= sinkBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			for len(s.queue) > 0 {
				batch = append(batch, <-s.queue)
			}
			flush()
			return
		}
	}
}

// Close flushes queued records and stops the drain goroutine.
func (s *MongoSink) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}
