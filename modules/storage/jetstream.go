package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// JetStreamStore implements Backend using a NATS JetStream KV bucket.
type JetStreamStore struct {
	conn       *nats.Conn
	js         jetstream.JetStream
	bucket     jetstream.KeyValue
	bucketName string
}

// NewJetStreamStore creates a new JetStream KV store client.
func NewJetStreamStore(natsURL, bucketName string) (*JetStreamStore, error) {
	conn, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &JetStreamStore{
		conn:       conn,
		js:         js,
		bucketName: bucketName,
	}, nil
}

// Init opens the bucket, creating it on first use.
func (s *JetStreamStore) Init(ctx context.Context) error {
	bucket, err := s.js.KeyValue(ctx, s.bucketName)
	if err == nil {
		s.bucket = bucket
		return nil
	}

	bucket, err = s.js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      s.bucketName,
		Description: "Daily todo list, history archive and preferences",
		History:     1,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s bucket: %w", s.bucketName, err)
	}

	s.bucket = bucket
	return nil
}

// Name returns the backend name.
func (s *JetStreamStore) Name() string {
	return BackendJetStream
}

// Get returns the latest value stored under key.
func (s *JetStreamStore) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := s.bucket.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return entry.Value(), nil
}

// Set stores value under key.
func (s *JetStreamStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.bucket.Put(ctx, key, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Ping reports whether the NATS connection is active.
func (s *JetStreamStore) Ping(_ context.Context) error {
	if s.conn == nil || !s.conn.IsConnected() {
		return errors.New("nats connection is not active")
	}
	return nil
}

// Close closes the NATS connection.
func (s *JetStreamStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	return nil
}
