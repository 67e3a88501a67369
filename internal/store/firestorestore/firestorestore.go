// Package firestorestore keeps key-value pairs as Firestore documents.
package firestorestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultCollection is used when no collection name is configured.
const DefaultCollection = "tada"

// Store maps each key to <collection>/<key> with a "value" field.
type Store struct {
	client     *firestore.Client
	collection string
	owned      bool
}

// New uses an existing client. The caller keeps ownership of it.
func New(client *firestore.Client, collection string) *Store {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{client: client, collection: collection}
}

// Open creates a client for projectID; Close releases it.
func Open(ctx context.Context, projectID, collection string) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	s := New(client, collection)
	s.owned = true
	return s, nil
}

func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

func (s *Store) docRef(key string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(key)
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	snap, err := s.docRef(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	value, ok := snap.Data()["value"].(string)
	if !ok {
		return "", false, fmt.Errorf("document %q has no string value field", key)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.docRef(key).Set(ctx, map[string]interface{}{
		"value":     value,
		"updatedAt": time.Now(),
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
