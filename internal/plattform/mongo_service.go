package plattform

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	// ErrMissingMongoURI indicates that no connection string was configured.
	ErrMissingMongoURI = errors.New("database: missing MONGODB_URI")
)

// NewClient establishes a MongoDB client and returns a MongoService.
// The caller owns the returned service and must call Disconnect when done.
func NewClient(ctx context.Context, uri string) (*MongoService, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, ErrMissingMongoURI
	}

	opt := options.Client().ApplyURI(uri)
	if strings.HasPrefix(uri, "mongodb+srv") {
		opt.SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	}
	client, err := mongo.Connect(opt)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return NewMongoService(client), nil
}

// ConnectWithRetry llama a NewClient hasta que funcione, se agoten los
// intentos (maxRetries 0 = ilimitado) o se cancele ctx.
func ConnectWithRetry(ctx context.Context, uri string, interval time.Duration, maxRetries int) (*MongoService, error) {
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("database: context cancelado antes de conectar: %w", err)
		}

		attempt++
		svc, err := NewClient(ctx, uri)
		if err == nil {
			if attempt > 1 {
				log.Printf("[MONGO] Conexión exitosa tras %d intentos", attempt)
			}
			return svc, nil
		}
		if errors.Is(err, ErrMissingMongoURI) {
			return nil, err
		}

		log.Printf("[MONGO] Error conectando (intento %d): %v", attempt, err)
		if maxRetries > 0 && attempt >= maxRetries {
			return nil, fmt.Errorf("database: %d intentos sin éxito: %w", attempt, err)
		}

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return nil, fmt.Errorf("database: context cancelado esperando reintento: %w", ctx.Err())
		}
	}
}

type MongoService struct {
	client *mongo.Client
}

// NewMongoService creates a new MongoService instance with the provided MongoDB client.
func NewMongoService(client *mongo.Client) *MongoService {
	return &MongoService{client: client}
}

// GetCollection returns a handle to the requested collection.
func (s *MongoService) GetCollection(dbName, collName string) *mongo.Collection {
	return s.client.Database(dbName).Collection(collName)
}

func (s *MongoService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoService) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
