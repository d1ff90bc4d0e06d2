package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database holds the MongoDB client and the collections used by the
// booking service. It is created once in main and injected into the
// handlers instead of living as package-level state.
type Database struct {
	Client   *mongo.Client
	Services *mongo.Collection
	Bookings *mongo.Collection
}

func mongoURI() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "27017"
	}
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	if user != "" && password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/", user, password, host, port)
	}
	return fmt.Sprintf("mongodb://%s:%s/", host, port)
}

// Connect establishes the MongoDB connection and resolves the two
// collections. Callers must Close the returned handle on shutdown.
func Connect(ctx context.Context) (*Database, error) {
	clientOptions := options.Client().ApplyURI(mongoURI())
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "automation_crm"
	}
	database := client.Database(name)

	return &Database{
		Client:   client,
		Services: database.Collection("services"),
		Bookings: database.Collection("bookings"),
	}, nil
}

func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
