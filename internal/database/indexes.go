package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureStorageIndexes adds a TTL index so abandoned session blobs expire on
// their own instead of accumulating forever.
func EnsureStorageIndexes(db *mongo.Database, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("session_storage").Indexes()

	expiryIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "updatedAt", Value: 1}},
		Options: options.Index().
			SetName("updated_at_expiry").
			SetExpireAfterSeconds(int32(ttl.Seconds())),
	}

	log.Println("EnsureStorageIndexes: creating updated_at_expiry index")
	if _, err := indexes.CreateOne(ctx, expiryIndex); err != nil {
		log.Println("EnsureStorageIndexes: expiry index error:", err)
		return err
	}
	log.Println("EnsureStorageIndexes: updated_at_expiry index created")
	return nil
}
