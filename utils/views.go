// utils/views.go
package utils

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oausconnect/backend/config"
)

const viewKeyPrefix = "views:content:"

// IncrementView bumps the Redis write-behind view counter for a content item
// and returns the pending (not yet flushed) count. Returns 0 with an error
// when Redis is unavailable; callers fall back to a direct Mongo $inc.
func IncrementView(rdb *redis.Client, contentID primitive.ObjectID) (int64, error) {
	if rdb == nil {
		return 0, redis.ErrClosed
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return rdb.Incr(ctx, viewKeyPrefix+contentID.Hex()).Result()
}

// FlushViewCounts drains all pending Redis view counters into the content
// collection. Run periodically from main.
func FlushViewCounts(rdb *redis.Client, db *mongo.Client) {
	if rdb == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := config.GetCollection(db, "content")

	iter := rdb.Scan(ctx, 0, viewKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		count, err := rdb.GetDel(ctx, key).Int64()
		if err != nil || count == 0 {
			continue
		}

		idHex := strings.TrimPrefix(key, viewKeyPrefix)
		objID, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			continue
		}

		_, err = collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"views": count}})
		if err != nil {
			log.Printf("Error flushing view count for %s: %v", idHex, err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("Error scanning view counters: %v", err)
	}
}
