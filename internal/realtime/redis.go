package realtime

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const notifyChannelPrefix = "fc:notify:"

// NewRedis returns a client for the given address, or nil when no address is
// configured. Callers treat a nil client as "single instance, no fan-out".
func NewRedis(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	log.Printf("Redis client created (addr: %s)", addr)
	return rdb
}

// PublishToUser pushes a notification onto the user's channel so peer
// instances can deliver it to their local websocket clients. No-op without
// Redis.
func PublishToUser(ctx context.Context, rdb *redis.Client, userID uint, data interface{}) {
	if rdb == nil {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling notification: %v", err)
		return
	}
	channel := notifyChannelPrefix + strconv.FormatUint(uint64(userID), 10)
	if err := rdb.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("Error publishing notification to %s: %v", channel, err)
	}
}

// RunSubscriber forwards notifications published by peer instances to this
// instance's connected clients. Blocks until ctx is done.
func RunSubscriber(ctx context.Context, rdb *redis.Client, hub *Hub) {
	if rdb == nil {
		return
	}
	sub := rdb.PSubscribe(ctx, notifyChannelPrefix+"*")
	defer sub.Close()

	for msg := range sub.Channel() {
		idStr := strings.TrimPrefix(msg.Channel, notifyChannelPrefix)
		userID, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			log.Printf("Ignoring notification on malformed channel %s", msg.Channel)
			continue
		}
		var payload map[string]interface{}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Ignoring malformed notification payload: %v", err)
			continue
		}
		hub.SendToUser(uint(userID), payload)
	}
}
