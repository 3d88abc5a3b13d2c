package implementation

import (
	"context"
	"time"

	"case-knowledge-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// busyFlagTTL caps how long a lost flag can block a session if a process
// dies mid-generation.
const busyFlagTTL = 3 * time.Minute

type RedisConversationGuard struct {
	client *redis.Client
}

func NewRedisConversationGuard(client *redis.Client) contract.ConversationGuard {
	return &RedisConversationGuard{client: client}
}

func (g *RedisConversationGuard) key(sessionId uuid.UUID) string {
	return "chat:busy:" + sessionId.String()
}

func (g *RedisConversationGuard) TryAcquire(ctx context.Context, sessionId uuid.UUID) (bool, error) {
	return g.client.SetNX(ctx, g.key(sessionId), "1", busyFlagTTL).Result()
}

func (g *RedisConversationGuard) Release(ctx context.Context, sessionId uuid.UUID) error {
	return g.client.Del(ctx, g.key(sessionId)).Err()
}
