package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/vmihailenco/msgpack/v5"

	"phasbot/internal/interfaces"
	"phasbot/internal/models"
)

const (
	QUEUE_LEVEL_UP             = "notify:level_up"
	QUEUE_ACHIEVEMENT_UNLOCKED = "notify:achievement_unlocked"
	QUEUE_CHALLENGE_COMPLETED  = "notify:challenge_completed"
	QUEUE_GREETING             = "notify:greeting"

	notifyQueueCap = 10000
	notifyTimeout  = 5 * time.Second
)

// NotifierRedis pushes notification payloads onto redis lists that the
// gateway process drains. Delivery is detached from the caller; a publish
// failure is logged and dropped, never propagated back into the award path.
type NotifierRedis struct {
	client redis.UniversalClient
}

var _ interfaces.Notifier = (*NotifierRedis)(nil)

func NewNotifierRedis(container *do.Injector) (interfaces.Notifier, error) {
	client, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}
	return &NotifierRedis{client}, nil
}

func (n *NotifierRedis) LevelUp(ctx context.Context, e *models.LevelUpEvent) {
	n.publish(QUEUE_LEVEL_UP, e)
}

func (n *NotifierRedis) AchievementUnlocked(ctx context.Context, e *models.AchievementUnlockedEvent) {
	n.publish(QUEUE_ACHIEVEMENT_UNLOCKED, e)
}

func (n *NotifierRedis) ChallengeCompleted(ctx context.Context, e *models.ChallengeCompletedEvent) {
	n.publish(QUEUE_CHALLENGE_COMPLETED, e)
}

func (n *NotifierRedis) Greeting(ctx context.Context, e *models.GreetingEvent) {
	n.publish(QUEUE_GREETING, e)
}

func (n *NotifierRedis) publish(queue string, payload any) {
	b, err := msgpack.Marshal(payload)
	if err != nil {
		log.Println("notifier marshal:", queue, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := n.client.LPush(ctx, queue, b).Err(); err != nil {
			log.Println("notifier publish:", queue, err)
			return
		}
		// bound the queue so a stalled consumer cannot eat redis
		if err := n.client.LTrim(ctx, queue, 0, notifyQueueCap-1).Err(); err != nil {
			log.Println("notifier trim:", queue, err)
		}
	}()
}
