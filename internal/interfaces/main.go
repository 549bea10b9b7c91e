package interfaces

import (
	"context"

	"github.com/go-redis/redis_rate/v10"

	"phasbot/internal/models"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

// Notifier receives the plain data events the core produces. The gateway
// process renders and delivers them; implementations must not block the
// caller on delivery.
type Notifier interface {
	LevelUp(ctx context.Context, e *models.LevelUpEvent)
	AchievementUnlocked(ctx context.Context, e *models.AchievementUnlockedEvent)
	ChallengeCompleted(ctx context.Context, e *models.ChallengeCompletedEvent)
	Greeting(ctx context.Context, e *models.GreetingEvent)
}
