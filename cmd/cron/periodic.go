package main

import (
	"context"
	"log"

	"phasbot/internal/datastore"
	"phasbot/internal/models"
	"phasbot/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// PeriodicJob owns the day/week/month boundary work: challenge rotation,
// rolling XP counter resets, booster pruning and leaderboard maintenance.
type PeriodicJob struct {
	db                 *bun.DB
	serviceConfig      *services.ServiceConfig
	serviceProfile     *services.ServiceProfile
	serviceChallenge   *services.ServiceChallenge
	serviceLeaderboard *services.ServiceLeaderboard
}

func NewPeriodicJob(container *do.Injector) (*PeriodicJob, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*services.ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceProfile, err := do.Invoke[*services.ServiceProfile](container)
	if err != nil {
		return nil, err
	}

	serviceChallenge, err := do.Invoke[*services.ServiceChallenge](container)
	if err != nil {
		return nil, err
	}

	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](container)
	if err != nil {
		return nil, err
	}

	return &PeriodicJob{db, serviceConfig, serviceProfile, serviceChallenge, serviceLeaderboard}, nil
}

func (j *PeriodicJob) Start(cronRunner *cron.Cron) {
	ctx := context.Background()

	daily, _ := j.serviceConfig.GetStringConfig(ctx, services.CONFIG_CRONJOB_TIME_DAILY, "5 0 * * *")
	weekly, _ := j.serviceConfig.GetStringConfig(ctx, services.CONFIG_CRONJOB_TIME_WEEKLY, "10 0 * * 1")
	monthly, _ := j.serviceConfig.GetStringConfig(ctx, services.CONFIG_CRONJOB_TIME_MONTHLY, "15 0 1 * *")

	if _, err := cronRunner.AddFunc(daily, j.runDaily); err != nil {
		log.Println("daily schedule:", err)
	}
	if _, err := cronRunner.AddFunc(weekly, j.runWeekly); err != nil {
		log.Println("weekly schedule:", err)
	}
	if _, err := cronRunner.AddFunc(monthly, j.runMonthly); err != nil {
		log.Println("monthly schedule:", err)
	}

	log.Println("Periodic jobs scheduled:", "daily:", daily, "weekly:", weekly, "monthly:", monthly)

	// make sure the current period has challenges even after downtime
	if err := j.serviceChallenge.Reload(ctx); err != nil {
		log.Println("initial catalog load:", err)
	}
	j.ensureCurrentChallenges(ctx)
}

func (j *PeriodicJob) ensureCurrentChallenges(ctx context.Context) {
	for _, t := range []models.ChallengeType{models.ChallengeDaily, models.ChallengeWeekly, models.ChallengeMonthly} {
		if err := j.serviceChallenge.Regenerate(ctx, t); err != nil {
			log.Println("challenge regenerate:", t, err)
		}
	}
}

func (j *PeriodicJob) runDaily() {
	ctx := context.Background()
	log.Println("Start daily boundary job")

	if err := j.serviceChallenge.CleanupExpired(ctx, models.ChallengeDaily); err != nil {
		log.Println("daily cleanup:", err)
	}
	if err := j.serviceChallenge.Regenerate(ctx, models.ChallengeDaily); err != nil {
		log.Println("daily regenerate:", err)
	}
	if _, err := j.serviceProfile.ResetPeriodicCounters(ctx, "daily"); err != nil {
		log.Println("daily reset:", err)
	}
	if _, err := j.serviceProfile.SweepExpiredBoosters(ctx); err != nil {
		log.Println("booster sweep:", err)
	}

	log.Println("Daily boundary job done")
}

func (j *PeriodicJob) runWeekly() {
	ctx := context.Background()
	log.Println("Start weekly boundary job")

	if err := j.serviceChallenge.CleanupExpired(ctx, models.ChallengeWeekly); err != nil {
		log.Println("weekly cleanup:", err)
	}
	if err := j.serviceChallenge.Regenerate(ctx, models.ChallengeWeekly); err != nil {
		log.Println("weekly regenerate:", err)
	}
	if _, err := j.serviceProfile.ResetPeriodicCounters(ctx, "weekly"); err != nil {
		log.Println("weekly reset:", err)
	}

	guildIDs, err := datastore.ListGuildIDs(ctx, j.db)
	if err != nil {
		log.Println("guild list:", err)
		return
	}
	if err := j.serviceLeaderboard.ResetWeekly(ctx, guildIDs); err != nil {
		log.Println("weekly leaderboard reset:", err)
	}

	log.Println("Weekly boundary job done")
}

func (j *PeriodicJob) runMonthly() {
	ctx := context.Background()
	log.Println("Start monthly boundary job")

	if err := j.serviceChallenge.CleanupExpired(ctx, models.ChallengeMonthly); err != nil {
		log.Println("monthly cleanup:", err)
	}
	if err := j.serviceChallenge.Regenerate(ctx, models.ChallengeMonthly); err != nil {
		log.Println("monthly regenerate:", err)
	}
	if _, err := j.serviceProfile.ResetPeriodicCounters(ctx, "monthly"); err != nil {
		log.Println("monthly reset:", err)
	}

	guildIDs, err := datastore.ListGuildIDs(ctx, j.db)
	if err != nil {
		log.Println("guild list:", err)
		return
	}
	for _, guildID := range guildIDs {
		if err := j.serviceLeaderboard.Rebuild(ctx, services.LEADERBOARD_XP_OVERALL, guildID); err != nil {
			log.Println("leaderboard rebuild:", guildID, err)
		}
	}

	log.Println("Monthly boundary job done")
}
