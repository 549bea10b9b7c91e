package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"

	"phasbot/internal/datastore"
	"phasbot/internal/models"
	"phasbot/internal/services"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigSeed(),
			commandAchievementSeed(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			steps := []struct {
				name string
				fn   func(context.Context, *bun.DB) error
			}{
				{"profile", datastore.CreateTableProfile},
				{"achievement", datastore.CreateTableAchievement},
				{"user_achievement", datastore.CreateTableUserAchievement},
				{"challenge", datastore.CreateTableChallenge},
				{"user_challenge", datastore.CreateTableUserChallenge},
				{"guild_config", datastore.CreateTableGuildConfig},
				{"config", datastore.CreateTableConfig},
			}
			for _, step := range steps {
				if err := step.fn(ctx, db); err != nil {
					log.Fatal(step.name, ": ", err)
				}
				log.Println("created table:", step.name)
			}
			return nil
		},
	}
}

func commandConfigSeed() *cli.Command {
	return &cli.Command{
		Name: "seed-config",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			defaults := map[string]string{
				services.CONFIG_XP_COOLDOWN_SECONDS:       "60",
				services.CONFIG_XP_BASE_MIN:               "15",
				services.CONFIG_XP_BASE_MAX:               "25",
				services.CONFIG_LEADERBOARD_LIMIT:         "20",
				services.CONFIG_PRESTIGE_LEADERBOARD_SIZE: "20",
				services.CONFIG_DAILY_CHALLENGE_COUNT:     "3",
				services.CONFIG_WEEKLY_CHALLENGE_COUNT:    "2",
				services.CONFIG_CRONJOB_TIME_DAILY:        "5 0 * * *",
				services.CONFIG_CRONJOB_TIME_WEEKLY:       "10 0 * * 1",
				services.CONFIG_CRONJOB_TIME_MONTHLY:      "15 0 1 * *",
			}
			for key, value := range defaults {
				if err := datastore.UpsertConfig(ctx, db, &models.Config{Key: key, Value: value}); err != nil {
					log.Fatal(key, ": ", err)
				}
				log.Println("seeded config:", key, "=", value)
			}
			return nil
		},
	}
}

func commandAchievementSeed() *cli.Command {
	return &cli.Command{
		Name: "seed-achievements",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			for _, achievement := range achievementCatalog() {
				if err := datastore.UpsertAchievement(ctx, db, achievement); err != nil {
					log.Fatal(achievement.ID, ": ", err)
				}
			}
			log.Println("seeded achievements:", len(achievementCatalog()))
			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
