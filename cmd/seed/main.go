package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/cache"
	"feedbackhub/internal/config"
	"feedbackhub/internal/db"
	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/logging"
	"feedbackhub/internal/repository"
	"feedbackhub/internal/service"
)

// SeedUser is one account in the fixture file, with the posts it owns.
type SeedUser struct {
	Username  string         `json:"username"`
	Password  string         `json:"password"`
	Email     string         `json:"email"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Feedback  []SeedFeedback `json:"feedback"`
}

// SeedFeedback is one post in the fixture file.
type SeedFeedback struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func main() {
	fixturePath := flag.String("fixtures", "cmd/seed/fixtures.json", "path to the JSON fixture file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.New("feedback-seed", cfg.LogLevel, cfg.LogPretty)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, logging.NewGormLogger(logger, cfg.DBEcho))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb := db.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer rdb.Close()
	if cfg.ResetDB {
		if err := db.PurgeSessionState(context.Background(), rdb); err != nil {
			logger.Fatal().Err(err).Msg("failed to purge sessions")
		}
	}
	logger.Info().Msg("database migrations completed")

	users, err := loadFixtures(*fixturePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load fixtures")
	}
	logger.Info().Int("users", len(users)).Str("path", *fixturePath).Msg("fixtures loaded")

	userRepo := repository.NewUserRepository(gormDB)
	feedbackRepo := repository.NewFeedbackRepository(gormDB)
	authService := service.NewAuthService(userRepo, cache.New(rdb), logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, logger)

	created, skipped, posts, err := seed(context.Background(), authService, feedbackService, users, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed failed")
	}

	logger.Info().
		Int("users_created", created).
		Int("users_skipped", skipped).
		Int("feedback_created", posts).
		Msg("seed completed successfully")
}

func loadFixtures(path string) ([]SeedUser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var users []SeedUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return users, nil
}

// seed registers each fixture user and adds their posts acting as that user.
// Users that already exist are skipped together with their posts.
func seed(
	ctx context.Context,
	authService service.AuthService,
	feedbackService service.FeedbackService,
	users []SeedUser,
	logger zerolog.Logger,
) (created, skipped, posts int, err error) {
	for _, u := range users {
		user, err := authService.Register(ctx, service.RegisterInput{
			Username:  u.Username,
			Password:  u.Password,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
		if errors.Is(err, apperrors.ErrUniquenessConflict) {
			logger.Info().Str("user", u.Username).Msg("user exists, skipping")
			skipped++
			continue
		}
		if err != nil {
			return created, skipped, posts, fmt.Errorf("register %s: %w", u.Username, err)
		}
		created++

		rc := auth.RequestContext{Identity: auth.Authenticated(user.Username)}
		for _, fb := range u.Feedback {
			if _, err := feedbackService.Add(ctx, rc, user.Username, service.FeedbackInput{
				Title:   fb.Title,
				Content: fb.Content,
			}); err != nil {
				return created, skipped, posts, fmt.Errorf("add feedback for %s: %w", u.Username, err)
			}
			posts++
		}
	}
	return created, skipped, posts, nil
}
