package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/wanderlands/backend/config"
	"github.com/wanderlands/backend/internal/domain"
	"github.com/wanderlands/backend/internal/domain/game"
	"github.com/wanderlands/backend/internal/domain/statistic"
	"github.com/wanderlands/backend/internal/model"
	"github.com/wanderlands/backend/internal/repository"
	"github.com/wanderlands/backend/pkg/authenticator"
	"github.com/wanderlands/backend/pkg/logger"
	"github.com/wanderlands/backend/pkg/ws"
	"github.com/wanderlands/backend/pkg/xcontext"
	"github.com/wanderlands/backend/pkg/xredis"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs config.Configs
	logger  logger.Logger

	userRepo      repository.UserRepository
	inventoryRepo repository.InventoryRepository

	tokenEngine authenticator.TokenEngine[model.AccessToken]
	leaderboard statistic.Leaderboard

	hub         *ws.Hub
	state       *game.State
	lifecycle   *game.Lifecycle
	broadcaster *game.Broadcaster

	authDomain    domain.AuthDomain
	sessionDomain domain.SessionDomain
}

func (s *srv) loadConfig(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	s.configs = cfg
	level := logger.INFO
	if cfg.Env == "local" {
		level = logger.DEBUG
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = logger.ParseLevel(v)
	}
	s.logger = logger.NewLogger(level)

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, s.configs)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)

	return nil
}

func (s *srv) loadDatabase() error {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.inventoryRepo = repository.NewInventoryRepository()
}

func (s *srv) loadLeaderboard() {
	if s.configs.Redis.Addr == "" {
		s.logger.Infof("No redis address configured, leaderboard disabled")
		return
	}

	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis, leaderboard disabled: %v", err)
		return
	}

	s.leaderboard = statistic.NewLeaderboard(redisClient)
}

func (s *srv) loadGame() {
	s.hub = ws.NewHub()
	emitter := domain.NewHubEmitter(s.hub, s.logger)

	s.state = game.NewState(s.configs.Game)
	allocator := game.NewContinentAllocator(s.configs.Game, s.logger)
	s.broadcaster = game.NewBroadcaster(s.state, emitter, s.logger, s.configs.Game)
	s.lifecycle = game.NewLifecycle(
		s.configs.Game,
		s.logger,
		s.state,
		allocator,
		emitter,
		s.broadcaster,
		s.userRepo,
		s.inventoryRepo,
		s.leaderboard,
	)
}

func (s *srv) loadDomains() {
	s.tokenEngine = authenticator.NewTokenEngine[model.AccessToken](s.configs.Auth)
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.tokenEngine)
	s.sessionDomain = domain.NewSessionDomain(s.logger, s.hub, s.lifecycle)
}
