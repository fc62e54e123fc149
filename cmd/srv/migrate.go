package main

import (
	"github.com/urfave/cli/v2"
	"github.com/wanderlands/backend/internal/entity"
)

func (s *srv) startMigrate(c *cli.Context) error {
	if err := s.loadConfig(c); err != nil {
		return err
	}
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := entity.MigrateTable(s.ctx); err != nil {
		return err
	}

	s.logger.Infof("Migration finished")
	return nil
}
