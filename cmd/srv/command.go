package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Name = "Wanderlands"
	app.Usage = "realtime multiplayer session backend"
	app.Action = cli.ShowAppHelp
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to the toml configuration file",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      s.startGame,
			Name:        "game",
			Usage:       "Start the game session server",
			Category:    "Game",
			Description: `Serves the websocket session layer plus the auth endpoints.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Category:    "Database",
			Description: `Creates or updates the progress-store schema.`,
		},
	}

	s.app = app
}
