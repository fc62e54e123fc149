package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Server   ServerConfigs   `toml:"server"`
	Database DatabaseConfigs `toml:"database"`
	Redis    RedisConfigs    `toml:"redis"`
	Auth     AuthConfigs     `toml:"auth"`
	Game     GameConfigs     `toml:"game"`
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`

	AllowCORS []string `toml:"allow_cors"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type AuthConfigs struct {
	TokenSecret     string        `toml:"token_secret"`
	TokenExpiration time.Duration `toml:"token_expiration"`
}

type SpawnPoint struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

type GameConfigs struct {
	TickInterval time.Duration `toml:"tick_interval"`
	RoomCapacity int           `toml:"room_capacity"`
	LobbyRoom    string        `toml:"lobby_room"`

	// Spawns maps a continent name to its spawn coordinate. Missing
	// entries fall back to FallbackSpawn with a logged warning.
	Spawns        map[string]SpawnPoint `toml:"spawns"`
	FallbackSpawn SpawnPoint            `toml:"fallback_spawn"`

	PlayerSpeed float64 `toml:"player_speed"`
	PlayerHP    int     `toml:"player_hp"`
}

// Default returns the configuration used when no file or environment
// overrides are given.
func Default() Configs {
	return Configs{
		Env: "local",
		Server: ServerConfigs{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Auth: AuthConfigs{
			TokenSecret:     "token-secret",
			TokenExpiration: 24 * time.Hour,
		},
		Game: GameConfigs{
			TickInterval: time.Second / 60,
			RoomCapacity: 5,
			LobbyRoom:    "Global",
			Spawns: map[string]SpawnPoint{
				"northWest": {X: 100, Y: 100},
				"northEast": {X: 900, Y: 100},
				"southWest": {X: 100, Y: 400},
				"southEast": {X: 900, Y: 400},
				"middle":    {X: 500, Y: 250},
			},
			FallbackSpawn: SpawnPoint{X: 500, Y: 250},
			PlayerSpeed:   10,
			PlayerHP:      10,
		},
	}
}

// Load reads the toml file at path on top of the defaults, then applies
// environment overrides. An empty path skips the file step.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	if v := os.Getenv("ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.Database.Port = v
	}
	if v := os.Getenv("DB_DATABASE"); v != "" {
		cfg.Database.Database = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		cfg.Auth.TokenSecret = v
	}

	return cfg, nil
}
