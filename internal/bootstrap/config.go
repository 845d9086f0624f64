package bootstrap

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort     string  `mapstructure:"SERVER_PORT"`
	RedisUrl       string  `mapstructure:"REDIS_URL"`
	MongoUri       string  `mapstructure:"MONGO_URI"`
	MongoDatabase  string  `mapstructure:"MONGO_DATABASE"`
	IsLocalCors    bool    `mapstructure:"LOCAL_CORS"`
	DefaultKomi    float64 `mapstructure:"DEFAULT_KOMI"`
	PageLimitGames int     `mapstructure:"PAGE_LIMIT_GAMES"`

	PageLimitProblems int `mapstructure:"PAGE_LIMIT_PROBLEMS"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "go_school"
	}
	if cfg.DefaultKomi == 0 {
		cfg.DefaultKomi = 6.5
	}
	if cfg.PageLimitProblems == 0 {
		cfg.PageLimitProblems = 10
	}

	return &cfg, nil
}
