package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Exam    ExamConfig
	Storage StorageConfig
	Redis   RedisConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type ExamConfig struct {
	// DurationSeconds is the countdown length of a session.
	DurationSeconds int
	// ReportCacheTTL bounds how long evaluation reports stay cached.
	ReportCacheTTL time.Duration
}

type StorageConfig struct {
	// PackagesDir is where reading packages are kept as JSON files.
	PackagesDir string
	// SQLitePath is the attempt-history database file.
	SQLitePath string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("exam.duration_seconds", 3600)
	viper.SetDefault("exam.report_cache_ttl", 3600)
	viper.SetDefault("storage.packages_dir", "./data/packages")
	viper.SetDefault("storage.sqlite_path", "./data/attempts.db")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Defaults cover a missing file; anything else is a real failure.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Exam: ExamConfig{
			DurationSeconds: viper.GetInt("exam.duration_seconds"),
			ReportCacheTTL:  viper.GetDuration("exam.report_cache_ttl") * time.Second,
		},
		Storage: StorageConfig{
			PackagesDir: viper.GetString("storage.packages_dir"),
			SQLitePath:  viper.GetString("storage.sqlite_path"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if packagesDir := os.Getenv("PACKAGES_DIR"); packagesDir != "" {
		config.Storage.PackagesDir = packagesDir
	}
	if sqlitePath := os.Getenv("SQLITE_PATH"); sqlitePath != "" {
		config.Storage.SQLitePath = sqlitePath
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}

	return config, nil
}

// ExamDuration returns the configured countdown as a duration.
func (c *Config) ExamDuration() time.Duration {
	return time.Duration(c.Exam.DurationSeconds) * time.Second
}
