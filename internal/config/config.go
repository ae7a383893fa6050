package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Storage backend names accepted in config.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Logger  LoggerConfig
	SMTP    SMTPConfig
	OTP     OTPConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StorageConfig selects the persistence backend. The portal historically ran
// on flat JSON files and later on a relational database; both adapters serve
// the same store interfaces.
type StorageConfig struct {
	Backend string // "file" or "sqlite"
	DataDir string // file backend: directory holding the JSON documents
	DBPath  string // sqlite backend: database file path
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type LoggerConfig struct {
	Env   string
	Level string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type OTPConfig struct {
	TTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("storage.backend", BackendFile)
	viper.SetDefault("storage.data_dir", "data")
	viper.SetDefault("storage.db_path", "campusquiz.db")
	viper.SetDefault("jwt.access_token_ttl", 15*time.Minute)
	viper.SetDefault("jwt.refresh_token_ttl", 7*24*time.Hour)
	viper.SetDefault("otp.ttl", 10*time.Minute)
	viper.SetDefault("logger.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults cover everything.
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
		Storage: StorageConfig{
			Backend: viper.GetString("storage.backend"),
			DataDir: viper.GetString("storage.data_dir"),
			DBPath:  viper.GetString("storage.db_path"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey:       viper.GetString("jwt.secret_key"),
			AccessTokenTTL:  viper.GetDuration("jwt.access_token_ttl"),
			RefreshTokenTTL: viper.GetDuration("jwt.refresh_token_ttl"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("smtp.host"),
			Port:     viper.GetInt("smtp.port"),
			Username: viper.GetString("smtp.username"),
			Password: viper.GetString("smtp.password"),
			From:     viper.GetString("smtp.from"),
		},
		OTP: OTPConfig{
			TTL: viper.GetDuration("otp.ttl"),
		},
	}

	// Override with environment variables if set
	if backend := os.Getenv("STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}
	if dataDir := os.Getenv("STORAGE_DATA_DIR"); dataDir != "" {
		config.Storage.DataDir = dataDir
	}
	if dbPath := os.Getenv("STORAGE_DB_PATH"); dbPath != "" {
		config.Storage.DBPath = dbPath
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}
	if smtpHost := os.Getenv("SMTP_HOST"); smtpHost != "" {
		config.SMTP.Host = smtpHost
	}
	if smtpUser := os.Getenv("EMAIL_ADDRESS"); smtpUser != "" {
		config.SMTP.Username = smtpUser
		if config.SMTP.From == "" {
			config.SMTP.From = smtpUser
		}
	}
	if smtpPass := os.Getenv("EMAIL_PASSWORD"); smtpPass != "" {
		config.SMTP.Password = smtpPass
	}

	if config.Storage.Backend != BackendFile && config.Storage.Backend != BackendSQLite {
		return nil, fmt.Errorf("unknown storage backend: %q", config.Storage.Backend)
	}

	return config, nil
}
