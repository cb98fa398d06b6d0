package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Telegram struct {
		Token      string `mapstructure:"token"`
		DispatchID int64  `mapstructure:"dispatch_chat_id"`
	} `mapstructure:"telegram"`

	Storage struct {
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"storage"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "jrs-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "jrs_db")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// JWT secret must come from the environment when not in the file
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not found in environment or config file")
		}
	}

	// Telegram notifications are optional; missing token disables them
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}
	if chat := os.Getenv("TELEGRAM_DISPATCH_CHAT_ID"); chat != "" {
		if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
			cfg.Telegram.DispatchID = id
		}
	}
	if cfg.Telegram.Token == "" {
		log.Printf("[Config] Telegram token not set, dispatch notifications disabled")
	}

	// POD object storage (S3/R2 compatible); optional
	if ep := os.Getenv("STORAGE_ENDPOINT"); ep != "" {
		cfg.Storage.Endpoint = ep
	}
	if ak := os.Getenv("STORAGE_ACCESS_KEY"); ak != "" {
		cfg.Storage.AccessKey = ak
	}
	if sk := os.Getenv("STORAGE_SECRET_KEY"); sk != "" {
		cfg.Storage.SecretKey = sk
	}
	if b := os.Getenv("STORAGE_BUCKET"); b != "" {
		cfg.Storage.Bucket = b
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "auto"
	}

	return &cfg
}
