package config

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	RunAddress      string
	OrderAPIAddress string
	RequestTimeout  time.Duration
	Logger          *zap.SugaredLogger
}

func NewConfig() *Config {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout", "dashboard.log"}

	logger := zap.Must(logCfg.Build())

	cfg := &Config{RequestTimeout: 30 * time.Second}
	flag.StringVar(&cfg.RunAddress, "a", "localhost:3000", "HTTP server address")
	flag.StringVar(&cfg.OrderAPIAddress, "r", "http://localhost:8080/api", "Order store base URL")
	flag.Parse()

	cfg.Logger = logger.Sugar()

	ReadServerEnvironment(cfg)

	return cfg
}

func ReadServerEnvironment(cfg *Config) {
	if runAddress := os.Getenv("RUN_ADDRESS"); runAddress != "" {
		cfg.RunAddress = runAddress
	}

	if orderAPIAddress := os.Getenv("ORDER_API_ADDRESS"); orderAPIAddress != "" {
		cfg.OrderAPIAddress = orderAPIAddress
	}

	if timeout := os.Getenv("REQUEST_TIMEOUT"); timeout != "" {
		if parsed, err := time.ParseDuration(timeout); err == nil {
			cfg.RequestTimeout = parsed
		}
	}
}
