package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/corray333/backend-labs/payreport/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "PAYREPORT"

// MustInit loads .env, the YAML config and environment overrides, then installs the logger.
// An empty configFile searches /etc/payreport and the working directory.
func MustInit(configFile string) {
	if err := godotenv.Load("./.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("error while loading .env file: " + err.Error())
	}

	SetDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("store.postgres.password", envPrefix+"_PG_PASSWORD"); err != nil {
		panic("error while binding env: " + err.Error())
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/payreport")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			panic("error while reading config file: " + err.Error())
		}
	}

	SetupLogger()
}

// SetDefaults registers the default value of every setting.
func SetDefaults() {
	viper.SetDefault("store.driver", "sqlite")
	viper.SetDefault("store.sqlite.path", "ecommerce.db")
	viper.SetDefault("store.postgres.host", "localhost")
	viper.SetDefault("store.postgres.port", 5432)
	viper.SetDefault("store.postgres.sslmode", "disable")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", logger.FormatText)
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.jaeger_endpoint", "http://jaeger:14268/api/traces")
	viper.SetDefault("metrics.job", "payreport")
	viper.SetDefault("rabbitmq.queue", "payreport.successful_payments")
	viper.SetDefault("rabbitmq.publish_concurrency", 3)
}

func SetupLogger() {
	handler := logger.NewHandler(&logger.Options{
		Level:  logger.ParseLevel(viper.GetString("log.level")),
		Format: viper.GetString("log.format"),
	})
	log := slog.New(handler)
	slog.SetDefault(log)
}
