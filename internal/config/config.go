package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env           string        `mapstructure:"env"`
		AdminPort     string        `mapstructure:"admin_port"`
		AdminSecret   string        `mapstructure:"admin_secret"`
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"app"`
	Bot struct {
		Token        string `mapstructure:"token"`
		PaymentToken string `mapstructure:"payment_token"`
	} `mapstructure:"bot"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Otel struct {
		Endpoint string `mapstructure:"endpoint"`
	} `mapstructure:"otel"`
	Billing struct {
		PriceMinor       int    `mapstructure:"price_minor"`
		Currency         string `mapstructure:"currency"`
		SubscriptionDays int    `mapstructure:"subscription_days"`
	} `mapstructure:"billing"`
	Limits struct {
		DailyConnectionsFree    int `mapstructure:"daily_connections_free"`
		DailyConnectionsPremium int `mapstructure:"daily_connections_premium"`
	} `mapstructure:"limits"`
}

func LoadConfig() (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.admin_port", "8090")
	viper.SetDefault("app.token_lifespan", time.Hour)
	viper.SetDefault("billing.price_minor", 79900)
	viper.SetDefault("billing.currency", "RUB")
	viper.SetDefault("billing.subscription_days", 30)
	viper.SetDefault("limits.daily_connections_free", 3)
	viper.SetDefault("limits.daily_connections_premium", 200)

	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("app.admin_port", "ADMIN_PORT")
	viper.BindEnv("app.admin_secret", "ADMIN_SECRET")
	viper.BindEnv("app.jwt_secret", "JWT_SECRET")
	viper.BindEnv("app.token_lifespan", "TOKEN_LIFESPAN")
	viper.BindEnv("bot.token", "BOT_TOKEN")
	viper.BindEnv("bot.payment_token", "PAYMENT_PROVIDER_TOKEN")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("otel.endpoint", "OTEL_ENDPOINT")

	err = viper.Unmarshal(&cfg)
	return
}
