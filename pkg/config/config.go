package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP          HTTP
	Logger        Logger
	Postgres      Postgres
	Kafka         Kafka
	Mailer        Mailer
	CyberSource   CyberSource
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
	ResultPageURL string `env:"RESULT_PAGE_URL"`
}

type HTTP struct {
	Port              int    `env:"HTTP_PORT" envDefault:"8080"`
	APIKeyEnabled     bool   `env:"HTTP_API_KEY_ENABLED" envDefault:"false"`
	APIKey            string `env:"HTTP_API_KEY" envDefault:"dev"`
	CallbackRateLimit int    `env:"HTTP_CALLBACK_RATE_LIMIT" envDefault:"60"` // per minute, per remote host
}

type Logger struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type Postgres struct {
	DSN     string `env:"POSTGRES_DSN"`
	MaxConn int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
}

type Kafka struct {
	Brokers                []string `env:"KAFKA_BROKERS"`
	DonationConfirmedTopic string   `env:"KAFKA_DONATION_CONFIRMED_TOPIC"`
}

type Mailer struct {
	Host     string `env:"MAILER_HOST"`
	Port     int    `env:"MAILER_PORT" envDefault:"587"`
	Login    string `env:"MAILER_LOGIN"`
	Password string `env:"MAILER_PASSWORD"`
	From     string `env:"MAILER_FROM"`
	FromName string `env:"MAILER_FROM_NAME" envDefault:"Fundación Esperanza"`
}

// CyberSource holds the Secure Acceptance profile. AccessKey, ProfileID and
// SecretKey are required: a missing credential is a startup failure, never a
// fall-through to trusting unsigned callbacks.
type CyberSource struct {
	AccessKey         string        `env:"CYBERSOURCE_ACCESS_KEY"`
	ProfileID         string        `env:"CYBERSOURCE_PROFILE_ID"`
	SecretKey         string        `env:"CYBERSOURCE_SECRET_KEY"`
	TestMode          bool          `env:"CYBERSOURCE_TEST_MODE" envDefault:"true"`
	LiveURL           string        `env:"CYBERSOURCE_LIVE_URL" envDefault:"https://secureacceptance.cybersource.com/pay"`
	TestURL           string        `env:"CYBERSOURCE_TEST_URL" envDefault:"https://testsecureacceptance.cybersource.com/pay"`
	CaptureContextTTL time.Duration `env:"CYBERSOURCE_CAPTURE_CONTEXT_TTL" envDefault:"15m"`
}

func New(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAsWithOptions[Config](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
