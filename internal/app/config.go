package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/nateesoft/management-hrm-system/internal/payroll"
	"github.com/nateesoft/management-hrm-system/internal/shared/connection"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	Postgres    connection.PostgresConfig
	RedisAddr   string
	KafkaBroker string

	Payslips        payroll.PayslipStorage
	PayrollCron     string
	CasbinModelPath string
	ConnectRetries  int
	ConsumerGroupID string
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:      envOr("PORT", "3000"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Postgres: connection.PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			Port:     envOr("DB_PORT", "5432"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
			TimeZone: os.Getenv("DB_TIMEZONE"),
		},
		RedisAddr:   envOr("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		Payslips: payroll.PayslipStorage{
			Dir:           os.Getenv("PAYSLIP_STORAGE_DIR"),
			PublicBaseURL: os.Getenv("PAYSLIP_PUBLIC_BASE_URL"),
		},
		PayrollCron:     os.Getenv("PAYROLL_GENERATE_CRON"),
		CasbinModelPath: os.Getenv("CASBIN_MODEL_PATH"),
		ConnectRetries:  5,
		ConsumerGroupID: envOr("KAFKA_CONSUMER_GROUP", "hrm-payroll-payslip"),
	}

	return cfg, nil
}

// RequireAPI checks the settings the HTTP server cannot start without.
func (c Config) RequireAPI() error {
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Postgres.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env: %s", strings.Join(missing, ", "))
	}
	return nil
}

// RequireKafka is used by the worker and consumer processes.
func (c Config) RequireKafka() error {
	if c.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
