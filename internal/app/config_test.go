package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("KAFKA_CONSUMER_GROUP", "")

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "5432", cfg.Postgres.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "hrm-payroll-payslip", cfg.ConsumerGroupID)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "hrm")
	t.Setenv("PAYSLIP_STORAGE_DIR", "/data/payslips")
	t.Setenv("PAYROLL_GENERATE_CRON", "0 2 1 * *")

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/data/payslips", cfg.Payslips.Dir)
	assert.Equal(t, "0 2 1 * *", cfg.PayrollCron)
	assert.NoError(t, cfg.RequireAPI())
}

func TestConfig_Require(t *testing.T) {
	err := Config{}.RequireAPI()
	assert.EqualError(t, err, "missing required env: JWT_SECRET, DB_HOST, DB_NAME")

	assert.Error(t, Config{}.RequireKafka())
	assert.NoError(t, Config{KafkaBroker: "kafka:9092"}.RequireKafka())
}
