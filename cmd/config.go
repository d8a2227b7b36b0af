package cmd

import (
	"errors"
	"fmt"
	"time"

	"folio/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	defaultHTTPPort       = "8080"
	defaultTimezone       = "America/Mexico_City"
	defaultPhoneRegion    = "MX"
	defaultCommissionRate = "5"
	defaultLockTimeout    = 5 * time.Second
	defaultDriftSchedule  = "0 0 * * * *"
)

type Config struct {
	HTTPPort              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	BusinessTimezone      string
	PhoneRegion           string
	DefaultCommissionRate decimal.Decimal
	LockTimeout           time.Duration
	DriftReportSchedule   string
}

// LoadConfig reads the configuration through getenv, applying defaults to
// unset optional keys. Database connection keys are required.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:            valueOr(getenv("HTTP_PORT"), defaultHTTPPort),
		DBHost:              getenv("DB_HOST"),
		DBPort:              getenv("DB_PORT"),
		DBUser:              getenv("DB_USER"),
		DBPassword:          getenv("DB_PASSWORD"),
		DBName:              getenv("DB_NAME"),
		DBSslMode:           valueOr(getenv("DB_SSLMODE"), "disable"),
		BusinessTimezone:    valueOr(getenv("BUSINESS_TIMEZONE"), defaultTimezone),
		PhoneRegion:         valueOr(getenv("PHONE_REGION"), defaultPhoneRegion),
		DriftReportSchedule: valueOr(getenv("DRIFT_REPORT_SCHEDULE"), defaultDriftSchedule),
	}

	rate, rateErr := decimal.NewFromString(valueOr(getenv("DEFAULT_COMMISSION_RATE"), defaultCommissionRate))
	if rateErr != nil {
		rateErr = errs.NewValueIsInvalidErrorWithCause("DEFAULT_COMMISSION_RATE", rateErr)
	}
	config.DefaultCommissionRate = rate

	config.LockTimeout = defaultLockTimeout
	var timeoutErr error
	if raw := getenv("LOCK_TIMEOUT"); raw != "" {
		config.LockTimeout, timeoutErr = time.ParseDuration(raw)
		if timeoutErr != nil {
			timeoutErr = errs.NewValueIsInvalidErrorWithCause("LOCK_TIMEOUT", timeoutErr)
		}
	}

	var required []error
	for key, value := range map[string]string{
		"DB_HOST": config.DBHost,
		"DB_PORT": config.DBPort,
		"DB_USER": config.DBUser,
		"DB_NAME": config.DBName,
	} {
		if value == "" {
			required = append(required, errs.NewValueIsRequiredError(key))
		}
	}

	if err := errors.Join(append(required, rateErr, timeoutErr)...); err != nil {
		return Config{}, err
	}
	return config, nil
}

// DSN is the PostgreSQL connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
