package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=pawnshop_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultChannelID = "PawnDesk"
const defaultChannelKey = "PawnDeskKey001"
const defaultHTTPAddr = ":8080"
const defaultServiceFee = "10.0"

const StorePostgres = "postgres"
const StoreMemory = "memory"

type Config struct {
	DatabaseDSN   string
	MigrationsDir string
	HTTPAddr      string
	ChannelID     string
	ChannelKey    string
	ServiceFee    decimal.Decimal
	Store         string
}

func Load() (Config, error) {
	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	channelKey := strings.TrimSpace(os.Getenv("CHANNEL_KEY"))
	if channelKey == "" {
		channelKey = defaultChannelKey
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
	}

	rawFee := strings.TrimSpace(os.Getenv("SERVICE_FEE"))
	if rawFee == "" {
		rawFee = defaultServiceFee
	}
	serviceFee, err := decimal.NewFromString(rawFee)
	if err != nil {
		return Config{}, fmt.Errorf("parse SERVICE_FEE %q: %w", rawFee, err)
	}
	if serviceFee.LessThan(decimal.Zero) {
		return Config{}, fmt.Errorf("SERVICE_FEE cannot be negative")
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = filepath.Join("src", "migrations")
	}

	store := strings.ToLower(strings.TrimSpace(os.Getenv("STORE")))
	switch store {
	case "":
		store = StorePostgres
	case StorePostgres, StoreMemory:
	default:
		return Config{}, fmt.Errorf("STORE must be %q or %q", StorePostgres, StoreMemory)
	}

	return Config{
		DatabaseDSN:   normalizeConnectionString(conn),
		MigrationsDir: migrationsDir,
		HTTPAddr:      httpAddr,
		ChannelID:     channelID,
		ChannelKey:    channelKey,
		ServiceFee:    serviceFee,
		Store:         store,
	}, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
