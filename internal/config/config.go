package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Title       string
	Env         string
	Addr        string
	DBDriver    string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DatabaseURL string
	CORSOrigins []string
	LogLevel    string
	SeedDev     bool
}

// New reads the configuration from the environment. APP_ENV selects the
// connection profile: unless DB_NAME is set, each profile gets its own
// database named kickstarter_campaigns_<env>.
func New() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_TITLE", "Kickstarter Campaigns")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")

	env := strings.ToLower(v.GetString("APP_ENV"))
	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	v.SetDefault("DB_NAME", "kickstarter_campaigns_"+env)
	v.SetDefault("DB_PORT", defaultPort(driver))

	addr := v.GetString("ADDR")
	if addr == "" {
		addr = ":" + v.GetString("PORT")
	}

	return Config{
		Title:       v.GetString("APP_TITLE"),
		Env:         env,
		Addr:        addr,
		DBDriver:    driver,
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		LogLevel:    strings.ToLower(v.GetString("LOG_LEVEL")),
		SeedDev:     v.GetBool("SEED_DEV"),
	}
}

func defaultPort(driver string) string {
	switch driver {
	case DriverPostgres:
		return "5432"
	case DriverMySQL:
		return "3306"
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c Config) IsProduction() bool { return c.Env == "production" }

// DSN returns the connection string for the configured driver. DATABASE_URL
// always wins when set.
func (c Config) DSN() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	switch c.DBDriver {
	case DriverMySQL:
		return c.MySQLDSN(), nil
	case DriverPostgres:
		return c.PostgresDSN(), nil
	case DriverSQLite:
		return c.DBName + ".sqlite3?_foreign_keys=on", nil
	}
	return "", fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
}

func (c Config) MySQLDSN() string {
	mc := mysql.NewConfig()
	mc.User = c.DBUser
	mc.Passwd = c.DBPass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.DBHost, c.DBPort)
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4,utf8"}
	return mc.FormatDSN()
}

func (c Config) PostgresDSN() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable", c.DBHost, c.DBPort, c.DBUser, c.DBName)
	if c.DBPass != "" {
		dsn += " password=" + c.DBPass
	}
	return dsn
}
