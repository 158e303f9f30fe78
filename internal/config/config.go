package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Kafka struct {
	Brokers []string
	Topic   string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	APIAddr      string
	ListenerAddr string
	MySQLDSN     string
	Redis        Redis
	Kafka        Kafka
	SMTP         SMTP
	JWTSecret    string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	CookieDomain string
	// AdminIDs 管理员白名单，不落库
	AdminIDs []uint64
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// parseIDList 逗号分隔的 uint64 列表，非法项忽略
func parseIDList(v string) []uint64 {
	if v == "" {
		return nil
	}
	var ids []uint64
	for _, part := range strings.Split(v, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func parseBrokers(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, b := range strings.Split(v, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	return &Config{
		APIAddr:      getEnv("API_ADDR", ":8080"),
		ListenerAddr: getEnv("LISTENER_ADDR", ":8081"),
		MySQLDSN:     getEnv("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/neighbor_share?charset=utf8mb4&parseTime=True"),
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: Kafka{
			Brokers: parseBrokers(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "booking-events"),
		},
		SMTP: SMTP{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "NoReply <no-reply@example.com>"),
		},
		JWTSecret:    getEnv("JWT_SECRET", "secret-key"),
		AccessTTL:    getEnvDuration("ACCESS_TTL", 30*time.Minute),
		RefreshTTL:   getEnvDuration("REFRESH_TTL", 24*time.Hour*30),
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		AdminIDs:     parseIDList(getEnv("ADMIN_IDS", "")),
	}
}
