package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Assess   AssessConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	UploadsDir         string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// AssessConfig holds the session-engine knobs: asset locations, the
// score file the metric reader consumes, simulated latency, and the
// cross-check re-evaluation guard. Safety thresholds are deliberately
// not configurable (see pkg/verdict).
type AssessConfig struct {
	DefaultVideoSource      string
	MotionAssetBaseDir      string
	RecommendedMotionSource string
	BigImageSource          string
	SmallImageSource        string
	ScoreFilePath           string
	SubjectIndex            int
	ScanKey                 string
	DemoTrigger             string
	ReEvaluate              bool
	ReplyDelay              time.Duration
	VerdictDelay            time.Duration
	VerdictTopic            string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:8050"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8050"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			UploadsDir:         getEnv("UPLOADS_DIR", "./uploads"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "ErgoAssist"),
		},
		Assess: AssessConfig{
			DefaultVideoSource:      getEnv("ASSESS_DEFAULT_VIDEO", "/uploads/motions/default.mp4"),
			MotionAssetBaseDir:      getEnv("ASSESS_MOTION_DIR", "/uploads/motions"),
			RecommendedMotionSource: getEnv("ASSESS_RECOMMENDED_MOTION", "/uploads/motions/recommended.mp4"),
			BigImageSource:          getEnv("ASSESS_BIG_IMAGE", "/uploads/images/verdict_big.png"),
			SmallImageSource:        getEnv("ASSESS_SMALL_IMAGE", "/uploads/images/verdict_small.png"),
			ScoreFilePath:           getEnv("ASSESS_SCORE_FILE", "./uploads/scores.json"),
			SubjectIndex:            getEnvAsInt("ASSESS_SUBJECT_INDEX", 0),
			ScanKey:                 getEnv("ASSESS_SCAN_KEY", "workspace-scan"),
			DemoTrigger:             getEnv("ASSESS_DEMO_TRIGGER", "key"),
			ReEvaluate:              getEnvAsBool("ASSESS_RE_EVALUATE", false),
			ReplyDelay:              getEnvAsDuration("ASSESS_REPLY_DELAY", 1*time.Second),
			VerdictDelay:            getEnvAsDuration("ASSESS_VERDICT_DELAY", 2*time.Second),
			VerdictTopic:            getEnv("ASSESS_VERDICT_TOPIC", "VERDICT_COMPUTED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
