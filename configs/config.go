package config

import (
	"os"
	"strconv"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	DiscordToken                 string
	DiscordGuildID               string
	DiscordApprovalChannelID     string
	DiscordNotificationChannelID string
	LinkedInClientID             string
	LinkedInClientSecret         string
	LinkedInRedirectURI          string
	LinkedInAccessToken          string
	LinkedInPersonID             string
	PostgresURI                  string
	RedisURI                     string
	WebhookURL                   string
	FrontendURL                  string
	PollInterval                 time.Duration
	PublishTimeout               time.Duration
	ContentLimit                 int
	R2                           R2
	SecretKey                    string
	CookieName                   string
	AdminKey                     string
}

func LoadConfig() *Config {
	return &Config{
		DiscordToken:                 getEnv("DISCORD_TOKEN", ""),
		DiscordGuildID:               getEnv("DISCORD_GUILD_ID", ""),
		DiscordApprovalChannelID:     getEnv("DISCORD_APPROVAL_CHANNEL_ID", ""),
		DiscordNotificationChannelID: getEnv("DISCORD_NOTIFICATION_CHANNEL_ID", ""),
		LinkedInClientID:             getEnv("LINKEDIN_CLIENT_ID", ""),
		LinkedInClientSecret:         getEnv("LINKEDIN_CLIENT_SECRET", ""),
		LinkedInRedirectURI:          getEnv("LINKEDIN_REDIRECT_URI", ""),
		LinkedInAccessToken:          getEnv("LINKEDIN_ACCESS_TOKEN", ""),
		LinkedInPersonID:             getEnv("LINKEDIN_PERSON_ID", ""),
		PostgresURI:                  getEnv("POSTGRES_URI", ""),
		RedisURI:                     getEnv("REDIS_URI", ""),
		WebhookURL:                   getEnv("N8N_WEBHOOK_URL", ""),
		FrontendURL:                  getEnv("FRONTEND_URL", "http://localhost:5173"),
		PollInterval:                 time.Duration(getEnvInt("POLL_INTERVAL", 30)) * time.Second,
		PublishTimeout:               time.Duration(getEnvInt("PUBLISH_TIMEOUT", 30)) * time.Second,
		ContentLimit:                 getEnvInt("LINKEDIN_CHAR_LIMIT", 3000),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "draftflow_session"),
		AdminKey:   getEnv("ADMIN_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
