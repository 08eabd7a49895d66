package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates the service configuration.
type Config struct {
	Server ServerConfig
	Chat   ChatConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Chat: chat}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// ChatConfig describes transcript store tuning.
type ChatConfig struct {
	TranscriptCapacity int
}

func loadChatConfig() (ChatConfig, error) {
	capacity := 16
	if override, err := parseOptionalIntEnv("CHAT_TRANSCRIPT_CAPACITY"); err != nil {
		return ChatConfig{}, err
	} else if override != nil {
		if *override < 1 {
			capacity = 1
		} else {
			capacity = *override
		}
	}

	return ChatConfig{TranscriptCapacity: capacity}, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
