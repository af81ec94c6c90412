package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Sessions struct {
	TTL      time.Duration
	Capacity int
}

func NewSessions() (*Sessions, error) {
	cfg := &Sessions{
		TTL:      time.Hour,
		Capacity: 1024,
	}

	if ttlStr, ok := os.LookupEnv("SESSION_TTL"); ok {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
		}
		cfg.TTL = ttl
	}

	if capStr, ok := os.LookupEnv("SESSION_CAPACITY"); ok {
		capacity, err := strconv.Atoi(capStr)
		if err != nil {
			return nil, fmt.Errorf("unable to convert SESSION_CAPACITY to int: %w", err)
		}
		if capacity < 1 {
			return nil, fmt.Errorf("SESSION_CAPACITY must be at least 1, got %d", capacity)
		}
		cfg.Capacity = capacity
	}

	return cfg, nil
}
