package config

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Options creates go-redis client options from the RedisConfig.
func (c *RedisConfig) Options() *redis.Options {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
}
