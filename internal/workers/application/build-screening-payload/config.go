// internal/workers/application/build-screening-payload/config.go
package buildscreeningpayload

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
