package redis

import (
	"context"
	"testing"
	"time"

	"github.com/Alijeyrad/clinic_console/config"
)

func TestFromCentralConfig(t *testing.T) {
	tests := []struct {
		name string
		in   config.RedisConfig
		want Config
	}{
		{
			name: "all defaults",
			in:   config.RedisConfig{},
			want: DefaultConfig(),
		},
		{
			name: "overrides",
			in: config.RedisConfig{
				Addr:                "redis:6380",
				DB:                  2,
				PoolSize:            8,
				DialTimeoutSeconds:  1,
				ReadTimeoutSeconds:  2,
				WriteTimeoutSeconds: 4,
			},
			want: Config{
				Addr:         "redis:6380",
				DB:           2,
				PoolSize:     8,
				DialTimeout:  time.Second,
				ReadTimeout:  2 * time.Second,
				WriteTimeout: 4 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromCentralConfig(tt.in); got != tt.want {
				t.Errorf("FromCentralConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewRedis_EmptyAddr(t *testing.T) {
	if _, err := NewRedis(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty addr")
	}
}
