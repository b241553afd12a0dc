package observability

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/personnel-backend/internal/platform/logger"
)

// StartDBCollector samples the connection pool behind db until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.collectDBStats(db); err != nil && log != nil {
					log.Warn("metrics: db pool stats unavailable", "error", err)
				}
			}
		}
	}()
}

func (m *Metrics) collectDBStats(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	stats := sqlDB.Stats()
	m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
	m.dbStats.Set(float64(stats.InUse), "in_use")
	m.dbStats.Set(float64(stats.Idle), "idle")
	m.dbStats.Set(float64(stats.WaitCount), "wait_count")
	m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
	m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
	m.dbStats.Set(float64(stats.MaxIdleClosed), "max_idle_closed")
	m.dbStats.Set(float64(stats.MaxLifetimeClosed), "max_lifetime_closed")
	return nil
}

// StartRedisCollector pings addr on every tick. An empty addr disables it.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = rdb.Close()
				return
			case <-ticker.C:
				if err := m.pingRedis(ctx, rdb); err != nil && log != nil {
					log.Warn("metrics: redis ping failed", "error", err)
				}
			}
		}
	}()
}

func (m *Metrics) pingRedis(ctx context.Context, rdb *redis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	start := time.Now()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		m.redisUp.Set(0)
		return err
	}
	m.redisUp.Set(1)
	m.redisPing.Set(time.Since(start).Seconds())
	return nil
}
