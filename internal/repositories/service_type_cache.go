package repositories

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"pawBack/internal/models"
)

const (
	serviceTypesKey = "service_types:v1"
	serviceTypesTTL = 24 * time.Hour
)

// CachedServiceTypeRepository fronts the service_types lookup with Redis.
// The table is immutable for the client, so a stale cache is impossible in
// practice; redis failures degrade to the SQL repository silently.
type CachedServiceTypeRepository struct {
	Repo *ServiceTypeRepository
	RDB  *redis.Client
}

func (c *CachedServiceTypeRepository) GetServiceTypes(ctx context.Context) ([]models.ServiceType, error) {
	if c.RDB != nil {
		raw, err := c.RDB.Get(ctx, serviceTypesKey).Result()
		if err == nil {
			var types []models.ServiceType
			if err := json.Unmarshal([]byte(raw), &types); err == nil {
				return types, nil
			}
			// broken cache entry, drop it and refill from SQL
			c.RDB.Del(ctx, serviceTypesKey)
		} else if err != redis.Nil {
			log.Printf("service type cache read failed: %v", err)
		}
	}

	types, err := c.Repo.GetServiceTypes(ctx)
	if err != nil {
		return nil, err
	}

	if c.RDB != nil {
		if raw, err := json.Marshal(types); err == nil {
			if err := c.RDB.Set(ctx, serviceTypesKey, raw, serviceTypesTTL).Err(); err != nil {
				log.Printf("service type cache write failed: %v", err)
			}
		}
	}
	return types, nil
}
