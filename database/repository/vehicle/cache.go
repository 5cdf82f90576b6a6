package vehicleRepo

import (
	"context"
	"encoding/json"
	"time"

	"rentify/models"
	"rentify/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedDirectory is a Redis read-through cache in front of another directory.
// Cache failures degrade to the underlying directory.
type CachedDirectory struct {
	Next  VehicleDirectory
	Cache *redis.Client
	TTL   time.Duration
}

func NewCachedDirectory(next VehicleDirectory, cache *redis.Client, ttl time.Duration) *CachedDirectory {
	if ttl <= 0 {
		ttl = utils.DefaultVehicleCacheTTL
	}
	return &CachedDirectory{Next: next, Cache: cache, TTL: ttl}
}

func (d *CachedDirectory) GetVehicles(ctx context.Context, ids []string) ([]models.Vehicle, error) {
	logger := utils.GetLogger()

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = utils.VehicleCachePrefix + id
	}

	found := make([]models.Vehicle, 0, len(ids))
	var missing []string

	vals, err := d.Cache.MGet(ctx, keys...).Result()
	if err != nil {
		logger.Warn("vehicle cache read failed", zap.Error(err))
		return d.Next.GetVehicles(ctx, ids)
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var veh models.Vehicle
		if err := json.Unmarshal([]byte(s), &veh); err != nil {
			missing = append(missing, ids[i])
			continue
		}
		found = append(found, veh)
	}
	if len(missing) == 0 {
		return found, nil
	}

	loaded, err := d.Next.GetVehicles(ctx, missing)
	if err != nil {
		return nil, err
	}
	pipe := d.Cache.Pipeline()
	for _, veh := range loaded {
		if b, err := json.Marshal(veh); err == nil {
			pipe.Set(ctx, utils.VehicleCachePrefix+veh.ID, b, d.TTL)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("vehicle cache write failed", zap.Error(err))
	}
	return append(found, loaded...), nil
}

func (d *CachedDirectory) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	logger := utils.GetLogger()
	key := utils.ProviderCachePrefix + providerID

	if s, err := d.Cache.Get(ctx, key).Result(); err == nil {
		var p models.Provider
		if json.Unmarshal([]byte(s), &p) == nil {
			return &p, nil
		}
	} else if err != redis.Nil {
		logger.Warn("provider cache read failed", zap.Error(err))
	}

	p, err := d.Next.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(p); err == nil {
		if err := d.Cache.Set(ctx, key, b, d.TTL).Err(); err != nil {
			logger.Warn("provider cache write failed", zap.Error(err))
		}
	}
	return p, nil
}
