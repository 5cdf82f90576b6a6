package utils

import "time"

// VehicleCachePrefix and ProviderCachePrefix key the directory read-through cache.
const (
	VehicleCachePrefix  = "vehicle:"
	ProviderCachePrefix = "provider:"
)

// DefaultVehicleCacheTTL applies when VEHICLE_CACHE_TTL is unset.
const DefaultVehicleCacheTTL = 5 * time.Minute

// DefaultCleanupDelay is the payment deadline of a fresh UNPAID booking.
const DefaultCleanupDelay = 15 * time.Minute

// DefaultDeliveryWindow is how early before the rental start a vehicle may be handed over.
const DefaultDeliveryWindow = 8 * time.Hour

// DefaultRepoTimeout bounds a single repository call.
const DefaultRepoTimeout = 5 * time.Second

const CtxActorKey = "actor"
