package shared

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"reservation/shared/cache"
	"reservation/shared/constant"
	"reservation/shared/dto"
	"reservation/shared/failure"
)

const (
	cacheKeySeparator = ":"

	availabilityVersionWindow = 24 * time.Hour
	availabilityVersionZero   = "0"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the prefix and the non-empty parts with ":".
func BuildCacheKey(prefix string, parts ...string) string {
	key := []string{prefix}

	for _, part := range parts {
		if part == "" {
			continue
		}

		key = append(key, part)
	}

	return strings.Join(key, cacheKeySeparator)
}

// InvalidateCaches drops every key under prefix. Failures are logged only;
// a stale entry expires with its TTL.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix ...string) {
	pattern := BuildCacheKey(prefix[0], prefix[1:]...) + cacheKeySeparator + "*"

	if err := c.Clear(ctx, pattern); err != nil {
		log.Warn().Err(err).Str("pattern", pattern).Msg("failed to invalidate caches")
	}
}

func availabilityVersionKey(roomID string) string {
	return BuildCacheKey(constant.CachePrefixAvailabilityVersion, roomID)
}

// AvailabilityCacheKey builds the availability entry key under the room's
// current version. Entries filled under an older version are never read again.
func AvailabilityCacheKey(ctx context.Context, c cache.RedisCache, roomID string, parts ...string) string {
	version := availabilityVersionZero
	if err := c.Get(ctx, availabilityVersionKey(roomID), &version); err != nil {
		version = availabilityVersionZero
	}

	return BuildCacheKey(constant.CachePrefixAvailability, append([]string{roomID, "v" + version}, parts...)...)
}

// InvalidateAvailability bumps the room's version before clearing its entries,
// so a probe that read the old version cannot republish a stale answer.
func InvalidateAvailability(ctx context.Context, c cache.RedisCache, roomID string) {
	if _, err := c.Incr(ctx, availabilityVersionKey(roomID), availabilityVersionWindow); err != nil {
		log.Warn().Err(err).Str("room_id", roomID).Msg("failed to bump availability version")
	}

	InvalidateCaches(ctx, c, constant.CachePrefixAvailability, roomID)
}

// UserIDFromContext returns the authenticated user set by the auth middleware.
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		return "", failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	return userID, nil
}
