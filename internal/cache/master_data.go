package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/medsched/outpatient-api/internal/models"
)

const (
	keyDepartments = "masterdata:departments"
	keyDoctors     = "masterdata:doctors"

	masterDataTTL = 5 * time.Minute
)

// MasterData is a read-through cache for department and doctor
// listings. Every cache failure falls back to the store; a nil
// *MasterData is valid and always loads from the store. It is never
// consulted inside the booking transaction, where reads must come
// from locked rows.
type MasterData struct {
	rdb *redis.Client
}

func NewMasterData(rdb *redis.Client) *MasterData {
	return &MasterData{rdb: rdb}
}

func (c *MasterData) Departments(
	ctx context.Context,
	load func(context.Context) ([]models.Department, error),
) ([]models.Department, error) {
	return readThrough(ctx, c, keyDepartments, load)
}

func (c *MasterData) Doctors(
	ctx context.Context,
	load func(context.Context) ([]models.Doctor, error),
) ([]models.Doctor, error) {
	return readThrough(ctx, c, keyDoctors, load)
}

// Invalidate drops the cached listings after a master-data write.
func (c *MasterData) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keyDepartments, keyDoctors).Err(); err != nil {
		log.Warn().Err(err).Msg("master data cache invalidation failed")
	}
}

func readThrough[T any](
	ctx context.Context,
	c *MasterData,
	key string,
	load func(context.Context) ([]T, error),
) ([]T, error) {

	if c == nil || c.rdb == nil {
		return load(ctx)
	}

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached []T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if raw, jsonErr := json.Marshal(items); jsonErr == nil {
		if err := c.rdb.Set(ctx, key, raw, masterDataTTL).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("master data cache write failed")
		}
	}

	return items, nil
}
