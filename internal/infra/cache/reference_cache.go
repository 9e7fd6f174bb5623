package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"app/internal/domain/model"
)

const (
	categoriesKey = "ref:categories"
	unitsKey      = "ref:units"
	referenceTTL  = 10 * time.Minute
)

// ReferenceCacheはカテゴリ・単位のread-throughキャッシュ。
// 参照データは変更頻度が低いのでTTLつきで丸ごと持つ。
type ReferenceCache struct {
	client *redis.Client
}

func NewReferenceCache(client *redis.Client) *ReferenceCache {
	return &ReferenceCache{client: client}
}

func (c *ReferenceCache) GetCategories(ctx context.Context) ([]model.Category, bool, error) {
	raw, err := c.client.Get(ctx, categoriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var categories []model.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, false, err
	}
	return categories, true, nil
}

func (c *ReferenceCache) SetCategories(ctx context.Context, categories []model.Category) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoriesKey, raw, referenceTTL).Err()
}

func (c *ReferenceCache) GetUnits(ctx context.Context) ([]model.Unit, bool, error) {
	raw, err := c.client.Get(ctx, unitsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var units []model.Unit
	if err := json.Unmarshal(raw, &units); err != nil {
		return nil, false, err
	}
	return units, true, nil
}

func (c *ReferenceCache) SetUnits(ctx context.Context, units []model.Unit) error {
	raw, err := json.Marshal(units)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, unitsKey, raw, referenceTTL).Err()
}
