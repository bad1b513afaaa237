package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bizforge/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type CacheService interface {
	// Organization caching. Reads go through the cache keyed by slug;
	// every organization update must invalidate both the old and the new
	// slug key before returning so the next read sees the new config.
	GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error)
	SetOrganizationBySlug(ctx context.Context, org *models.Organization, ttl time.Duration) error
	DeleteOrganizationBySlug(ctx context.Context, slugs ...string) error

	// Per-organization record stats written by the background refresh job.
	GetResourceStats(ctx context.Context, organizationID uuid.UUID) (map[string]int64, error)
	SetResourceStats(ctx context.Context, organizationID uuid.UUID, stats map[string]int64, ttl time.Duration) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both host:port and redis://host:port forms
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		zap.L().Warn("redis ping failed on initialization", zap.String("addr", parsedAddr), zap.Error(pingErr))
	}

	return &redisCacheService{client: client}
}

func orgSlugKey(slug string) string {
	return fmt.Sprintf("bizforge:org:slug:%s", slug)
}

func resourceStatsKey(organizationID uuid.UUID) string {
	return fmt.Sprintf("bizforge:org:stats:%s", organizationID.String())
}

func (r *redisCacheService) GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	data, err := r.client.Get(ctx, orgSlugKey(slug)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var org models.Organization
	if err := json.Unmarshal(data, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *redisCacheService) SetOrganizationBySlug(ctx context.Context, org *models.Organization, ttl time.Duration) error {
	data, err := json.Marshal(org)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, orgSlugKey(org.Slug), data, ttl).Err()
}

func (r *redisCacheService) DeleteOrganizationBySlug(ctx context.Context, slugs ...string) error {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if slug != "" {
			keys = append(keys, orgSlugKey(slug))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisCacheService) GetResourceStats(ctx context.Context, organizationID uuid.UUID) (map[string]int64, error) {
	data, err := r.client.Get(ctx, resourceStatsKey(organizationID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stats map[string]int64
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *redisCacheService) SetResourceStats(ctx context.Context, organizationID uuid.UUID, stats map[string]int64, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, resourceStatsKey(organizationID), data, ttl).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
