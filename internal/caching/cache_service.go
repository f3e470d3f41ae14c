package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"slotify/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Partner resolution caching (keyed by owning user)
	GetPartnerByOwner(ctx context.Context, ownerUserID uuid.UUID) (*models.Partner, error)
	SetPartnerByOwner(ctx context.Context, partner *models.Partner, ttl time.Duration) error
	DeletePartnerByOwner(ctx context.Context, ownerUserID uuid.UUID) error

	// Plan caching
	GetPlan(ctx context.Context, planID uuid.UUID) (*models.Plan, error)
	SetPlan(ctx context.Context, plan *models.Plan, ttl time.Duration) error
	DeletePlan(ctx context.Context, planID uuid.UUID) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	// Queue operations for deferred notifications
	PushQueue(ctx context.Context, queue string, value string) error
	PopQueue(ctx context.Context, queue string) (string, error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port URLs as well as bare host:port
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
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetPartnerByOwner(ctx context.Context, ownerUserID uuid.UUID) (*models.Partner, error) {
	key := fmt.Sprintf("slotify:partner:owner:%s", ownerUserID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var partner models.Partner
	if err := json.Unmarshal(data, &partner); err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *redisCacheService) SetPartnerByOwner(ctx context.Context, partner *models.Partner, ttl time.Duration) error {
	key := fmt.Sprintf("slotify:partner:owner:%s", partner.OwnerUserID.String())
	data, err := json.Marshal(partner)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeletePartnerByOwner(ctx context.Context, ownerUserID uuid.UUID) error {
	key := fmt.Sprintf("slotify:partner:owner:%s", ownerUserID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetPlan(ctx context.Context, planID uuid.UUID) (*models.Plan, error) {
	key := fmt.Sprintf("slotify:plan:%s", planID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var plan models.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *redisCacheService) SetPlan(ctx context.Context, plan *models.Plan, ttl time.Duration) error {
	key := fmt.Sprintf("slotify:plan:%s", plan.ID.String())
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	key := fmt.Sprintf("slotify:plan:%s", planID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("slotify:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) PushQueue(ctx context.Context, queue string, value string) error {
	return r.client.RPush(ctx, fmt.Sprintf("slotify:queue:%s", queue), value).Err()
}

func (r *redisCacheService) PopQueue(ctx context.Context, queue string) (string, error) {
	val, err := r.client.LPop(ctx, fmt.Sprintf("slotify:queue:%s", queue)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // empty queue
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
