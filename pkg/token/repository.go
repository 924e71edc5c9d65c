package token

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(client *redis.Client) *redisRepository {
	return &redisRepository{client}
}

type redisRepository struct {
	client *redis.Client
}

func (r redisRepository) SetRefreshToken(userId uint, tokenId string, expiresIn time.Duration) error {
	key := refreshTokenKey(userId, tokenId)
	if err := r.client.Set(key, "0", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token for user %d: %v", userId, err)
	}
	return nil
}

func (r redisRepository) DeleteRefreshToken(userId uint, previousTokenId string) error {
	key := refreshTokenKey(userId, previousTokenId)
	result, err := r.client.Del(key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete refresh token for user %d: %v", userId, err)
	}
	if result < 1 {
		return fmt.Errorf("no refresh token to delete for user %d", userId)
	}
	return nil
}

func (r redisRepository) DeleteRefreshTokens(userId uint) error {
	pattern := fmt.Sprintf("user:%d:token:*", userId)
	keys, err := r.client.Keys(pattern).Result()
	if err != nil {
		return fmt.Errorf("failed to find refresh tokens for user %d: %v", userId, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh tokens for user %d: %v", userId, err)
	}
	return nil
}

func refreshTokenKey(userId uint, tokenId string) string {
	return fmt.Sprintf("user:%d:token:%s", userId, tokenId)
}
