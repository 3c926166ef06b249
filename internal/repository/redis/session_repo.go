package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"softdesk/internal/pkg"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:user:"

// SessionRepository 单点登录会话：每个用户只保留最近一次签发的 access token，
// 条目存活期跟随 token 自身的有效期
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(usrID uint64) string {
	return sessionKeyPrefix + strconv.FormatUint(usrID, 10)
}

func (r *SessionRepository) AddUserToken(usrID uint64, token string) error {
	if err := r.client.Set(context.Background(), sessionKey(usrID), token, pkg.AccessTTL).Err(); err != nil {
		return fmt.Errorf("session write: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetUserToken(usrID uint64) (string, error) {
	token, err := r.client.Get(context.Background(), sessionKey(usrID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session read: %w", err)
	}
	return token, nil
}

func (r *SessionRepository) ExtendUserToken(usrID uint64) error {
	if err := r.client.Expire(context.Background(), sessionKey(usrID), pkg.AccessTTL).Err(); err != nil {
		return fmt.Errorf("session extend: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteUserToken(usrID uint64) error {
	if err := r.client.Del(context.Background(), sessionKey(usrID)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
