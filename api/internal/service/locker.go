package service

import (
	"walletwatch/api/internal/infra/cache"
)

// LockerService is an in-process advisory lock keyed by string. The cycle
// and the HTTP boundary take the same wallet key, so a wallet is never
// synchronized and deleted at once.
type LockerService struct {
	held *cache.Cache
}

func NewLockerService(held *cache.Cache) *LockerService {
	return &LockerService{held: held}
}

func (s *LockerService) TryLock(key string) bool {
	return s.held.SetIfAbsent(key, struct{}{})
}

func (s *LockerService) Unlock(key string) {
	s.held.Del(key)
}

func (s *LockerService) IsLocked(key string) bool {
	return s.held.Load(key) != nil
}

func walletLockKey(address string) string {
	return "wallet:" + address
}
