package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// PortalSessionKey returns the cache key holding the active session JTI for
// a portal user. Role is "student", "teacher" or "parent".
func (r *CacheKeyStruct) PortalSessionKey(role string, personID int) string {
	return fmt.Sprintf("portal:%s:%d:session", role, personID)
}

// ParentNotifyChannel returns the Redis PubSub channel for a parent's
// realtime notification stream.
func (r *CacheKeyStruct) ParentNotifyChannel(parentID int) string {
	return fmt.Sprintf("parent:%d:notify", parentID)
}

// RecoveryAttemptsKey tracks failed security-question attempts per admin.
func (r *CacheKeyStruct) RecoveryAttemptsKey(username string) string {
	return fmt.Sprintf("recovery:%s:attempts", username)
}

var CacheKey = NewCacheKeyStruct()
