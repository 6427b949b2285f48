package memory

import (
	"time"

	"teletherapy-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const policyConfigKey = "policy_config:current"

// PolicyCache keeps the current policy config in process memory so that
// per-request pricing decisions do not hit the database. Admin updates
// invalidate it explicitly; the TTL bounds staleness across instances.
type PolicyCache struct {
	cache *cache.Cache
}

func NewPolicyCache() *PolicyCache {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &PolicyCache{
		cache: c,
	}
}

func (r *PolicyCache) Get() (*entity.PolicyConfig, bool) {
	if x, found := r.cache.Get(policyConfigKey); found {
		return x.(*entity.PolicyConfig), true
	}
	return nil, false
}

func (r *PolicyCache) Set(config *entity.PolicyConfig) {
	r.cache.Set(policyConfigKey, config, cache.DefaultExpiration)
}

func (r *PolicyCache) Invalidate() {
	r.cache.Delete(policyConfigKey)
}
