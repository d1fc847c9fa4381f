package rewards

import (
	"sync"
	"time"

	"github.com/play2learn/backend/internal/models"
)

const settingsTTL = 5 * time.Minute

// settingsCache holds the reward settings row for a short TTL so quiz
// submissions don't hit the database on every request. Admin updates call
// invalidate so the next read refetches.
type settingsCache struct {
	mu        sync.Mutex
	value     *models.RewardSettings
	expiresAt time.Time
	now       func() time.Time
}

func newSettingsCache() *settingsCache {
	return &settingsCache{now: time.Now}
}

func (c *settingsCache) get() *models.RewardSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil || c.now().After(c.expiresAt) {
		return nil
	}
	return c.value
}

func (c *settingsCache) set(v *models.RewardSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.expiresAt = c.now().Add(settingsTTL)
}

func (c *settingsCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
}
