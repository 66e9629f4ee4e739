package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultCacheConfig()

	assert.Equal(t, 30*time.Second, config.FreshnessWindow)
	assert.True(t, config.CoalesceRequests)
}

func TestConfig_YAMLDeserialization(t *testing.T) {
	yamlData := `
freshness_window: 15s
coalesce_requests: false
`

	var config Config
	err := yaml.Unmarshal([]byte(yamlData), &config)
	assert.NoError(t, err)

	assert.Equal(t, 15*time.Second, config.FreshnessWindow)
	assert.False(t, config.CoalesceRequests)
}

func TestNewService_FallsBackToDefaultWindow(t *testing.T) {
	service := NewService(Config{}, FetcherFunc(nil))
	assert.Equal(t, 30*time.Second, service.config.FreshnessWindow)
}
