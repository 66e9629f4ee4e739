package e2etest

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/status-im/market-dashboard/config"
)

// createTestConfig creates a test configuration and returns the path to the file
func createTestConfig(mockURL, port string) (string, error) {
	tempDir, err := os.MkdirTemp("", "market-dashboard-test")
	if err != nil {
		return "", err
	}

	configContent := `
port: "%s"
tokens_file: "%s"

fetch_cache:
  freshness_window: 30s
  coalesce_requests: true

coingecko:
  max_retries: 1          # no retries in tests
  request_timeout: 5s
  base_backoff: 10ms
  key_backoff: 1s
  api_keys:
    pro:
      rate_limit_per_minute: 6000
      burst: 100
    demo:
      rate_limit_per_minute: 6000
      burst: 100
    nokey:
      rate_limit_per_minute: 6000
      burst: 100

dashboard:
  default_currency: inr
  currencies: [inr, usd]
  page_size: 2
  compact_page_size: 1
  list_per_page: 50
  trending_per_page: 10

market_chart:
  default_days: 30
  chart_days:
    - label: "24 Hours"
      value: 1
    - label: "30 Days"
      value: 30

ticker:
  enabled: true
  update_interval: 1s
  cache_report_interval: 1s

# URLs for API (mock)
override_coingecko_public_url: "%s"
override_coingecko_pro_url: "%s"
`

	tokensFilePath := filepath.Join(tempDir, "tokens.json")
	tokensContent := `
{
  "api_tokens": ["test-api-key"],
  "demo_api_tokens": ["test-demo-key"]
}
`
	if err := os.WriteFile(tokensFilePath, []byte(tokensContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	configContent = fmt.Sprintf(configContent, port, tokensFilePath, mockURL, mockURL)

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(mockURL, port string) (*config.Config, string, error) {
	configPath, err := createTestConfig(mockURL, port)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.RemoveAll(filepath.Dir(configPath))
		return nil, "", err
	}

	return cfg, configPath, nil
}

// cleanupTestConfig removes the temporary directory with configuration
func cleanupTestConfig(configPath string) {
	os.RemoveAll(filepath.Dir(configPath))
}

// freePort asks the kernel for a port nobody listens on
func freePort() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer listener.Close()
	return strconv.Itoa(listener.Addr().(*net.TCPAddr).Port), nil
}
