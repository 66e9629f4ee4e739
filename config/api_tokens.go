package config

import (
	"encoding/json"
	"os"
)

type APITokens struct {
	Tokens     []string `json:"api_tokens"`
	DemoTokens []string `json:"demo_api_tokens,omitempty"`
}

func LoadAPITokens(filename string) (*APITokens, error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		// File doesn't exist, return empty tokens
		return &APITokens{Tokens: []string{}}, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var tokens APITokens
	err = json.Unmarshal(data, &tokens)
	return &tokens, err
}

// Merge returns the union of both token sets, keeping order and dropping duplicates
func (t *APITokens) Merge(other *APITokens) *APITokens {
	result := &APITokens{Tokens: []string{}}
	for _, src := range []*APITokens{t, other} {
		if src == nil {
			continue
		}
		result.Tokens = appendUnique(result.Tokens, src.Tokens...)
		result.DemoTokens = appendUnique(result.DemoTokens, src.DemoTokens...)
	}
	return result
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if v == "" {
			continue
		}
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
