package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"http": map[string]any{
			"maxRequestBodySize": "16MB",
			"rateLimit": map[string]any{
				"expiresIn": "3m",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
			"kafka": map[string]any{
				"brokers": []any{},
			},
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"catalog": map[string]any{
			"farmProductsPath": "farm_product.json",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "HTTP_MAXREQUESTBODYSIZE", want: "http.maxRequestBodySize"},
		{envKey: "HTTP_RATELIMIT_EXPIRESIN", want: "http.rateLimit.expiresIn"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "PUBSUB_KAFKA_BROKERS", want: "pubsub.kafka.brokers"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "CATALOG_FARMPRODUCTSPATH", want: "catalog.farmProductsPath"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
