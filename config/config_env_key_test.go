package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"provider": map[string]any{
			"osrmUrl": "https://router.project-osrm.org",
			"timeout": "30s",
		},
		"drive": map[string]any{
			"tracePath": "demo_virtual_drive.csv",
		},
		"horizon": map[string]any{
			"forwardBudget": 1000,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "PROVIDER_OSRMURL", want: "provider.osrmUrl"},
		{envKey: "PROVIDER_TIMEOUT", want: "provider.timeout"},
		{envKey: "DRIVE_TRACEPATH", want: "drive.tracePath"},
		{envKey: "HORIZON_FORWARDBUDGET", want: "horizon.forwardBudget"},
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
