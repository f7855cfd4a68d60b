package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseVersion(t *testing.T) {
	tests := []struct {
		name         string
		buildVersion string
		expected     string
	}{
		{
			name:         "standard version",
			buildVersion: "1.7.8-11-g2300850-2300850",
			expected:     "v1.7",
		},
		{
			name:         "only major and minor version",
			buildVersion: "2.3",
			expected:     "v2.3",
		},
		{
			name:         "no version",
			buildVersion: "0.0.0",
			expected:     "v0.0",
		},
		{
			name:         "invalid semver",
			buildVersion: "not-a-version",
			expected:     "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalVersion := BuildVersion
			BuildVersion = tt.buildVersion
			defer func() { BuildVersion = originalVersion }()

			assert.Equal(t, tt.expected, BaseVersion())
		})
	}
}
