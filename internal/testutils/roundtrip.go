package testutils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// RoundTripYAML writes v out as YAML and reads it back, the way a bundle
// file reaches the extractors
func RoundTripYAML[T any](t *testing.T, v *T) *T {
	t.Helper()
	data, err := yaml.Marshal(v)
	require.NoError(t, err, "failed to marshal source")

	out := new(T)
	require.NoError(t, yaml.Unmarshal(data, out), "failed to unmarshal source")
	return out
}

// MarshalPayload renders a payload as the JSON the extractor emits
func MarshalPayload(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "failed to marshal payload")
	return string(data)
}
