package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetricTypeValid(t *testing.T) {
	for _, typ := range []MetricType{Counter, Set, Gauge, Timer} {
		require.True(t, typ.Valid(), "type %q should be valid", typ)
	}
	for _, typ := range []MetricType{"", "x", "gauge", "C", "ms "} {
		require.False(t, typ.Valid(), "type %q should be invalid", typ)
	}
}

func TestNewTagSanitizes(t *testing.T) {
	tag := NewTag("mount point", "disk 0.partition 1")
	require.Equal(t, "mount-point", tag.Name)
	require.Equal(t, "disk-0-partition-1", tag.Value)
}

func TestNewTagNumericValue(t *testing.T) {
	require.Equal(t, Tag{Name: "cpu", Value: "0"}, NewTag("cpu", 0))
	require.Equal(t, Tag{Name: "cpu", Value: "12"}, NewTag("cpu", 12))
}

func TestSanitizeKeepsOtherCharacters(t *testing.T) {
	require.Equal(t, "/var/log", Sanitize("/var/log"))
	require.Equal(t, "eth0", Sanitize("eth0"))
}
