// Package model contains core data types for the project.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// MetricType defines the statsd wire type of a sample.
type MetricType string

const (
	Counter MetricType = "c"  // Counter accumulates increments.
	Set     MetricType = "s"  // Set counts unique occurrences.
	Gauge   MetricType = "g"  // Gauge reports an instantaneous value.
	Timer   MetricType = "ms" // Timer reports a duration in milliseconds.
)

// ErrInvalidMetricType is returned when a sample carries a type outside c/s/g/ms.
var ErrInvalidMetricType = errors.New("invalid metric type")

// Valid reports whether t is one of the allowed wire types.
func (t MetricType) Valid() bool {
	switch t {
	case Counter, Set, Gauge, Timer:
		return true
	}
	return false
}

var tagSanitizer = strings.NewReplacer(".", "-", " ", "-")

// Sanitize replaces the separator characters of the wire format with '-'.
func Sanitize(s string) string { return tagSanitizer.Replace(s) }

// Tag is a dimension attached to a sample, e.g. an interface name or CPU
// index. Both fields are sanitized on construction.
type Tag struct {
	Name  string
	Value string
}

// NewTag builds a Tag from a name and any printable value.
func NewTag(name string, value any) Tag {
	return Tag{Name: Sanitize(name), Value: Sanitize(fmt.Sprint(value))}
}

// Sample represents a single metric reading with its tags. The value is
// pre-formatted by the sampler; delta-reported metrics carry an explicit sign.
type Sample struct {
	Metric string
	Value  string
	Type   MetricType
	Tags   []Tag
}
