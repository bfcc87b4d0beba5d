// Package statsd implements the statsd line protocol and the UDP transport
// that carries it to the aggregation endpoint.
package statsd

import (
	"fmt"
	"strings"

	"github.com/and161185/host-metrics-agent/model"
)

// tagPrefix introduces every tag on the wire.
const tagPrefix = "_t_"

// Encoder renders samples as protocol lines, stamping each one with the
// identity of the host it was built for.
type Encoder struct {
	hostTag model.Tag
}

// NewEncoder creates an encoder that appends the given hostname as the
// trailing tag of every line.
func NewEncoder(hostname string) *Encoder {
	return &Encoder{hostTag: model.NewTag("hostname", hostname)}
}

// Encode produces one line of the wire protocol:
//
//	metric._t_name.value. ... ._t_hostname.host:value|type
//
// Tags are rendered in call order; the host tag always comes last.
func (e *Encoder) Encode(metric, value string, typ model.MetricType, tags ...model.Tag) (string, error) {
	if !typ.Valid() {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidMetricType, typ)
	}

	var b strings.Builder
	b.WriteString(metric)
	for _, tag := range tags {
		writeTag(&b, tag)
	}
	writeTag(&b, e.hostTag)
	b.WriteString(":")
	b.WriteString(value)
	b.WriteString("|")
	b.WriteString(string(typ))
	return b.String(), nil
}

// EncodeSample renders a collected sample.
func (e *Encoder) EncodeSample(s model.Sample) (string, error) {
	return e.Encode(s.Metric, s.Value, s.Type, s.Tags...)
}

func writeTag(b *strings.Builder, tag model.Tag) {
	b.WriteString(".")
	b.WriteString(tagPrefix)
	b.WriteString(tag.Name)
	b.WriteString(".")
	b.WriteString(tag.Value)
}
