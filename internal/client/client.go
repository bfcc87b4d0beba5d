// Package client runs the sampling tiers and ships encoded lines to the
// aggregation endpoint.
package client

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/host-metrics-agent/cmd/agent/collector"
	"github.com/and161185/host-metrics-agent/internal/config"
	"github.com/and161185/host-metrics-agent/internal/delta"
	"github.com/and161185/host-metrics-agent/internal/statsd"
)

// Client implements an agent that samples host telemetry and sends it to the
// metrics endpoint.
type Client struct {
	config    *config.AgentConfig
	encoder   *statsd.Encoder
	transport *statsd.Transport
	tracker   *delta.Tracker
	collector *collector.Collector
	logger    *zap.SugaredLogger
}

// NewClient resolves the host identity, dials the endpoint and wires the
// sampler set.
func NewClient(cfg *config.AgentConfig) (*Client, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	transport, err := statsd.Dial(cfg.StatsdAddr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.StatsdAddr, err)
	}

	tracker := delta.NewTracker()
	return &Client{
		config:    cfg,
		encoder:   statsd.NewEncoder(hostname),
		transport: transport,
		tracker:   tracker,
		collector: collector.New(tracker, cfg.PingHost),
		logger:    cfg.Logger,
	}, nil
}

// Run starts the fast, medium and resync tiers in the background and blocks
// until ctx is done.
func (clnt *Client) Run(ctx context.Context) error {
	fast := time.Duration(clnt.config.FastInterval) * time.Second
	medium := time.Duration(clnt.config.MediumInterval) * time.Second
	resync := time.Duration(clnt.config.ResyncInterval) * time.Second

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		clnt.tickLoop(ctx, fast, func() { clnt.report(clnt.collector.Fast()) })
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		clnt.tickLoop(ctx, medium, func() { clnt.report(clnt.collector.Medium()) })
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		clnt.tickLoop(ctx, resync, clnt.resync)
	}()

	<-ctx.Done()
	wg.Wait()
	return clnt.transport.Close()
}

func (clnt *Client) tickLoop(ctx context.Context, interval time.Duration, fn func()) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn()
		}
	}
}

// report runs one tier: all its lines go out as a single datagram. Sampler,
// encoding and send failures are logged and the tier moves on.
func (clnt *Client) report(samplers []collector.Sampler) {
	var lines []string
	for _, s := range samplers {
		samples, err := s.Collect()
		if err != nil {
			clnt.logger.Errorf("collect %s: %v", s.Name, err)
			continue
		}
		for _, sample := range samples {
			line, err := clnt.encoder.EncodeSample(sample)
			if err != nil {
				clnt.logger.Errorf("encode %s: %v", sample.Metric, err)
				continue
			}
			lines = append(lines, line)
		}
	}

	if err := clnt.transport.Send(lines); err != nil {
		clnt.logger.Errorf("send: %v", err)
	}
}

// resync clears delta state and republishes the medium tier so downstream
// consumers get fresh absolute baselines.
func (clnt *Client) resync() {
	clnt.tracker.Reset()
	clnt.report(clnt.collector.Medium())
}
