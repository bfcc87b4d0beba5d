package client

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/and161185/host-metrics-agent/cmd/agent/collector"
	"github.com/and161185/host-metrics-agent/internal/config"
	"github.com/and161185/host-metrics-agent/model"
)

func newTestClient(t *testing.T) (*Client, net.PacketConn) {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pc.Close() })

	cfg := &config.AgentConfig{
		StatsdAddr: pc.LocalAddr().String(),
		PingHost:   "127.0.0.1",
		Logger:     zap.NewNop().Sugar(),
	}
	clnt, err := NewClient(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clnt.transport.Close() })

	return clnt, pc
}

func readDatagram(t *testing.T, pc net.PacketConn) string {
	t.Helper()
	buf := make([]byte, 4096)
	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	return string(buf[:n])
}

func TestReport_SendsOneDatagramPerTier(t *testing.T) {
	clnt, pc := newTestClient(t)

	samplers := []collector.Sampler{
		{Name: "stub-cpu", Collect: func() ([]model.Sample, error) {
			return []model.Sample{
				{Metric: "cpu_usage", Value: "42", Type: model.Counter, Tags: []model.Tag{model.NewTag("cpu", 0)}},
				{Metric: "cpu_usage", Value: "17", Type: model.Counter, Tags: []model.Tag{model.NewTag("cpu", 1)}},
			}, nil
		}},
		{Name: "stub-mem", Collect: func() ([]model.Sample, error) {
			return []model.Sample{{Metric: "memory_usage", Value: "73", Type: model.Gauge}}, nil
		}},
	}

	clnt.report(samplers)

	hostname, err := os.Hostname()
	require.NoError(t, err)
	host := model.Sanitize(hostname)

	got := readDatagram(t, pc)
	lines := strings.Split(got, "\n")
	require.Equal(t, []string{
		"cpu_usage._t_cpu.0._t_hostname." + host + ":42|c",
		"cpu_usage._t_cpu.1._t_hostname." + host + ":17|c",
		"memory_usage._t_hostname." + host + ":73|g",
	}, lines)
}

func TestReport_FailedSamplerIsSkipped(t *testing.T) {
	clnt, pc := newTestClient(t)

	samplers := []collector.Sampler{
		{Name: "broken", Collect: func() ([]model.Sample, error) {
			return nil, errors.New("provider exploded")
		}},
		{Name: "ok", Collect: func() ([]model.Sample, error) {
			return []model.Sample{{Metric: "uptime", Value: "5", Type: model.Gauge}}, nil
		}},
	}

	clnt.report(samplers)

	got := readDatagram(t, pc)
	require.Contains(t, got, "uptime.")
	require.NotContains(t, got, "broken")
}

func TestReport_InvalidTypeDropsLine(t *testing.T) {
	clnt, pc := newTestClient(t)

	samplers := []collector.Sampler{
		{Name: "bad-type", Collect: func() ([]model.Sample, error) {
			return []model.Sample{
				{Metric: "weird", Value: "1", Type: "nope"},
				{Metric: "fine", Value: "2", Type: model.Gauge},
			}, nil
		}},
	}

	clnt.report(samplers)

	got := readDatagram(t, pc)
	require.Contains(t, got, "fine.")
	require.NotContains(t, got, "weird")
}

func TestResync_ResetsDeltaState(t *testing.T) {
	clnt, _ := newTestClient(t)

	require.Equal(t, "10", clnt.tracker.Track("k", 10))
	require.Equal(t, "+5", clnt.tracker.Track("k", 15))

	clnt.resync()

	require.Equal(t, "20", clnt.tracker.Track("k", 20), "post-resync observation is absolute")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	clnt, _ := newTestClient(t)

	// Zero intervals disable the tickers; Run must still unblock on cancel.
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- clnt.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
