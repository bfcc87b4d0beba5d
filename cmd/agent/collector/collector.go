// Package collector gathers host telemetry and shapes it into wire samples.
package collector

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/distatus/battery"
	probing "github.com/prometheus-community/pro-bing"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/and161185/host-metrics-agent/internal/delta"
	"github.com/and161185/host-metrics-agent/internal/utils"
	"github.com/and161185/host-metrics-agent/model"
)

// pingTimeout bounds a single latency probe so a lost packet cannot wedge the
// medium tier past its interval.
const pingTimeout = 5 * time.Second

type ioSnapshot struct {
	in  uint64
	out uint64
}

// Collector queries the system telemetry provider one metric family at a
// time. Cumulative byte counters (network, disk I/O) become per-tick
// increments against snapshots held here; delta-reported gauges (disk usage,
// battery, latency) go through the shared tracker.
type Collector struct {
	tracker  *delta.Tracker
	pingHost string

	prevNet  map[string]ioSnapshot
	prevDisk map[string]ioSnapshot
}

// Sampler is one metric family: a name for logs and the query that produces
// its samples.
type Sampler struct {
	Name    string
	Collect func() ([]model.Sample, error)
}

// New creates a collector reporting deltas through tracker and probing
// latency against pingHost.
func New(tracker *delta.Tracker, pingHost string) *Collector {
	return &Collector{
		tracker:  tracker,
		pingHost: pingHost,
		prevNet:  make(map[string]ioSnapshot),
		prevDisk: make(map[string]ioSnapshot),
	}
}

// Fast returns the samplers driven by the fast tier.
func (c *Collector) Fast() []Sampler {
	return []Sampler{
		{Name: "cpu", Collect: c.CollectCPU},
		{Name: "load", Collect: c.CollectLoad},
		{Name: "memory", Collect: c.CollectMemory},
		{Name: "network", Collect: c.CollectNetwork},
		{Name: "diskio", Collect: c.CollectDiskIO},
		{Name: "uptime", Collect: c.CollectUptime},
	}
}

// Medium returns the samplers driven by the medium and resync tiers.
func (c *Collector) Medium() []Sampler {
	return []Sampler{
		{Name: "diskusage", Collect: c.CollectDiskUsage},
		{Name: "latency", Collect: c.CollectLatency},
		{Name: "battery", Collect: c.CollectBattery},
	}
}

// CollectCPU reports per-core usage percent, rounded to an integer.
func (c *Collector) CollectCPU() ([]model.Sample, error) {
	pcts, err := cpu.Percent(0, true)
	if err != nil {
		return nil, fmt.Errorf("cpu percent: %w", err)
	}

	samples := make([]model.Sample, 0, len(pcts))
	for i, pct := range pcts {
		samples = append(samples, model.Sample{
			Metric: "cpu_usage",
			Value:  strconv.Itoa(int(math.Round(pct))),
			Type:   model.Gauge,
			Tags:   []model.Tag{model.NewTag("cpu", i)},
		})
	}
	return samples, nil
}

// CollectLoad reports the 1/5/15 minute load averages rounded to 4 decimals.
func (c *Collector) CollectLoad() ([]model.Sample, error) {
	avg, err := load.Avg()
	if err != nil {
		return nil, fmt.Errorf("load avg: %w", err)
	}

	periods := []struct {
		name  string
		value float64
	}{
		{"1m", avg.Load1},
		{"5m", avg.Load5},
		{"15m", avg.Load15},
	}

	samples := make([]model.Sample, 0, len(periods))
	for _, p := range periods {
		samples = append(samples, model.Sample{
			Metric: "load_avg",
			Value:  utils.FormatFloat(utils.Round4(p.value)),
			Type:   model.Gauge,
			Tags:   []model.Tag{model.NewTag("period", p.name)},
		})
	}
	return samples, nil
}

// CollectMemory reports used memory percent, rounded to an integer.
func (c *Collector) CollectMemory() ([]model.Sample, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("virtual memory: %w", err)
	}

	return []model.Sample{{
		Metric: "memory_usage",
		Value:  strconv.Itoa(int(math.Round(vm.UsedPercent))),
		Type:   model.Gauge,
	}}, nil
}

// CollectNetwork reports per-interface byte throughput as counter increments
// since the previous tick. The first tick only seeds the baselines.
func (c *Collector) CollectNetwork() ([]model.Sample, error) {
	stats, err := psnet.IOCounters(true)
	if err != nil {
		return nil, fmt.Errorf("net iocounters: %w", err)
	}

	var samples []model.Sample
	for _, st := range stats {
		cur := ioSnapshot{in: st.BytesRecv, out: st.BytesSent}
		prev, seen := c.prevNet[st.Name]
		c.prevNet[st.Name] = cur
		if !seen || cur.in < prev.in || cur.out < prev.out {
			// No baseline yet, or the kernel counter wrapped.
			continue
		}
		samples = append(samples,
			counterSample("network_io", cur.in-prev.in, model.NewTag("interface", st.Name), model.NewTag("direction", "rx")),
			counterSample("network_io", cur.out-prev.out, model.NewTag("interface", st.Name), model.NewTag("direction", "tx")),
		)
	}
	return samples, nil
}

// CollectDiskIO reports per-device read/write bytes as counter increments
// since the previous tick. The first tick only seeds the baselines.
func (c *Collector) CollectDiskIO() ([]model.Sample, error) {
	stats, err := disk.IOCounters()
	if err != nil {
		return nil, fmt.Errorf("disk iocounters: %w", err)
	}

	var samples []model.Sample
	for name, st := range stats {
		cur := ioSnapshot{in: st.ReadBytes, out: st.WriteBytes}
		prev, seen := c.prevDisk[name]
		c.prevDisk[name] = cur
		if !seen || cur.in < prev.in || cur.out < prev.out {
			continue
		}
		samples = append(samples,
			counterSample("disk_io", cur.in-prev.in, model.NewTag("device", name), model.NewTag("direction", "read")),
			counterSample("disk_io", cur.out-prev.out, model.NewTag("device", name), model.NewTag("direction", "write")),
		)
	}
	return samples, nil
}

// CollectUptime reports seconds since boot.
func (c *Collector) CollectUptime() ([]model.Sample, error) {
	up, err := host.Uptime()
	if err != nil {
		return nil, fmt.Errorf("uptime: %w", err)
	}

	return []model.Sample{{
		Metric: "uptime",
		Value:  strconv.FormatUint(up, 10),
		Type:   model.Gauge,
	}}, nil
}

// CollectDiskUsage reports used percent per mount point, delta-tracked by
// mount path.
func (c *Collector) CollectDiskUsage() ([]model.Sample, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("disk partitions: %w", err)
	}

	var samples []model.Sample
	for _, p := range parts {
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil {
			return nil, fmt.Errorf("disk usage %s: %w", p.Mountpoint, err)
		}
		pct := math.Round(usage.UsedPercent)
		samples = append(samples, model.Sample{
			Metric: "disk_usage",
			Value:  c.tracker.Track(p.Mountpoint, pct),
			Type:   model.Gauge,
			Tags:   []model.Tag{model.NewTag("path", p.Mountpoint)},
		})
	}
	return samples, nil
}

// CollectLatency probes the fixed host once and reports the round-trip time
// in milliseconds, delta-tracked.
func (c *Collector) CollectLatency() ([]model.Sample, error) {
	pinger, err := probing.NewPinger(c.pingHost)
	if err != nil {
		return nil, fmt.Errorf("pinger %s: %w", c.pingHost, err)
	}
	pinger.Count = 1
	pinger.Timeout = pingTimeout
	pinger.SetPrivileged(false)

	if err := pinger.Run(); err != nil {
		return nil, fmt.Errorf("ping %s: %w", c.pingHost, err)
	}
	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return nil, fmt.Errorf("ping %s: no reply", c.pingHost)
	}

	rtt := utils.Round4(float64(stats.AvgRtt) / float64(time.Millisecond))
	return []model.Sample{{
		Metric: "latency",
		Value:  c.tracker.Track("latency", rtt),
		Type:   model.Gauge,
		Tags:   []model.Tag{model.NewTag("host", c.pingHost)},
	}}, nil
}

// CollectBattery reports charge percent per battery, delta-tracked by index.
// Hosts without a battery emit nothing.
func (c *Collector) CollectBattery() ([]model.Sample, error) {
	bats, err := battery.GetAll()
	if err != nil && len(bats) == 0 {
		return nil, fmt.Errorf("battery: %w", err)
	}

	var samples []model.Sample
	for i, b := range bats {
		if b == nil || b.Full == 0 {
			continue
		}
		pct := math.Round(b.Current / b.Full * 100)
		samples = append(samples, model.Sample{
			Metric: "battery",
			Value:  c.tracker.Track("battery:"+strconv.Itoa(i), pct),
			Type:   model.Gauge,
			Tags:   []model.Tag{model.NewTag("battery", i)},
		})
	}
	return samples, nil
}

func counterSample(metric string, value uint64, tags ...model.Tag) model.Sample {
	return model.Sample{
		Metric: metric,
		Value:  strconv.FormatUint(value, 10),
		Type:   model.Counter,
		Tags:   tags,
	}
}
