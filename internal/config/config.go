// Package config provides application configuration structures and helpers.
package config

import (
	"flag"
	"log"
	"os"
	"strconv"

	"go.uber.org/zap"
)

// AgentConfig holds the configuration settings for the agent. Defaults are
// the fixed constants of the wire contract; flags and environment variables
// override them.
type AgentConfig struct {
	StatsdAddr     string // Aggregation endpoint address (host:port)
	FastInterval   int    // Interval for high-churn samplers (in seconds)
	MediumInterval int    // Interval for low-churn samplers (in seconds)
	ResyncInterval int    // Interval for clearing delta state (in seconds)
	PingHost       string // Host probed by the latency sampler
	Logger         *zap.SugaredLogger
}

// NewAgentConfig creates and returns a new AgentConfig by parsing flags and
// environment variables. args are the command-line arguments after the verb.
func NewAgentConfig(args []string) *AgentConfig {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout", "agent.log"}

	logger := zap.Must(logCfg.Build())

	cfg := &AgentConfig{}
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.StringVar(&cfg.StatsdAddr, "a", "127.0.0.1:8125", "statsd endpoint address")
	fs.IntVar(&cfg.FastInterval, "f", 1, "fast tier interval (seconds)")
	fs.IntVar(&cfg.MediumInterval, "m", 10, "medium tier interval (seconds)")
	fs.IntVar(&cfg.ResyncInterval, "r", 100, "resync interval (seconds)")
	fs.StringVar(&cfg.PingHost, "p", "8.8.8.8", "latency probe host")
	_ = fs.Parse(args)

	cfg.Logger = logger.Sugar()

	readAgentEnvironment(cfg)

	return cfg
}

func readAgentEnvironment(cfg *AgentConfig) {
	if addr := os.Getenv("ADDRESS"); addr != "" {
		cfg.StatsdAddr = addr
	}

	fastIntervalEnv := os.Getenv("FAST_INTERVAL")
	if fastIntervalEnv != "" {
		v, err := strconv.Atoi(fastIntervalEnv)
		if err == nil {
			cfg.FastInterval = v
		} else {
			log.Printf("invalid FAST_INTERVAL env var: %v", err)
		}
	}

	mediumIntervalEnv := os.Getenv("MEDIUM_INTERVAL")
	if mediumIntervalEnv != "" {
		v, err := strconv.Atoi(mediumIntervalEnv)
		if err == nil {
			cfg.MediumInterval = v
		} else {
			log.Printf("invalid MEDIUM_INTERVAL env var: %v", err)
		}
	}

	resyncIntervalEnv := os.Getenv("RESYNC_INTERVAL")
	if resyncIntervalEnv != "" {
		v, err := strconv.Atoi(resyncIntervalEnv)
		if err == nil {
			cfg.ResyncInterval = v
		} else {
			log.Printf("invalid RESYNC_INTERVAL env var: %v", err)
		}
	}

	if host := os.Getenv("PING_HOST"); host != "" {
		cfg.PingHost = host
	}
}
