// Package service registers the agent as an OS background service and runs
// the sampling loop under service control.
package service

import (
	"context"

	"github.com/kardianos/service"
	"go.uber.org/zap"
)

const (
	svcName        = "host-metrics-agent"
	svcDisplayName = "Host Metrics Agent"
	svcDescription = "Samples host telemetry and ships it to the metrics endpoint."
)

type program struct {
	run    func(context.Context) error
	logger *zap.SugaredLogger
	cancel context.CancelFunc
	done   chan struct{}
}

func (p *program) Start(_ service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		if err := p.run(ctx); err != nil && ctx.Err() == nil {
			p.logger.Errorf("agent stopped: %v", err)
		}
	}()
	return nil
}

func (p *program) Stop(_ service.Service) error {
	p.cancel()
	<-p.done
	return nil
}

func newConfig(user, pass string) *service.Config {
	cfg := &service.Config{
		Name:        svcName,
		DisplayName: svcDisplayName,
		Description: svcDescription,
		Arguments:   []string{"--run"},
	}
	if user != "" {
		cfg.UserName = user
	}
	if pass != "" {
		cfg.Option = service.KeyValue{"Password": pass}
	}
	return cfg
}

// Install registers the binary as a background service started with --run.
// user and pass select the service account on platforms that take one; empty
// strings mean the platform default.
func Install(user, pass string) error {
	svc, err := service.New(&program{}, newConfig(user, pass))
	if err != nil {
		return err
	}
	return svc.Install()
}

// Uninstall removes the service registration.
func Uninstall() error {
	svc, err := service.New(&program{}, newConfig("", ""))
	if err != nil {
		return err
	}
	return svc.Uninstall()
}

// Run executes fn under service control. Interactively it blocks until the
// process is signalled; as a service it follows start/stop requests.
func Run(fn func(context.Context) error, logger *zap.SugaredLogger) error {
	svc, err := service.New(&program{run: fn, logger: logger}, newConfig("", ""))
	if err != nil {
		return err
	}
	return svc.Run()
}
