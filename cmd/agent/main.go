package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/and161185/host-metrics-agent/internal/buildinfo"
	"github.com/and161185/host-metrics-agent/internal/client"
	"github.com/and161185/host-metrics-agent/internal/config"
	"github.com/and161185/host-metrics-agent/internal/service"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--add":
		user, pass := credentials(os.Args[2:])
		if err := service.Install(user, pass); err != nil {
			fmt.Fprintf(os.Stderr, "failed to register service: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("service registered")

	case "--remove":
		if err := service.Uninstall(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to unregister service: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("service unregistered")

	case "--run":
		buildinfo.PrintBuildInfo(buildVersion, buildDate, buildCommit)
		if err := run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "agent: %v\n", err)
			os.Exit(1)
		}

	default:
		usage()
		os.Exit(2)
	}
}

func run(args []string) error {
	cfg := config.NewAgentConfig(args)

	cfg.Logger.Infof("Agent config: StatsdAddr=%s, FastInterval=%d, MediumInterval=%d, ResyncInterval=%d, PingHost=%s",
		cfg.StatsdAddr,
		cfg.FastInterval,
		cfg.MediumInterval,
		cfg.ResyncInterval,
		cfg.PingHost,
	)

	clnt, err := client.NewClient(cfg)
	if err != nil {
		return err
	}

	return service.Run(clnt.Run, cfg.Logger)
}

// credentials picks the optional service account user and password from the
// arguments following --add.
func credentials(args []string) (user, pass string) {
	if len(args) > 0 {
		user = args[0]
	}
	if len(args) > 1 {
		pass = args[1]
	}
	return user, pass
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s <command>

  --add [user] [pass]  register the agent as a background service
  --remove             unregister the service
  --run                start the sampling loop
`, filepath.Base(os.Args[0]))
}
