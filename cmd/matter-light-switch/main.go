// matter-light-switch is a Matter light switch example.
//
// This binary drives the lights in its binding table: unicast bindings
// receive commands over their CASE session, group bindings receive a
// groupcast. Without a network stack attached the outbound traffic is
// logged by a loopback exchange that answers as if every light accepted.
//
// Usage:
//
//	matter-light-switch [options]
//
// Options:
//
//	-config       YAML configuration file (default: built-in demo bindings)
//	-log-level    trace, debug, info, warn, error or disabled
//	-endpoint     Local switch endpoint (default: 1)
//	-interactive  Start the switch shell (default: true)
//
// Example:
//
//	matter-light-switch -config switch.yaml -log-level debug
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mike-scofield/sdk-nrf/examples/common"
	"github.com/mike-scofield/sdk-nrf/examples/lightswitch"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Parse command-line flags
	opts := common.ParseFlags()

	cfg, factory, err := common.Setup(opts, os.Stderr)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	device, err := lightswitch.NewDevice(lightswitch.DeviceConfig{
		Config:        cfg,
		Endpoint:      datamodel.EndpointID(opts.Endpoint),
		LoggerFactory: factory,
	})
	if err != nil {
		log.Fatalf("Failed to create light switch: %v", err)
	}

	if err := device.Start(); err != nil {
		log.Fatalf("Failed to start light switch: %v", err)
	}

	// Cancel on interrupt or when the shell exits.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down...")
		return device.Stop()
	})
	if opts.Interactive {
		g.Go(func() error {
			defer stop()
			return device.Shell(os.Stdout).Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Light switch error: %v", err)
	}
}
