// Package main runs end-to-end scenarios against a docker-compose deployment of the gateway, orders and
// customers services.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"mymesh/integration/docker"
	"mymesh/integration/scenario"
)

const defaultGateway = "http://localhost:5000"

func main() {
	list := flag.Bool("list", false, "list available scenarios and exit")
	scenarioName := flag.String("scenario", "", "scenario to run (or pass as positional arg)")
	gateway := flag.String("gateway", "", "gateway base URL (default: http://localhost:5000 or GATEWAY_URL env)")
	composeFile := flag.String("compose-file", "", "path to docker-compose.yml (default: COMPOSE_FILE env or ../../docker-compose.yml)")
	skipSetup := flag.Bool("skip-setup", false, "use the running environment instead of recreating it")
	flag.Parse()

	if *list {
		for _, name := range scenario.Names() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	if *gateway == "" {
		*gateway = os.Getenv("GATEWAY_URL")
	}
	if *gateway == "" {
		*gateway = defaultGateway
	}
	composePath := *composeFile
	if composePath == "" {
		composePath = os.Getenv("COMPOSE_FILE")
	}

	name := *scenarioName
	if name == "" && flag.NArg() > 0 {
		name = flag.Arg(0)
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "usage: scenarios [--list] [--scenario=NAME] [--gateway=URL] [--compose-file=PATH] [--skip-setup] [scenario_name]")
		os.Exit(2)
	}

	compose, err := docker.NewCompose(composePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if !*skipSetup {
		if err := compose.SetupEnvironment(); err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to setup docker-compose environment: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := &scenario.Config{GatewayURL: *gateway, Compose: compose}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	err = scenario.Run(ctx, name, cfg)

	fmt.Println("\n=== Scenario Result ===")
	fmt.Printf("Scenario: %s\n", name)
	if err != nil {
		fmt.Printf("Status: FAILED\n")
		fmt.Printf("Error: %v\n", err)
		fmt.Println("=====================")
		var unknown *scenario.UnknownScenarioError
		if errors.As(err, &unknown) {
			fmt.Fprintf(os.Stderr, "\navailable scenarios: %s\n", strings.Join(scenario.Names(), ", "))
			os.Exit(2)
		}
		os.Exit(1)
	}
	fmt.Printf("Status: PASSED\n")
	fmt.Println("=====================")
}
