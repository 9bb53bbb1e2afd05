package scenario

import "mymesh/integration/docker"

// Config holds settings for running a scenario.
type Config struct {
	// GatewayURL is the base URL of the gateway, e.g. http://localhost:5000.
	GatewayURL string
	// Compose controls the environment; scenarios that stop services need it.
	Compose *docker.Compose
}
