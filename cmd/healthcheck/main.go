package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ericogr/energy-duel/internal/constants"
)

// healthURL targets the local server, honouring a port override in
// ENERGY_DUEL_ADDR.
func healthURL() string {
	port := "8080"
	if addr := os.Getenv(constants.EnvAddress); addr != "" {
		if i := strings.LastIndex(addr, ":"); i >= 0 && i < len(addr)-1 {
			port = addr[i+1:]
		}
	}
	return "http://127.0.0.1:" + port + constants.RouteAPIPrefix + constants.RouteHealth
}

func main() {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(healthURL())
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
