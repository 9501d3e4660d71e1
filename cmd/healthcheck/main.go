package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// Liveness probe for container orchestration: exits 0 when the API
// answers its health endpoint, 1 otherwise.
func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := resty.New()
	client.SetTimeout(5 * time.Second)

	resp, err := client.R().Get(fmt.Sprintf("http://localhost:%s/healthz", port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck failed: %v\n", err)
		os.Exit(1)
	}
	if resp.StatusCode() != 200 {
		fmt.Fprintf(os.Stderr, "healthcheck failed: status %d\n", resp.StatusCode())
		os.Exit(1)
	}

	os.Exit(0)
}
