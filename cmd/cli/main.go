package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Usage: cli [probe|report]. Talks to a running cmd/api.
func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	method, path := http.MethodGet, "/api/probe"
	if len(os.Args) > 1 && strings.EqualFold(os.Args[1], "report") {
		method, path = http.MethodPost, "/api/report"
	}

	req, err := http.NewRequest(method, strings.TrimRight(api, "/")+path, nil)
	if err != nil {
		fmt.Println("Invalid API_BASE:", err)
		os.Exit(1)
	}
	if key := os.Getenv("API_KEY"); key != "" {
		req.Header.Set("X-API-Key", key)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("Error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		fmt.Print(string(body))
		return
	}
	fmt.Println("API returned status:", resp.Status, strings.TrimSpace(string(body)))
	os.Exit(1)
}
