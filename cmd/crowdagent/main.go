package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"canteen-connect/internal/service/reporter"

	"github.com/joho/godotenv"
)

// crowdagent forwards person counts to the canteen server. It reads one
// integer per line from stdin, typically piped from a camera detector
// process, and posts each to /api/crowd/report.
func main() {
	_ = godotenv.Load()

	apiURL := os.Getenv("CANTEEN_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	client := reporter.NewClient(reporter.Config{APIURL: apiURL})

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		count, err := strconv.Atoi(line)
		if err != nil {
			log.Printf("skipping non-integer input %q", line)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		sample, err := client.Report(ctx, count)
		cancel()
		if err != nil {
			log.Printf("failed to report count %d: %v", count, err)
			continue
		}
		fmt.Printf("reported %d people at %s\n", sample.PersonCount, sample.CreatedAt.Format(time.RFC3339))
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("failed to read input: %v", err)
	}
}
