package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"
)

type result struct {
	status int
	rid    string
	err    error
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the service")
	count := flag.Int("count", 200, "Total number of /sample requests")
	concurrency := flag.Int("c", 10, "Concurrent workers")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	if err := checkHealth(client, *baseURL); err != nil {
		log.Fatalf("Health check failed: %v", err)
	}

	log.Printf("Sending %d requests with %d workers...", *count, *concurrency)
	start := time.Now()
	results := run(client, *baseURL+"/sample", *count, *concurrency)
	elapsed := time.Since(start)

	statuses := make(map[int]int)
	rids := make(map[string]int)
	failures := 0
	for _, r := range results {
		if r.err != nil {
			failures++
			continue
		}
		statuses[r.status]++
		if r.rid != "" {
			rids[r.rid]++
		}
	}

	codes := make([]int, 0, len(statuses))
	for code := range statuses {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Printf("  %d: %d\n", code, statuses[code])
	}
	fmt.Printf("  transport errors: %d\n", failures)
	fmt.Printf("Done in %s (%.1f req/s)\n", elapsed.Round(time.Millisecond), float64(len(results))/elapsed.Seconds())

	dupes := 0
	for rid, n := range rids {
		if n > 1 {
			log.Printf("Duplicate rid %s seen %d times", rid, n)
			dupes++
		}
	}
	if dupes > 0 {
		os.Exit(1)
	}
}

func run(client *http.Client, url string, count, concurrency int) []result {
	if concurrency < 1 {
		concurrency = 1
	}

	jobs := make(chan struct{})
	out := make(chan result, count)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				out <- sample(client, url)
			}
		}()
	}

	for i := 0; i < count; i++ {
		jobs <- struct{}{}
	}
	close(jobs)
	wg.Wait()
	close(out)

	results := make([]result, 0, count)
	for r := range out {
		results = append(results, r)
	}
	return results
}

func sample(client *http.Client, url string) result {
	resp, err := client.Get(url) // #nosec G107 -- URL comes from the operator's flag
	if err != nil {
		return result{err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return result{status: resp.StatusCode}
	}

	var body struct {
		RID string `json:"rid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return result{status: resp.StatusCode, err: err}
	}
	return result{status: resp.StatusCode, rid: body.RID}
}

func checkHealth(client *http.Client, baseURL string) error {
	resp, err := client.Get(baseURL + "/health") // #nosec G107 -- URL comes from the operator's flag
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
