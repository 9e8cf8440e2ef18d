// Command order-load-test fires concurrent orders from one account and
// checks that the wallet is debited exactly once per accepted order.
//
//	go run ./script -url http://localhost:10000 -c 20 -n 200 -price 1.50 -topup 100 -admin $SMM_ADMIN_TOKEN
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/cookiejar"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"
)

type userResponse struct {
	ID            uint64 `json:"id"`
	UID           string `json:"uid"`
	WalletBalance string `json:"walletBalance"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
}

type paymentResponse struct {
	Payment struct {
		ID uint64 `json:"id"`
	} `json:"payment"`
}

// result contains metrics for a single order request
type result struct {
	status       int
	responseTime time.Duration
	err          error
}

type client struct {
	baseURL    string
	adminToken string
	http       *http.Client
}

func main() {
	concurrency := flag.Int("c", 10, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of orders to place")
	baseURL := flag.String("url", "http://localhost:10000", "Base URL for the API")
	username := flag.String("user", fmt.Sprintf("loadtest_%d", time.Now().Unix()), "Instagram handle to log in with")
	price := flag.Float64("price", 1, "Price of every order")
	topUp := flag.Float64("topup", 0, "Submit and approve a payment of this amount first (needs -admin when admin auth is on)")
	adminToken := flag.String("admin", "", "X-Admin-Token for payment approval")
	flag.Parse()

	jar, err := cookiejar.New(nil)
	if err != nil {
		fail("create cookie jar: %v", err)
	}
	c := &client{
		baseURL:    *baseURL,
		adminToken: *adminToken,
		http:       &http.Client{Timeout: 10 * time.Second, Jar: jar},
	}

	var login loginResponse
	if status, err := c.post("/api/auth/login", map[string]string{"instagramUsername": *username, "password": "load-test"}, &login); err != nil || status != http.StatusOK {
		fail("login failed: status %d: %v", status, err)
	}
	fmt.Printf("Logged in as %s (%s)\n", *username, login.User.UID)

	if status, _ := c.post("/api/bonus/claim", nil, nil); status == http.StatusOK {
		fmt.Println("Signup bonus claimed")
	}

	if *topUp > 0 {
		var payment paymentResponse
		utr := fmt.Sprintf("LOAD%d", time.Now().UnixNano())
		status, err := c.post("/api/payments", map[string]any{"amount": *topUp, "utrNumber": utr, "paymentMethod": "UPI"}, &payment)
		if err != nil || status != http.StatusOK {
			fail("payment failed: status %d: %v", status, err)
		}
		status, err = c.post(fmt.Sprintf("/api/admin/payments/%d/approve", payment.Payment.ID), nil, nil)
		if err != nil || status != http.StatusOK {
			fail("approve failed: status %d: %v", status, err)
		}
		fmt.Printf("Top-up of %.2f approved\n", *topUp)
	}

	startBalance := c.balance()
	fmt.Printf("Starting balance: %.2f\n", startBalance)
	fmt.Printf("Placing %d orders of %.2f with %d workers\n", *totalRequests, *price, *concurrency)

	jobs := make(chan int, *totalRequests)
	results := make(chan result, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	startTime := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				results <- c.order(*username, *price)
			}
		}()
	}
	wg.Wait()
	close(results)
	totalTime := time.Since(startTime)

	counts := map[int]int{}
	errorCounts := map[string]int{}
	var times []time.Duration
	for r := range results {
		counts[r.status]++
		times = append(times, r.responseTime)
		if r.err != nil {
			errorCounts[r.err.Error()]++
		}
	}

	accepted := counts[http.StatusOK]
	endBalance := c.balance()
	expected := startBalance - float64(accepted)*(*price)

	slices.Sort(times)
	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total orders:        %d\n", *totalRequests)
	fmt.Printf("Accepted (200):      %d\n", accepted)
	fmt.Printf("Rejected (400):      %d\n", counts[http.StatusBadRequest])
	fmt.Printf("Other statuses:      %d\n", *totalRequests-accepted-counts[http.StatusBadRequest])
	fmt.Printf("Total test time:     %.2f seconds\n", totalTime.Seconds())
	fmt.Printf("Throughput:          %.2f orders/s\n", float64(*totalRequests)/totalTime.Seconds())
	if len(times) > 0 {
		fmt.Printf("P50 / P95 / Max:     %v / %v / %v\n", times[len(times)*50/100], times[len(times)*95/100], times[len(times)-1])
	}
	for msg, n := range errorCounts {
		fmt.Printf("Error %-40s %d\n", msg+":", n)
	}

	fmt.Println("\n================= WALLET CHECK =================")
	fmt.Printf("Final balance:       %.2f\n", endBalance)
	fmt.Printf("Expected balance:    %.2f\n", expected)

	ok := true
	if endBalance < 0 {
		fmt.Println("❌ Balance went negative")
		ok = false
	}
	if math.Abs(endBalance-expected) > 0.001 {
		fmt.Println("❌ Balance does not match accepted orders")
		ok = false
	}
	if !ok {
		os.Exit(1)
	}
	fmt.Println("✅ Every accepted order was debited exactly once")
}

func (c *client) order(target string, price float64) result {
	start := time.Now()
	status, err := c.post("/api/orders", map[string]any{
		"serviceName":       "Instagram Likes - Indian",
		"instagramUsername": target,
		"quantity":          100,
		"price":             price,
	}, nil)
	if err == nil && status != http.StatusOK && status != http.StatusBadRequest {
		err = fmt.Errorf("HTTP status code %d", status)
	}
	return result{status: status, responseTime: time.Since(start), err: err}
}

func (c *client) balance() float64 {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/auth/user", nil)
	if err != nil {
		fail("build request: %v", err)
	}
	var user userResponse
	status, err := c.do(req, &user)
	if err != nil || status != http.StatusOK {
		fail("read balance: status %d: %v", status, err)
	}
	balance, err := strconv.ParseFloat(user.WalletBalance, 64)
	if err != nil {
		fail("parse balance %q: %v", user.WalletBalance, err)
	}
	return balance
}

func (c *client) post(path string, body any, out any) (int, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.adminToken != "" {
		req.Header.Set("X-Admin-Token", c.adminToken)
	}
	return c.do(req, out)
}

func (c *client) do(req *http.Request, out any) (int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
