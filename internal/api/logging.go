package api

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"
)

type logEntry struct {
	Time      string `json:"time"`
	Method    string `json:"method"`
	URI       string `json:"uri"`
	Status    int    `json:"status"`
	Duration  string `json:"duration"`
	RequestID string `json:"request_id"`
}

type loggingTransport struct {
	next http.RoundTripper
}

func newLoggingTransport(next http.RoundTripper) *loggingTransport {
	return &loggingTransport{next: next}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	reqID := req.Header.Get("X-Request-ID")
	if reqID == "" {
		reqID = generateRequestID()
		req.Header.Set("X-Request-ID", reqID)
	}

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	entry := logEntry{
		Time:      start.Format(time.RFC3339),
		Method:    req.Method,
		URI:       req.URL.RequestURI(),
		Status:    status,
		Duration:  duration.String(),
		RequestID: reqID,
	}

	data, merr := json.Marshal(entry)
	if merr != nil {
		log.Printf("error marshaling log entry: %v", merr)
		return resp, err
	}
	log.Println(string(data))

	return resp, err
}

func generateRequestID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63())
}
