package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultAnalysisTimeout       = 15 * time.Second
	DefaultAnalysisRatePerMinute = 30
)

var (
	ErrAnalysisUnavailable = errors.New("analysis service unavailable")
	ErrAnalysisThrottled   = errors.New("analysis service throttled")
)

type AnalysisCycle struct {
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	CycleLength *int    `json:"cycleLength"`
	Flow        string  `json:"flow"`
}

type AnalysisSymptom struct {
	Date        string         `json:"date"`
	Symptoms    map[string]any `json:"symptoms"`
	SleepHours  *float64       `json:"sleepHours"`
	StressLevel *int           `json:"stressLevel"`
}

type AnalysisHealthMetrics struct {
	Birthdate string  `json:"birthdate"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	UseMetric bool    `json:"useMetric"`
}

type AnalysisRequest struct {
	UserID        uint                   `json:"userId"`
	Cycles        []AnalysisCycle        `json:"cycles"`
	Symptoms      []AnalysisSymptom      `json:"symptoms"`
	HealthMetrics *AnalysisHealthMetrics `json:"healthMetrics"`
}

// AnalysisResult keeps every top-level field of the remote answer so callers
// can pass through keys they do not interpret.
type AnalysisResult map[string]json.RawMessage

func (result AnalysisResult) Field(name string) json.RawMessage {
	value, ok := result[name]
	if !ok {
		return nil
	}
	return value
}

func (result AnalysisResult) RiskLevel() string {
	var assessment struct {
		Level string `json:"level"`
	}
	raw := result.Field("riskAssessment")
	if len(raw) == 0 || json.Unmarshal(raw, &assessment) != nil {
		return ""
	}
	return assessment.Level
}

// AnalysisClient posts cycle history to the remote analysis service. A client
// without a base URL is disabled and always reports ErrAnalysisUnavailable.
type AnalysisClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewAnalysisClient(baseURL string, timeout time.Duration, ratePerMinute int) *AnalysisClient {
	if timeout <= 0 {
		timeout = DefaultAnalysisTimeout
	}
	if ratePerMinute <= 0 {
		ratePerMinute = DefaultAnalysisRatePerMinute
	}
	return &AnalysisClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(ratePerMinute)/60.0), ratePerMinute),
	}
}

func (client *AnalysisClient) Enabled() bool {
	return client != nil && client.baseURL != ""
}

func (client *AnalysisClient) Analyze(ctx context.Context, request AnalysisRequest) (AnalysisResult, error) {
	if !client.Enabled() {
		return nil, ErrAnalysisUnavailable
	}
	if !client.limiter.Allow() {
		return nil, ErrAnalysisThrottled
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrAnalysisUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: status %d: %s", ErrAnalysisUnavailable, resp.StatusCode, string(body))
	}

	result := AnalysisResult{}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrAnalysisUnavailable, err)
	}
	return result, nil
}
