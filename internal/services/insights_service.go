package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
	"gorm.io/datatypes"
)

const (
	BaselineCycleLength        = 28
	currentInsightCycleLimit   = 10
	analysisSymptomLimit       = 90
	DefaultInsightHistoryLimit = 30
	MaxInsightHistoryLimit     = 100

	PhaseUnknown    = "unknown"
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"

	PredictionMethodBaseline = "baseline"

	AnalysisOutcomeSuccess  = "success"
	AnalysisOutcomeFallback = "fallback"
	AnalysisOutcomeSkipped  = "skipped"
)

var (
	ErrInsightNotFound   = errors.New("insight not found")
	ErrInsightLoadFailed = errors.New("load insight failed")
)

// analysisPassthroughFields are the remote answer keys surfaced on the current view.
var analysisPassthroughFields = []string{
	"anomaly",
	"cycleInsights",
	"symptomInsights",
	"healthInsights",
	"recommendations",
	"riskAssessment",
	"personalizedInsights",
}

type InsightCycleSource interface {
	List(userID uint, limit int) ([]models.Cycle, error)
	ListForAnalysis(userID uint, limit int) ([]models.Cycle, error)
	AverageCycleLength(userID uint, limit int) (CycleLengthStats, error)
}

type InsightSymptomSource interface {
	ListRecent(userID uint, limit int) ([]models.SymptomLog, error)
}

type InsightHealthSource interface {
	FindByUser(userID uint) (models.HealthMetrics, bool, error)
}

type InsightRepository interface {
	Create(insight *models.AIInsight) error
	ListRecent(userID uint, limit int) ([]models.AIInsight, error)
	ListUnviewed(userID uint) ([]models.AIInsight, error)
	FindByIDForUser(insightID uint, userID uint) (models.AIInsight, bool, error)
	MarkViewed(insightID uint, userID uint, at time.Time) (bool, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, request AnalysisRequest) (AnalysisResult, error)
}

type AnalysisRecorder interface {
	RecordAnalysis(outcome string)
}

type BaselinePrediction struct {
	NextPeriodDate    string  `json:"nextPeriodDate"`
	Confidence        float64 `json:"confidence"`
	Method            string  `json:"method"`
	PredictionQuality string  `json:"predictionQuality"`
}

type CurrentInsights struct {
	Message          string                     `json:"message,omitempty"`
	HasData          bool                       `json:"hasData"`
	CurrentPhase     string                     `json:"currentPhase"`
	DaysSinceStart   *int                       `json:"daysSinceStart,omitempty"`
	AvgCycleLength   *int                       `json:"avgCycleLength,omitempty"`
	LatestCycleStart string                     `json:"latestCycleStart,omitempty"`
	TotalCycles      int                        `json:"totalCycles,omitempty"`
	RegularityScore  *float64                   `json:"regularityScore,omitempty"`
	Prediction       any                        `json:"prediction,omitempty"`
	Analysis         map[string]json.RawMessage `json:"-"`
}

type AnalysisOutcome struct {
	Success    bool
	HasData    bool
	Message    string
	Prediction *BaselinePrediction
	Result     AnalysisResult
}

type InsightsService struct {
	cycles   InsightCycleSource
	symptoms InsightSymptomSource
	health   InsightHealthSource
	insights InsightRepository
	analyzer Analyzer
	recorder AnalysisRecorder
	location *time.Location
	now      func() time.Time
}

func NewInsightsService(
	cycles InsightCycleSource,
	symptoms InsightSymptomSource,
	health InsightHealthSource,
	insights InsightRepository,
	analyzer Analyzer,
	location *time.Location,
) *InsightsService {
	if location == nil {
		location = time.UTC
	}
	return &InsightsService{
		cycles:   cycles,
		symptoms: symptoms,
		health:   health,
		insights: insights,
		analyzer: analyzer,
		location: location,
		now:      time.Now,
	}
}

func (service *InsightsService) WithRecorder(recorder AnalysisRecorder) *InsightsService {
	service.recorder = recorder
	return service
}

func (service *InsightsService) WithClock(now func() time.Time) *InsightsService {
	if now != nil {
		service.now = now
	}
	return service
}

// CyclePhase maps days since the latest cycle start to a phase name.
func CyclePhase(daysSinceStart int) string {
	switch {
	case daysSinceStart < 0:
		return PhaseUnknown
	case daysSinceStart <= 5:
		return PhaseMenstrual
	case daysSinceStart <= 13:
		return PhaseFollicular
	case daysSinceStart <= 17:
		return PhaseOvulation
	default:
		return PhaseLuteal
	}
}

// Current describes where the user is in the cycle. Remote analysis enriches
// the answer when available; any failure falls back to the baseline prediction.
func (service *InsightsService) Current(ctx context.Context, userID uint) (CurrentInsights, error) {
	cycles, err := service.cycles.List(userID, currentInsightCycleLimit)
	if err != nil {
		return CurrentInsights{}, err
	}
	if len(cycles) == 0 {
		return CurrentInsights{
			Message:      "No cycle data yet",
			HasData:      false,
			CurrentPhase: PhaseUnknown,
		}, nil
	}

	latest := cycles[0]
	today := TodayAt(service.now(), service.location)
	daysSinceStart := DaysBetween(latest.StartDate, today)

	stats, err := service.cycles.AverageCycleLength(userID, DefaultStatsCycleLimit)
	if err != nil {
		return CurrentInsights{}, err
	}
	averageLength := baselineAverage(stats)
	roundedAverage := int(math.Round(averageLength))

	insights := CurrentInsights{
		HasData:          true,
		CurrentPhase:     CyclePhase(daysSinceStart),
		DaysSinceStart:   intPointer(daysSinceStart),
		AvgCycleLength:   intPointer(roundedAverage),
		LatestCycleStart: FormatCalendarDate(latest.StartDate),
		TotalCycles:      len(cycles),
		RegularityScore:  RegularityScore(stats, averageLength),
	}

	result, ok := service.tryRemoteAnalysis(ctx, userID, currentInsightCycleLimit)
	if ok {
		insights.Prediction = result.Field("prediction")
		insights.Analysis = make(map[string]json.RawMessage)
		for _, field := range analysisPassthroughFields {
			if value := result.Field(field); value != nil {
				insights.Analysis[field] = value
			}
		}
		return insights, nil
	}

	confidence, quality := 0.4, "Low - Need more data"
	if len(cycles) >= 3 {
		confidence, quality = 0.7, "Moderate - Based on averages"
	}
	insights.Prediction = BaselinePrediction{
		NextPeriodDate:    FormatCalendarDate(latest.StartDate.AddDate(0, 0, roundedAverage)),
		Confidence:        confidence,
		Method:            PredictionMethodBaseline,
		PredictionQuality: quality,
	}
	return insights, nil
}

// Analyze requests a full remote analysis. At least two cycles with a known
// length are required.
func (service *InsightsService) Analyze(ctx context.Context, userID uint) (AnalysisOutcome, error) {
	cycles, err := service.cycles.ListForAnalysis(userID, DefaultAnalysisCycleLimit)
	if err != nil {
		return AnalysisOutcome{}, err
	}
	if len(cycles) < 2 {
		return AnalysisOutcome{
			Success: false,
			HasData: false,
			Message: "Not enough data for AI analysis. Please log at least 2 complete cycles.",
		}, nil
	}

	if result, ok := service.tryRemoteAnalysis(ctx, userID, DefaultAnalysisCycleLimit); ok {
		return AnalysisOutcome{
			Success: true,
			HasData: true,
			Message: "AI analysis complete",
			Result:  result,
		}, nil
	}

	stats, err := service.cycles.AverageCycleLength(userID, DefaultStatsCycleLimit)
	if err != nil {
		return AnalysisOutcome{}, err
	}
	confidence := 0.3
	if len(cycles) >= 3 {
		confidence = 0.6
	}
	return AnalysisOutcome{
		Success: true,
		HasData: true,
		Message: "Using baseline predictions (AI service unavailable)",
		Prediction: &BaselinePrediction{
			NextPeriodDate:    FormatCalendarDate(cycles[0].StartDate.AddDate(0, 0, int(math.Round(baselineAverage(stats))))),
			Confidence:        confidence,
			Method:            PredictionMethodBaseline,
			PredictionQuality: "Moderate - Based on averages",
		},
	}, nil
}

func (service *InsightsService) History(userID uint, limit int) ([]models.AIInsight, error) {
	if limit <= 0 {
		limit = DefaultInsightHistoryLimit
	}
	if limit > MaxInsightHistoryLimit {
		limit = MaxInsightHistoryLimit
	}
	return service.insights.ListRecent(userID, limit)
}

func (service *InsightsService) Unviewed(userID uint) ([]models.AIInsight, error) {
	return service.insights.ListUnviewed(userID)
}

func (service *InsightsService) MarkViewed(userID uint, insightID uint) (models.AIInsight, error) {
	updated, err := service.insights.MarkViewed(insightID, userID, service.now().UTC())
	if err != nil {
		return models.AIInsight{}, fmt.Errorf("%w: %v", ErrInsightLoadFailed, err)
	}
	if !updated {
		return models.AIInsight{}, ErrInsightNotFound
	}
	insight, found, err := service.insights.FindByIDForUser(insightID, userID)
	if err != nil {
		return models.AIInsight{}, fmt.Errorf("%w: %v", ErrInsightLoadFailed, err)
	}
	if !found {
		return models.AIInsight{}, ErrInsightNotFound
	}
	return insight, nil
}

// tryRemoteAnalysis returns ok only when the remote service answered. Failures
// are logged and counted, never returned.
func (service *InsightsService) tryRemoteAnalysis(ctx context.Context, userID uint, cycleLimit int) (AnalysisResult, bool) {
	if service.analyzer == nil {
		service.recordAnalysis(AnalysisOutcomeSkipped)
		return nil, false
	}

	request, eligible, err := service.buildAnalysisRequest(userID, cycleLimit)
	if err != nil {
		log.Printf("insights: build analysis request for user %d: %v", userID, err)
		service.recordAnalysis(AnalysisOutcomeFallback)
		return nil, false
	}
	if !eligible {
		service.recordAnalysis(AnalysisOutcomeSkipped)
		return nil, false
	}

	result, err := service.analyzer.Analyze(ctx, request)
	if err != nil {
		log.Printf("insights: analysis for user %d: %v", userID, err)
		service.recordAnalysis(AnalysisOutcomeFallback)
		return nil, false
	}
	service.recordAnalysis(AnalysisOutcomeSuccess)

	if err := service.saveInsight(userID, result); err != nil {
		log.Printf("insights: save insight for user %d: %v", userID, err)
	}
	return result, true
}

func (service *InsightsService) buildAnalysisRequest(userID uint, cycleLimit int) (AnalysisRequest, bool, error) {
	cycles, err := service.cycles.ListForAnalysis(userID, cycleLimit)
	if err != nil {
		return AnalysisRequest{}, false, err
	}
	if len(cycles) < 2 {
		return AnalysisRequest{}, false, nil
	}

	request := AnalysisRequest{
		UserID:   userID,
		Cycles:   make([]AnalysisCycle, 0, len(cycles)),
		Symptoms: make([]AnalysisSymptom, 0),
	}
	for _, cycle := range cycles {
		entry := AnalysisCycle{
			StartDate:   FormatCalendarDate(cycle.StartDate),
			CycleLength: cycle.CycleLength,
			Flow:        cycle.Flow,
		}
		if cycle.EndDate != nil {
			endDate := FormatCalendarDate(*cycle.EndDate)
			entry.EndDate = &endDate
		}
		request.Cycles = append(request.Cycles, entry)
	}

	if service.symptoms != nil {
		logs, err := service.symptoms.ListRecent(userID, analysisSymptomLimit)
		if err != nil {
			return AnalysisRequest{}, false, err
		}
		for _, entry := range logs {
			request.Symptoms = append(request.Symptoms, AnalysisSymptom{
				Date:        FormatCalendarDate(entry.Date),
				Symptoms:    map[string]any(entry.Symptoms),
				SleepHours:  entry.SleepHours,
				StressLevel: entry.StressLevel,
			})
		}
	}

	if service.health != nil {
		metrics, found, err := service.health.FindByUser(userID)
		if err != nil {
			return AnalysisRequest{}, false, err
		}
		if found {
			request.HealthMetrics = &AnalysisHealthMetrics{
				Birthdate: FormatCalendarDate(metrics.Birthdate),
				Height:    metrics.Height,
				Weight:    metrics.Weight,
				UseMetric: metrics.UseMetric,
			}
		}
	}
	return request, true, nil
}

func (service *InsightsService) saveInsight(userID uint, result AnalysisResult) error {
	if service.insights == nil {
		return nil
	}

	cycleData := make(map[string]json.RawMessage)
	for _, field := range []string{"cycleInsights", "symptomInsights", "healthInsights", "recommendations", "riskAssessment"} {
		if value := result.Field(field); value != nil {
			cycleData[field] = value
		}
	}
	encodedCycleData, err := json.Marshal(cycleData)
	if err != nil {
		return err
	}

	priority := 5
	if result.RiskLevel() == "high" {
		priority = 10
	}

	insight := models.AIInsight{
		UserID:          userID,
		Date:            service.now().UTC(),
		InsightType:     models.InsightTypeComprehensive,
		Prediction:      datatypes.JSON(result.Field("prediction")),
		Anomaly:         datatypes.JSON(result.Field("anomaly")),
		CycleData:       datatypes.JSON(encodedCycleData),
		ShouldDisplay:   true,
		DisplayPriority: priority,
	}
	return service.insights.Create(&insight)
}

func (service *InsightsService) recordAnalysis(outcome string) {
	if service.recorder != nil {
		service.recorder.RecordAnalysis(outcome)
	}
}

func baselineAverage(stats CycleLengthStats) float64 {
	if stats.AvgLength == nil || *stats.AvgLength <= 0 {
		return BaselineCycleLength
	}
	return *stats.AvgLength
}
