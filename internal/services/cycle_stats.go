package services

import (
	"fmt"
	"math"
)

const (
	DefaultStatsMinCycleLength = 14
	DefaultStatsMaxCycleLength = 45
	DefaultStatsCycleLimit     = 6
)

// CycleStatsOptions bounds which cycle lengths count as physiologically plausible.
type CycleStatsOptions struct {
	MinLength int
	MaxLength int
}

func DefaultCycleStatsOptions() CycleStatsOptions {
	return CycleStatsOptions{
		MinLength: DefaultStatsMinCycleLength,
		MaxLength: DefaultStatsMaxCycleLength,
	}
}

func (options CycleStatsOptions) normalized() CycleStatsOptions {
	if options.MinLength <= 0 || options.MaxLength <= 0 || options.MaxLength < options.MinLength {
		return DefaultCycleStatsOptions()
	}
	return options
}

type CycleLengthStats struct {
	AvgLength *float64 `json:"avg_length"`
	StdDev    *float64 `json:"std_dev"`
	Count     int      `json:"count"`
}

// AverageCycleLength summarizes the most recent plausible cycle lengths.
// StdDev is the sample deviation and is nil with fewer than two values.
func (service *CycleService) AverageCycleLength(userID uint, limit int) (CycleLengthStats, error) {
	if limit <= 0 {
		limit = DefaultStatsCycleLimit
	}
	lengths, err := service.cycles.ListRecentCycleLengths(userID, service.stats.MinLength, service.stats.MaxLength, limit)
	if err != nil {
		return CycleLengthStats{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	return SummarizeCycleLengths(lengths), nil
}

func SummarizeCycleLengths(lengths []int) CycleLengthStats {
	stats := CycleLengthStats{Count: len(lengths)}
	if len(lengths) == 0 {
		return stats
	}

	sum := 0.0
	for _, length := range lengths {
		sum += float64(length)
	}
	mean := sum / float64(len(lengths))
	avg := roundTo(mean, 2)
	stats.AvgLength = &avg

	if len(lengths) < 2 {
		return stats
	}
	squares := 0.0
	for _, length := range lengths {
		delta := float64(length) - mean
		squares += delta * delta
	}
	deviation := roundTo(math.Sqrt(squares/float64(len(lengths)-1)), 2)
	stats.StdDev = &deviation
	return stats
}

// RegularityScore is 1 for perfectly regular cycles and falls towards 0 as
// deviation grows relative to the mean. It is nil without a deviation.
func RegularityScore(stats CycleLengthStats, averageLength float64) *float64 {
	if stats.StdDev == nil || averageLength <= 0 {
		return nil
	}
	score := roundTo(math.Max(0, 1-(*stats.StdDev/averageLength)), 2)
	return &score
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
