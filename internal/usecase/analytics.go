package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

const (
	dateLayout = "2006-01-02"

	// AnomalyThreshold is the z-score magnitude at which an interval counts as
	// anomalous. The comparison is inclusive: a score of exactly 2.0 is flagged.
	AnomalyThreshold = 2.0
)

type eventReader interface {
	RetrieveByQRCode(ctx context.Context, qrCodeID string, filter entity.EventFilter) ([]entity.ScanEvent, error)
}

type AnalyticsUseCase struct {
	qrCodeRepo qrCodeGetter
	eventRepo  eventReader
}

func NewAnalyticsUseCase(qrCodeRepo qrCodeGetter, eventRepo eventReader) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		qrCodeRepo: qrCodeRepo,
		eventRepo:  eventRepo,
	}
}

// DateRange converts inclusive calendar dates into an event filter. Either bound may be nil.
func DateRange(start, end *time.Time) (entity.EventFilter, error) {
	var filter entity.EventFilter

	if start != nil {
		from := truncateToDate(*start)
		filter.From = &from
	}

	if end != nil {
		to := truncateToDate(*end).AddDate(0, 0, 1)
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return entity.EventFilter{}, fmt.Errorf("start date is after end date: %w", entity.ErrValidation)
	}

	return filter, nil
}

func (uc *AnalyticsUseCase) GetAnalytics(
	ctx context.Context,
	qrCodeID, requesterID string,
	start, end *time.Time,
) (*entity.Stats, error) {
	const op = "usecase.AnalyticsUseCase.GetAnalytics"

	filter, err := DateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := authorize(ctx, uc.qrCodeRepo, qrCodeID, requesterID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events, err := uc.eventRepo.RetrieveByQRCode(ctx, qrCodeID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get events: %w", op, err)
	}

	return Aggregate(events), nil
}

func (uc *AnalyticsUseCase) DetectAnomalies(ctx context.Context, qrCodeID, requesterID string) (*entity.AnomalyReport, error) {
	const op = "usecase.AnalyticsUseCase.DetectAnomalies"

	if _, err := authorize(ctx, uc.qrCodeRepo, qrCodeID, requesterID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events, err := uc.eventRepo.RetrieveByQRCode(ctx, qrCodeID, entity.EventFilter{})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get events: %w", op, err)
	}

	report := FindAnomalies(events, AnomalyThreshold)

	return &report, nil
}

// Aggregate summarizes events. Scans over time are keyed by UTC date in
// ascending order. Location and device groups are ordered by descending count,
// ties keeping the order in which values first appear.
func Aggregate(events []entity.ScanEvent) *entity.Stats {
	stats := &entity.Stats{
		TotalScans:             int64(len(events)),
		ScansOverTime:          []entity.DateCount{},
		GeographicDistribution: []entity.GroupCount{},
		DeviceStats:            []entity.GroupCount{},
	}

	ips := make(map[string]struct{})
	dates := make(map[string]int64)
	locations := newCounter()
	devices := newCounter()

	for _, e := range events {
		if e.IPAddress != "" {
			ips[e.IPAddress] = struct{}{}
		}

		dates[e.Timestamp.UTC().Format(dateLayout)]++
		locations.add(e.Location)
		devices.add(e.DeviceType)
	}

	stats.UniqueUsers = int64(len(ips))

	for date, count := range dates {
		stats.ScansOverTime = append(stats.ScansOverTime, entity.DateCount{Date: date, Count: count})
	}

	sort.Slice(stats.ScansOverTime, func(i, j int) bool {
		return stats.ScansOverTime[i].Date < stats.ScansOverTime[j].Date
	})

	stats.GeographicDistribution = locations.result()
	stats.DeviceStats = devices.result()

	return stats
}

// FindAnomalies flags events that arrive after an unusual gap. Events are
// ordered by timestamp and the gaps between neighbours, in fractional seconds,
// are scored against their population mean and standard deviation. When the score of a gap
// reaches threshold in magnitude, the event that closes the gap is flagged.
func FindAnomalies(events []entity.ScanEvent, threshold float64) entity.AnomalyReport {
	report := entity.AnomalyReport{
		Anomalies:   []entity.ScanEvent{},
		TotalEvents: len(events),
	}

	if len(events) < 3 {
		return report
	}

	sorted := make([]entity.ScanEvent, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	intervals := make([]float64, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		intervals[i-1] = sorted[i].Timestamp.Sub(sorted[i-1].Timestamp).Seconds()
	}

	mean, stddev := meanStdDev(intervals)
	if stddev == 0 {
		return report
	}

	for i, interval := range intervals {
		if math.Abs((interval-mean)/stddev) >= threshold {
			report.Anomalies = append(report.Anomalies, sorted[i+1])
		}
	}

	return report
}

func meanStdDev(values []float64) (float64, float64) {
	var sum float64
	for _, v := range values {
		sum += v
	}

	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}

	return mean, math.Sqrt(sq / float64(len(values)))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type counter struct {
	index  map[string]int
	groups []entity.GroupCount
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(value string) {
	i, ok := c.index[value]
	if !ok {
		i = len(c.groups)
		c.index[value] = i
		c.groups = append(c.groups, entity.GroupCount{Value: value})
	}

	c.groups[i].Count++
}

func (c *counter) result() []entity.GroupCount {
	groups := c.groups
	if groups == nil {
		groups = []entity.GroupCount{}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	return groups
}
