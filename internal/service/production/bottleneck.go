package production

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"shop-analytics/internal/constants"
	"shop-analytics/internal/storage"
)

const (
	DefaultDelayMultiplier   = 1.5
	DefaultFallbackThreshold = 24 * time.Hour
)

type StageStorage interface {
	GetStagesByStatus(ctx context.Context, status string) ([]storage.StageRecord, error)
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// BottleneckFlag — этап в работе, который идёт заметно дольше своего среднего.
type BottleneckFlag struct {
	StageID              int64     `json:"stage_id"`
	StageName            string    `json:"stage_name"`
	BatchID              int64     `json:"batch_id"`
	StartedAt            time.Time `json:"started_at"`
	CurrentDurationHours float64   `json:"current_duration_hours"`
	AverageDurationHours float64   `json:"average_duration_hours"`
	ThresholdHours       float64   `json:"threshold_hours"`
	DelayRatio           float64   `json:"delay_ratio"`
	IsDelayed            bool      `json:"is_delayed"`
}

type Detector struct {
	storage    StageStorage
	clock      Clock
	multiplier float64
	fallback   time.Duration
}

func NewDetector(storage StageStorage, clock Clock, multiplier float64, fallback time.Duration) *Detector {
	if multiplier <= 0 {
		multiplier = DefaultDelayMultiplier
	}
	if fallback <= 0 {
		fallback = DefaultFallbackThreshold
	}
	return &Detector{storage: storage, clock: clock, multiplier: multiplier, fallback: fallback}
}

// AverageStageDurations считает среднюю длительность (часы) завершённых этапов по имени этапа.
func (d *Detector) AverageStageDurations(ctx context.Context) (map[string]float64, error) {
	const op = "service.production.AverageStageDurations"

	completed, err := d.storage.GetStagesByStatus(ctx, constants.StageCompleted)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.NewReadError(storage.SourceStagesCompleted, err))
	}

	avg := averages(completed)
	for name, h := range avg {
		avg[name] = round2(h)
	}

	return avg, nil
}

// DetectBottlenecks пересчитывает всё с нуля при каждом вызове, ничего не хранит.
func (d *Detector) DetectBottlenecks(ctx context.Context) ([]BottleneckFlag, error) {
	const op = "service.production.DetectBottlenecks"

	var completed, active []storage.StageRecord

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		completed, err = d.storage.GetStagesByStatus(gCtx, constants.StageCompleted)
		if err != nil {
			return storage.NewReadError(storage.SourceStagesCompleted, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		active, err = d.storage.GetStagesByStatus(gCtx, constants.StageInProgress)
		if err != nil {
			return storage.NewReadError(storage.SourceStagesActive, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return d.flag(averages(completed), active), nil
}

func (d *Detector) flag(avg map[string]float64, active []storage.StageRecord) []BottleneckFlag {
	now := d.clock.Now()
	flags := []BottleneckFlag{}

	for _, st := range active {
		current := now.Sub(st.StartedAt).Hours()
		average := avg[st.StageName]

		// у нового этапа истории нет, следим за ним по фиксированному порогу
		threshold := d.fallback.Hours()
		ratio := 1.0
		if average > 0 {
			threshold = average * d.multiplier
			ratio = current / average
		}

		if current <= threshold {
			continue
		}

		flags = append(flags, BottleneckFlag{
			StageID:              st.ID,
			StageName:            st.StageName,
			BatchID:              st.BatchID,
			StartedAt:            st.StartedAt,
			CurrentDurationHours: round2(current),
			AverageDurationHours: round2(average),
			ThresholdHours:       round2(threshold),
			DelayRatio:           round2(ratio),
			IsDelayed:            true,
		})
	}

	sort.SliceStable(flags, func(i, j int) bool {
		if flags[i].DelayRatio != flags[j].DelayRatio {
			return flags[i].DelayRatio > flags[j].DelayRatio
		}
		return flags[i].CurrentDurationHours > flags[j].CurrentDurationHours
	})

	return flags
}

// averages: невзвешенное среднее по всем завершениям этапа. Записи без даты
// завершения или с датой раньше старта пропускаем.
func averages(completed []storage.StageRecord) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, st := range completed {
		if st.CompletedAt == nil || st.CompletedAt.Before(st.StartedAt) {
			continue
		}
		sums[st.StageName] += st.CompletedAt.Sub(st.StartedAt).Hours()
		counts[st.StageName]++
	}

	avg := make(map[string]float64, len(sums))
	for name, sum := range sums {
		avg[name] = sum / float64(counts[name])
	}

	return avg
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
