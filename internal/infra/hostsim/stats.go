package hostsim

import (
	"sync"
	"time"

	"modelbridge/internal/domain"
)

// RequestStat is one recorded per-request report.
type RequestStat struct {
	RequestID    string
	Success      bool
	BatchStart   time.Time
	ComputeStart time.Time
	ComputeEnd   time.Time
	BatchEnd     time.Time
}

// BatchStat is one recorded per-batch report.
type BatchStat struct {
	BatchSize    int
	BatchStart   time.Time
	ComputeStart time.Time
	ComputeEnd   time.Time
	BatchEnd     time.Time
}

// RecordingStats captures statistics reports for inspection.
type RecordingStats struct {
	mu       sync.Mutex
	Requests []RequestStat
	Batches  []BatchStat
}

func (s *RecordingStats) ReportRequest(req domain.Request, success bool, batchStart, computeStart, computeEnd, batchEnd time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requests = append(s.Requests, RequestStat{
		RequestID:    req.ID(),
		Success:      success,
		BatchStart:   batchStart,
		ComputeStart: computeStart,
		ComputeEnd:   computeEnd,
		BatchEnd:     batchEnd,
	})
	return nil
}

func (s *RecordingStats) ReportBatch(batchSize int, batchStart, computeStart, computeEnd, batchEnd time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Batches = append(s.Batches, BatchStat{
		BatchSize:    batchSize,
		BatchStart:   batchStart,
		ComputeStart: computeStart,
		ComputeEnd:   computeEnd,
		BatchEnd:     batchEnd,
	})
	return nil
}

var _ domain.StatsReporter = (*RecordingStats)(nil)
