package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/maeartistry/internal/store"
)

// TableStatus is the row count of one hosted table, or why it could not be read.
type TableStatus struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
	Error string `json:"error,omitempty"`
}

// BucketStatus describes the media bucket.
type BucketStatus struct {
	Name    string `json:"name"`
	Public  bool   `json:"public"`
	Objects int    `json:"objects"`
	Error   string `json:"error,omitempty"`
}

// HealthReport is the result of a connectivity check.
type HealthReport struct {
	OK        bool          `json:"ok"`
	Tables    []TableStatus `json:"tables"`
	Bucket    *BucketStatus `json:"bucket,omitempty"`
	CheckedAt time.Time     `json:"checked_at"`
}

// HealthService checks that the configured store and bucket answer.
type HealthService struct {
	repo   store.Repository
	bucket store.Bucket
}

// NewHealthService creates a HealthService. bucket may be nil.
func NewHealthService(repo store.Repository, bucket store.Bucket) *HealthService {
	return &HealthService{repo: repo, bucket: bucket}
}

// Check counts every table and inspects the bucket. A failed table does not
// stop the remaining checks; it marks the report as not OK.
func (s *HealthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{OK: true, CheckedAt: time.Now().UTC()}

	for _, table := range store.Tables {
		status := TableStatus{Table: table}
		count, err := s.repo.Count(ctx, table)
		if err != nil {
			status.Error = err.Error()
			report.OK = false
			slog.Warn("table check failed", "table", table, "error", err)
		} else {
			status.Rows = count
		}
		report.Tables = append(report.Tables, status)
	}

	if s.bucket != nil {
		status := &BucketStatus{}
		info, err := s.bucket.Info(ctx)
		if err != nil {
			status.Error = err.Error()
			report.OK = false
			slog.Warn("bucket check failed", "error", err)
		} else {
			status.Name = info.Name
			status.Public = info.Public
			objects, err := s.bucket.List(ctx, "")
			if err != nil {
				status.Error = err.Error()
				report.OK = false
			} else {
				status.Objects = len(objects)
			}
		}
		report.Bucket = status
	}
	return report
}

// Ping 只检查内容表，用于 /healthz 这类高频探测。
func (s *HealthService) Ping(ctx context.Context) error {
	_, err := s.repo.Count(ctx, store.TableContent)
	return err
}

// Counts returns rows per table, skipping tables that fail.
func (s *HealthService) Counts(ctx context.Context) map[string]int64 {
	counts := make(map[string]int64, len(store.Tables))
	for _, table := range store.Tables {
		count, err := s.repo.Count(ctx, table)
		if err != nil {
			slog.Warn("count failed", "table", table, "error", err)
			continue
		}
		counts[table] = count
	}
	return counts
}
