package models

import "time"

// RoleCount is one row of the users-by-role aggregate.
type RoleCount struct {
	Role  UserRole `db:"role" json:"role"`
	Count int      `db:"count" json:"count"`
}

// BucketCount is one row of a coarse A–F grade distribution. Buckets are cut
// at 90/80/70/60 for reporting and are independent of the finer grade scale.
type BucketCount struct {
	Bucket string `db:"bucket" json:"bucket"`
	Count  int    `db:"count" json:"count"`
}

// StudentScoreRow backs top-student and at-risk queries.
type StudentScoreRow struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	AverageScore float64 `db:"average_score" json:"-"`
	GradeCount   int     `db:"grade_count" json:"gradeCount"`
	Absences     int     `db:"absences" json:"absences"`
}

// SystemMetrics is a lightweight snapshot of process counters exposed on the
// dashboard in addition to the Prometheus endpoint.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	GradeEventsPublished     uint64    `json:"gradeEventsPublished"`
	ObserverFailures         uint64    `json:"observerFailures"`
	NotificationsCreated     uint64    `json:"notificationsCreated"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
