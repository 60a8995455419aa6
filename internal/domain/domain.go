package domain

import "time"

type SummaryRecord struct {
	ID          int64
	TargetWords int64
	SourceChars int64
	Summary     string
	CreatedAt   time.Time
}
