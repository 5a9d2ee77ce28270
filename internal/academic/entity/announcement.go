package entity

import "time"

type AnnouncementAudience string

const (
	AudienceAll   AnnouncementAudience = "all"
	AudienceClass AnnouncementAudience = "class"
	AudienceBatch AnnouncementAudience = "batch"
)

type AnnouncementPriority string

const (
	PriorityUrgent AnnouncementPriority = "urgent"
	PriorityHigh   AnnouncementPriority = "high"
	PriorityNormal AnnouncementPriority = "normal"
	PriorityLow    AnnouncementPriority = "low"
)

type Announcement struct {
	ID         int64
	Title      string
	Content    string
	AuthorID   int64
	AuthorRole string
	AuthorName string
	ClassID    *int64
	BatchID    *int64
	Audience   AnnouncementAudience
	Priority   AnnouncementPriority
	CreatedAt  time.Time
}
