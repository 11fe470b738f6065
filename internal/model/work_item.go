package model

import "time"

type WorkItemStatus string

const (
	WorkItemStatusSubmitted WorkItemStatus = "submitted"
	WorkItemStatusApproved  WorkItemStatus = "approved"
	WorkItemStatusRejected  WorkItemStatus = "rejected"
)

func (s WorkItemStatus) Decision() bool {
	return s == WorkItemStatusApproved || s == WorkItemStatusRejected
}

// WorkItem is the current submission for an accepted application.
type WorkItem struct {
	ID             int64          `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	OrderRequestID int64          `gorm:"column:order_request_id;index;not null;<-:create"`
	ApplicationID  int64          `gorm:"column:application_id;uniqueIndex;not null;<-:create"`
	Description    string         `gorm:"column:description;type:text;not null"`
	FileURL        *string        `gorm:"column:file_url;type:varchar(500)"`
	WorkLink       *string        `gorm:"column:work_link;type:varchar(500)"`
	Status         WorkItemStatus `gorm:"column:status;type:varchar(10);not null"`
	SubmittedAt    time.Time      `gorm:"column:submitted_at"`

	Application OrderApplication `gorm:"foreignKey:ApplicationID"`
}

func (WorkItem) TableName() string {
	return "work_items"
}
