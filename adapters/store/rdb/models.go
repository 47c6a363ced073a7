package rdb

import "time"

// SiteRecord is the RDB persistence model for domain Site.
// Table name: sites
type SiteRecord struct {
	ID         string    `gorm:"primaryKey;type:text;not null"`
	Name       string    `gorm:"type:text;not null"`
	AccountID  string    `gorm:"type:text;not null"`
	Protocol   string    `gorm:"type:text;not null"`
	Active     bool      `gorm:"not null"`
	Contents   string    `gorm:"type:text"` // JSON encoded []model.Content
	Directives string    `gorm:"type:text"` // JSON encoded []model.SiteDirective
	DomainIDs  string    `gorm:"type:text"` // JSON encoded []string
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (SiteRecord) TableName() string { return "sites" }

// WebAppRecord persistence model
type WebAppRecord struct {
	ID            string    `gorm:"primaryKey;type:text;not null"`
	Name          string    `gorm:"type:text;not null"`
	AccountID     string    `gorm:"type:text;not null"`
	Type          string    `gorm:"type:text;not null"`
	DirectiveName string    `gorm:"type:text;not null"`
	DirectiveArgs string    `gorm:"type:text"` // JSON encoded []string
	DataDir       string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (WebAppRecord) TableName() string { return "webapps" }

// DomainRecord persistence model
type DomainRecord struct {
	ID        string    `gorm:"primaryKey;type:text;not null"`
	Name      string    `gorm:"type:text;not null;uniqueIndex"`
	AccountID string    `gorm:"type:text;not null"`
	TopID     string    `gorm:"type:text;index"` // references Domain, empty for top domains
	Serial    int       `gorm:"not null"`
	Refresh   string    `gorm:"type:text"`
	Retry     string    `gorm:"type:text"`
	Expire    string    `gorm:"type:text"`
	MinTTL    string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (DomainRecord) TableName() string { return "domains" }

// ResourceRecord persistence model for declared zone records.
// Order preserves declaration order within a domain.
type ResourceRecord struct {
	ID        string    `gorm:"primaryKey;type:text;not null"`
	DomainID  string    `gorm:"type:text;not null;index"` // references Domain
	Type      string    `gorm:"type:text;not null"`
	TTL       string    `gorm:"type:text"`
	Value     string    `gorm:"type:text;not null"`
	Order     int64     `gorm:"column:record_order;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ResourceRecord) TableName() string { return "records" }

// TrafficPollRecord persistence model
type TrafficPollRecord struct {
	SiteID       string    `gorm:"primaryKey;type:text;not null"`
	LastPolledAt time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (TrafficPollRecord) TableName() string { return "traffic_polls" }
