package model

import "time"

// TrafficPoll records when a site's access log was last scanned for usage.
type TrafficPoll struct {
	SiteID       string
	LastPolledAt time.Time
	UpdatedAt    time.Time
}

// TrafficUsage is the aggregate usage computed for one site since its last
// poll.
type TrafficUsage struct {
	SiteID string
	Bytes  int64
}
