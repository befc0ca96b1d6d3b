package models

// Stats holds descriptive counts over the whole user collection.
type Stats struct {
	TotalUsers          int            `json:"total_users"`
	UsersByGender       map[string]int `json:"users_by_gender"`
	UsersByCountry      map[string]int `json:"users_by_country"`
	RecentRegistrations int            `json:"recent_registrations"`
}

// SystemInfo is the host snapshot shown on the dashboard's system panel.
type SystemInfo struct {
	Hostname      string  `json:"hostname"`
	Platform      string  `json:"platform"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	MemoryTotalMB uint64  `json:"memory_total_mb"`
}
