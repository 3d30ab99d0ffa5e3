package dto

// AttendanceStats is the fold of all attendance rows for one event date
type AttendanceStats struct {
	Date        string `json:"date" example:"2024-01-07"`
	Total       int    `json:"total" example:"60"`
	Present     int    `json:"present" example:"52"`
	FirstTimers int    `json:"firstTimers" example:"3"`
}

// GrowthMetrics summarizes month-over-month attendance
type GrowthMetrics struct {
	TotalMembers         int     `json:"totalMembers" example:"180"`
	AverageAttendance    int     `json:"averageAttendance" example:"47"`
	FirstTimersThisMonth int     `json:"firstTimersThisMonth" example:"6"`
	GrowthRate           float64 `json:"growthRate" example:"12.5"`
	// HasBaseline is false when last month had no present attendance, in which case GrowthRate is 0
	HasBaseline  bool              `json:"hasBaseline"`
	WeeklyStats  []AttendanceStats `json:"weeklyStats"`
	MonthlyStats []AttendanceStats `json:"monthlyStats"`
}
