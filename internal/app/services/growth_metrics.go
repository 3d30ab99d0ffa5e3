package services

import (
	"math"
	"sort"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/helpers"
)

// growthWindows are the calendar boundaries used by ComputeGrowthMetrics, all at local midnight
type growthWindows struct {
	oneWeekAgo   time.Time
	oneMonthAgo  time.Time
	twoMonthsAgo time.Time
}

func windowsAt(now time.Time) growthWindows {
	y, m, d := now.Date()
	loc := now.Location()
	return growthWindows{
		oneWeekAgo:   time.Date(y, m, d-7, 0, 0, 0, 0, loc),
		oneMonthAgo:  time.Date(y, m-1, d, 0, 0, 0, 0, loc),
		twoMonthsAgo: time.Date(y, m-2, d, 0, 0, 0, 0, loc),
	}
}

func (w growthWindows) thisMonth(date time.Time) bool {
	return !date.Before(w.oneMonthAgo)
}

func (w growthWindows) lastMonth(date time.Time) bool {
	return !date.Before(w.twoMonthsAgo) && date.Before(w.oneMonthAgo)
}

// calendarDate re-anchors a stored DATE onto midnight in loc so it compares with the windows
func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ComputeGrowthMetrics derives month-over-month attendance figures. now's location decides
// where midnight falls. Attendance rows without an event date are ignored. The weekly and
// monthly series carry one entry per event date: events held on the same day are merged.
func ComputeGrowthMetrics(users []*models.User, attendances []*models.Attendance, events []*models.Event, now time.Time) dto.GrowthMetrics {
	loc := now.Location()
	w := windowsAt(now)

	var (
		presentThisMonth, presentLastMonth int
		eventsThisMonth, eventsLastMonth   int
		firstTimersThisMonth               int
	)

	byDate := make(map[time.Time]*dto.AttendanceStats)
	for _, a := range attendances {
		if a.EventDate == nil {
			continue
		}
		date := calendarDate(*a.EventDate, loc)

		switch {
		case w.thisMonth(date):
			if a.Present {
				presentThisMonth++
			}
			if a.IsFirstTimer {
				firstTimersThisMonth++
			}
		case w.lastMonth(date):
			if a.Present {
				presentLastMonth++
			}
		}

		st, ok := byDate[date]
		if !ok {
			st = &dto.AttendanceStats{Date: date.Format(helpers.DateLayout)}
			byDate[date] = st
		}
		st.Total++
		if a.Present {
			st.Present++
		}
		if a.IsFirstTimer {
			st.FirstTimers++
		}
	}

	for _, e := range events {
		date := calendarDate(e.EventDate, loc)
		switch {
		case w.thisMonth(date):
			eventsThisMonth++
		case w.lastMonth(date):
			eventsLastMonth++
		}
	}

	avgThisMonth := float64(presentThisMonth) / float64(max(eventsThisMonth, 1))
	avgLastMonth := float64(presentLastMonth) / float64(max(eventsLastMonth, 1))

	rate, hasBaseline := GrowthRate(avgThisMonth, avgLastMonth)

	return dto.GrowthMetrics{
		TotalMembers:         len(users),
		AverageAttendance:    int(math.Round(avgThisMonth)),
		FirstTimersThisMonth: firstTimersThisMonth,
		GrowthRate:           roundToTenth(rate),
		HasBaseline:          hasBaseline,
		WeeklyStats:          seriesSince(byDate, w.oneWeekAgo),
		MonthlyStats:         seriesSince(byDate, w.oneMonthAgo),
	}
}

// GrowthRate is the percentage change from last to this month; without a baseline it is 0
func GrowthRate(avgThisMonth, avgLastMonth float64) (rate float64, hasBaseline bool) {
	if avgLastMonth <= 0 {
		return 0, false
	}
	return (avgThisMonth - avgLastMonth) / avgLastMonth * 100, true
}

// roundToTenth rounds half up to one decimal place
func roundToTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func seriesSince(byDate map[time.Time]*dto.AttendanceStats, from time.Time) []dto.AttendanceStats {
	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		if !d.Before(from) {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make([]dto.AttendanceStats, 0, len(dates))
	for _, d := range dates {
		out = append(out, *byDate[d])
	}
	return out
}
