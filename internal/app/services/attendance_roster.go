package services

import (
	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/helpers"
	"github.com/google/uuid"
)

// BuildRoster pairs every member with their attendance row for the event, keeping the members' order.
// Rows belonging to users outside the roster are ignored.
func BuildRoster(users []*models.User, attendances []*models.Attendance) []dto.RosterEntry {
	byUser := make(map[uuid.UUID]*models.Attendance, len(attendances))
	for _, a := range attendances {
		if a.UserID != nil {
			byUser[*a.UserID] = a
		}
	}

	entries := make([]dto.RosterEntry, 0, len(users))
	for _, u := range users {
		a := byUser[u.ID]
		entries = append(entries, dto.RosterEntry{
			User:       u,
			Status:     models.StatusOf(a),
			Attendance: a,
		})
	}
	return entries
}

// CountRoster tallies statuses; notMarked is whatever is left of the roster
func CountRoster(entries []dto.RosterEntry) dto.AttendanceCounts {
	counts := dto.AttendanceCounts{Total: len(entries)}
	for _, e := range entries {
		switch e.Status {
		case models.AttendancePresent:
			counts.Present++
		case models.AttendanceAbsent:
			counts.Absent++
		}
	}
	counts.NotMarked = counts.Total - counts.Present - counts.Absent
	return counts
}

// MatchesSearch reports whether search occurs, ignoring case, in the member's name, surname, phone or cell group
func MatchesSearch(u *models.User, search string) bool {
	if search == "" {
		return true
	}
	return helpers.ContainsFold(u.Name, search) ||
		helpers.ContainsFold(u.Surname, search) ||
		helpers.ContainsFold(helpers.StringValue(u.Phone), search) ||
		helpers.ContainsFold(helpers.StringValue(u.CellGroup), search)
}

// FilterRoster keeps the entries whose member matches search
func FilterRoster(entries []dto.RosterEntry, search string) []dto.RosterEntry {
	if search == "" {
		return entries
	}
	out := make([]dto.RosterEntry, 0, len(entries))
	for _, e := range entries {
		if MatchesSearch(e.User, search) {
			out = append(out, e)
		}
	}
	return out
}
