// Package services holds the business logic behind the HTTP API.
//
// Services defined in this package:
//   - AttendanceService: marks members present or absent, one row per member and event
//   - GrowthService: month-over-month attendance metrics
//   - MemberService: member profiles, roles and PINs
//   - EventService: events and participant rosters
//   - DepartmentService: departments, teams and equipment checklists
//   - CallService: follow-up calls to first-time visitors
//
// Services depend on the store interfaces in stores.go so they can run against
// in-memory fakes in tests.
package services
