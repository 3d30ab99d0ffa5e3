package routes

import (
	"github.com/cfcpretoriaeast/churchhub/internal/app/controllers"
	"github.com/gin-gonic/gin"
)

// Controllers groups every handler set mounted under /api/v1
type Controllers struct {
	Member     *controllers.MemberController
	Event      *controllers.EventController
	Attendance *controllers.AttendanceController
	Growth     *controllers.GrowthController
	Department *controllers.DepartmentController
	Call       *controllers.CallController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	// API version group
	v1 := router.Group("/api/v1")

	// Member routes
	members := v1.Group("/members")
	{
		members.GET("", c.Member.ListMembers)
		members.POST("", c.Member.CreateMember)
		members.GET("/:id", c.Member.GetMember)
		members.PUT("/:id", c.Member.UpdateMember)
		members.DELETE("/:id", c.Member.DeleteMember)
		members.POST("/:id/pin", c.Member.RegeneratePIN)
		members.PUT("/:id/role", c.Member.ChangeRole)

		// Follow-up calls
		members.GET("/:id/calls", c.Call.ListCalls)
		members.POST("/:id/calls", c.Call.LogCall)
	}
	v1.GET("/roles", c.Member.ListRoles)
	v1.GET("/first-timers", c.Call.ListFirstTimers)

	// Event routes
	events := v1.Group("/events")
	{
		events.GET("", c.Event.ListEvents)
		events.POST("", c.Event.CreateEvent)
		events.GET("/:id", c.Event.GetEvent)
		events.PUT("/:id", c.Event.UpdateEvent)
		events.DELETE("/:id", c.Event.DeleteEvent)

		events.GET("/:id/participants", c.Event.ListParticipants)
		events.POST("/:id/participants", c.Event.AddParticipant)
		events.DELETE("/:id/participants/:userId", c.Event.RemoveParticipant)

		// Attendance marking
		attendance := events.Group("/:id/attendance")
		{
			attendance.GET("", c.Attendance.GetAttendance)
			attendance.POST("/mark-all", c.Attendance.MarkAllPresent)
			attendance.POST("/walk-ins", c.Attendance.RegisterWalkIn)
			attendance.POST("/:userId/present", c.Attendance.MarkPresent)
			attendance.POST("/:userId/absent", c.Attendance.MarkAbsent)
			attendance.POST("/:userId/toggle", c.Attendance.ToggleAttendance)
		}
	}

	v1.GET("/growth", c.Growth.GetGrowthMetrics)

	// Department and team routes
	departments := v1.Group("/departments")
	{
		departments.GET("", c.Department.GetAllDepartments)
		departments.POST("", c.Department.CreateDepartment)
		departments.GET("/:id", c.Department.GetDepartmentByID)
		departments.PUT("/:id", c.Department.UpdateDepartment)
		departments.DELETE("/:id", c.Department.DeleteDepartment)
		departments.GET("/:id/members", c.Department.GetDepartmentMembers)
		departments.GET("/:id/teams", c.Department.GetTeams)
		departments.POST("/:id/teams", c.Department.CreateTeam)
	}

	teams := v1.Group("/teams")
	{
		teams.DELETE("/:teamId", c.Department.DeleteTeam)
		teams.GET("/:teamId/checklists/:eventId", c.Department.GetChecklist)
		teams.PUT("/:teamId/checklists/:eventId", c.Department.UpdateChecklist)
	}

	// Health check endpoint (public)
	v1.GET("/health", c.Health.Health)
}
