package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/middleware"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/service"
)

// Router bundles every handler and registers the API surface.
type Router struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Grades        *GradeHandler
	Attendance    *AttendanceHandler
	Notifications *NotificationHandler
	Classes       *ClassHandler
	Analytics     *AnalyticsHandler
	Parents       *ParentHandler
	Reports       *ReportHandler

	AuthService    *service.AuthService
	MetricsService *service.MetricsService
}

// Register mounts all routes under the given prefix.
func (rt *Router) Register(r *gin.Engine, prefix string) {
	api := r.Group(prefix)
	api.Use(middleware.Metrics(rt.MetricsService))

	api.POST("/auth/login", rt.Auth.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(rt.AuthService))

	authed.GET("/auth/me", rt.Auth.Me)

	users := authed.Group("/users")
	{
		users.POST("", middleware.RequireRoles(models.RoleAdmin), rt.Users.Create)
		users.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), rt.Users.List)
		users.GET("/students/unlinked", middleware.RequireRoles(models.RoleAdmin), rt.Users.UnlinkedStudents)
		users.GET("/:id", middleware.RBAC("ADMIN", "TEACHER", "SELF"), rt.Users.Get)
		users.GET("/:id/students", middleware.RequireRoles(models.RoleAdmin), rt.Users.LinkedStudents)
		users.POST("/link-parent", middleware.RequireRoles(models.RoleAdmin), rt.Users.LinkParent)
		users.DELETE("/:id/parent", middleware.RequireRoles(models.RoleAdmin), rt.Users.UnlinkParent)
	}

	grades := authed.Group("/grades")
	{
		grades.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), rt.Grades.Create)
		grades.GET("/student/:id", middleware.RBAC("ADMIN", "TEACHER", "SELF"), rt.Grades.ListByStudent)
		grades.GET("/student/:id/gpa", middleware.RBAC("ADMIN", "TEACHER", "SELF"), rt.Grades.SimpleGPA)
		grades.GET("/student/:id/gpa/weighted", middleware.RBAC("ADMIN", "TEACHER", "SELF"), rt.Grades.WeightedGPA)
		grades.GET("/student/:id/summary", middleware.RBAC("ADMIN", "TEACHER", "SELF"), rt.Grades.Summary)
		grades.GET("/scale/:score", rt.Grades.Scale)
	}

	attendance := authed.Group("/attendance")
	{
		attendance.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), rt.Attendance.Mark)
		attendance.POST("/bulk", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), rt.Attendance.Bulk)
		attendance.POST("/notify-absences", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), rt.Attendance.NotifyAbsences)
		attendance.GET("/date/:date", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), rt.Attendance.ByDate)
		attendance.GET("/trends", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), rt.Attendance.Trends)
		attendance.GET("/student/:id", middleware.RBAC("ADMIN", "TEACHER", "SELF"), rt.Attendance.ByStudent)
		attendance.GET("/student/:id/stats", middleware.RBAC("ADMIN", "TEACHER", "SELF"), rt.Attendance.StudentStats)
		attendance.GET("/class/:id/stats", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), rt.Attendance.ClassStats)
	}

	notifications := authed.Group("/notifications")
	{
		notifications.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), rt.Notifications.Send)
		notifications.POST("/announce", middleware.RequireRoles(models.RoleAdmin), rt.Notifications.Announce)
		notifications.GET("", rt.Notifications.Feed)
		notifications.GET("/unread", rt.Notifications.Unread)
		notifications.GET("/unread/count", rt.Notifications.UnreadCount)
		notifications.GET("/type/:type", rt.Notifications.ByType)
		notifications.GET("/summary", rt.Notifications.Summary)
		notifications.PATCH("/:id/read", rt.Notifications.MarkRead)
		notifications.PATCH("/read-all", rt.Notifications.MarkAllRead)
		notifications.DELETE("/:id", rt.Notifications.Delete)
		notifications.DELETE("", rt.Notifications.Clear)
	}

	classes := authed.Group("/classes")
	{
		classes.POST("", middleware.RequireRoles(models.RoleAdmin), rt.Classes.Create)
		classes.GET("", rt.Classes.List)
		classes.GET("/:id", rt.Classes.Get)
		classes.POST("/:id/students", middleware.RequireRoles(models.RoleAdmin), rt.Classes.Enroll)
		classes.GET("/:id/students", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), rt.Classes.Roster)
		classes.DELETE("/:id/students/:studentId", middleware.RequireRoles(models.RoleAdmin), rt.Classes.RemoveStudent)
		classes.POST("/:id/subjects", middleware.RequireRoles(models.RoleAdmin), rt.Classes.AssignSubject)
		classes.GET("/:id/subjects", rt.Classes.ClassSubjects)
	}

	subjects := authed.Group("/subjects")
	{
		subjects.POST("", middleware.RequireRoles(models.RoleAdmin), rt.Classes.CreateSubject)
		subjects.GET("", rt.Classes.ListSubjects)
	}

	analytics := authed.Group("/analytics")
	analytics.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
	{
		analytics.GET("/dashboard", rt.Analytics.Dashboard)
		analytics.GET("/top-students", rt.Analytics.TopStudents)
		analytics.GET("/at-risk", rt.Analytics.AtRisk)
		analytics.GET("/class/:id", rt.Analytics.Class)
		analytics.GET("/teacher/:id", rt.Analytics.Teacher)
	}

	parent := authed.Group("/parent")
	parent.Use(middleware.RequireRoles(models.RoleParent))
	{
		parent.GET("/children", rt.Parents.Children)
		parent.GET("/children/:id/grades", rt.Parents.ChildGrades)
		parent.GET("/children/:id/attendance", rt.Parents.ChildAttendance)
		parent.GET("/children/:id/overview", rt.Parents.ChildOverview)
	}

	reports := authed.Group("/reports")
	reports.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
	{
		reports.GET("/student/:id/report-card", rt.Reports.ReportCard)
		reports.GET("/student/:id/grades", rt.Reports.GradesCSV)
		reports.GET("/attendance/:date", rt.Reports.AttendanceCSV)
	}
}
