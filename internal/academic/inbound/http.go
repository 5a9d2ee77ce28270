package inbound

import (
	"context"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/academic/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/router"
)

type uc interface {
	AttendanceOverall(ctx context.Context) (*entity.OverallAttendance, error)
	AttendanceMonthly(ctx context.Context) ([]entity.MonthlyAttendance, error)
	AttendanceSubjects(ctx context.Context) ([]entity.SubjectAttendance, error)
	AttendanceAbsentees(ctx context.Context, in usecase.AbsenteesInput) ([]entity.AbsentStudent, error)
	AttendanceAdvisorClass(ctx context.Context) (*entity.AdvisorClassReport, error)

	Timetable(ctx context.Context) (*usecase.TimetableOutput, error)
	Home(ctx context.Context) (*entity.HomeProfile, error)

	AnnouncementCreate(ctx context.Context, in usecase.AnnouncementCreateInput) (*usecase.AnnouncementCreateOutput, error)
	AnnouncementList(ctx context.Context, in usecase.AnnouncementListInput) ([]entity.Announcement, error)
	AnnouncementDelete(ctx context.Context, in usecase.AnnouncementDeleteInput) error

	RosterImport(ctx context.Context, in usecase.RosterImportInput) (*usecase.RosterImportOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// need authenticated
	r.GET("/api/v1/academic/home", end.Home)
	r.GET("/api/v1/academic/timetable", end.Timetable)

	// need authenticated (student)
	r.GET("/api/v1/academic/attendance/overall", end.AttendanceOverall)
	r.GET("/api/v1/academic/attendance/monthly", end.AttendanceMonthly)
	r.GET("/api/v1/academic/attendance/subjects", end.AttendanceSubjects)

	// need authenticated (teacher)
	r.GET("/api/v1/academic/attendance/absentees", end.AttendanceAbsentees)
	r.GET("/api/v1/academic/attendance/advisor-class", end.AttendanceAdvisorClass)
	r.POST("/api/v1/academic/roster/import", end.RosterImport)

	// need authenticated
	r.GET("/api/v1/academic/announcements", end.AnnouncementList)
	r.POST("/api/v1/academic/announcements", end.AnnouncementCreate)
	r.DELETE("/api/v1/academic/announcements/:id", end.AnnouncementDelete)
}
