package inbound

import (
	"time"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
)

type AttendanceSummary struct {
	TotalClasses   int32   `json:"total_classes"`
	PresentClasses int32   `json:"present_classes"`
	Percentage     float64 `json:"percentage"`
}

type MonthlyAttendanceItem struct {
	Month          string  `json:"month"`
	TotalClasses   int32   `json:"total_classes"`
	PresentClasses int32   `json:"present_classes"`
	Percentage     float64 `json:"percentage"`
}

type MonthlyAttendanceResponse struct {
	Months []MonthlyAttendanceItem `json:"months"`
}

type SubjectAttendanceItem struct {
	Subject        string  `json:"subject"`
	TotalClasses   int32   `json:"total_classes"`
	PresentClasses int32   `json:"present_classes"`
	Percentage     float64 `json:"percentage"`
}

type SubjectAttendanceResponse struct {
	Subjects []SubjectAttendanceItem `json:"subjects"`
}

type AbsenteeItem struct {
	AttendanceID int64  `json:"attendance_id"`
	RollNo       string `json:"roll_no"`
	Name         string `json:"name"`
}

type AbsenteesResponse struct {
	Absentees []AbsenteeItem `json:"absentees"`
}

type AdvisorStudentItem struct {
	RollNo          string  `json:"roll_no"`
	Name            string  `json:"name"`
	TotalLectures   int32   `json:"total_lectures"`
	PresentLectures int32   `json:"present_lectures"`
	Percentage      float64 `json:"percentage"`
}

type AdvisorClassResponse struct {
	ClassID  int64                `json:"class_id,string"`
	Month    string               `json:"month"`
	Students []AdvisorStudentItem `json:"students"`
}

type TimetableResponse struct {
	Role      string                 `json:"role"`
	Timetable entity.WeeklyTimetable `json:"timetable"`
	TimeSlots map[int32]string       `json:"time_slots"`
}

type HomeResponse struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	RollNo    string `json:"roll_no,omitempty"`
	Email     string `json:"email"`
	ClassName string `json:"class_name,omitempty"`
}

type AnnouncementCreateRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Audience string `json:"audience"`
	BatchID  *int64 `json:"batch_id,omitempty"`
	Priority string `json:"priority,omitempty"`
}

type AnnouncementCreateResponse struct {
	ID int64 `json:"id,string"`
}

func (AnnouncementCreateResponse) Message() string {
	return "Announcement published."
}

type AnnouncementItem struct {
	ID         int64     `json:"id,string"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name"`
	AuthorRole string    `json:"author_role"`
	Audience   string    `json:"audience"`
	Priority   string    `json:"priority"`
	CreatedAt  time.Time `json:"created_at"`
}

type AnnouncementListResponse struct {
	Announcements []AnnouncementItem `json:"announcements"`
}

type RosterSkippedRow struct {
	Line   int    `json:"line"`
	RollNo string `json:"roll_no,omitempty"`
	Reason string `json:"reason"`
}

type RosterImportResponse struct {
	Created int                `json:"created"`
	Updated int                `json:"updated"`
	Skipped []RosterSkippedRow `json:"skipped"`
}

func (RosterImportResponse) Message() string {
	return "Roster import completed."
}
