package entity

// OverallAttendance is the all-time aggregate for one student, counting only
// submitted lectures.
type OverallAttendance struct {
	TotalClasses   int32
	PresentClasses int32
	Percentage     float64
}

type MonthlyAttendance struct {
	Month          string
	TotalClasses   int32
	PresentClasses int32
	Percentage     float64
}

type SubjectAttendance struct {
	SubjectName    string
	TotalClasses   int32
	PresentClasses int32
	Percentage     float64
}

// AbsentStudent is one row of a lecture's absentee list.
type AbsentStudent struct {
	AttendanceID int64
	RollNo       string
	Name         string
}

// AdvisorClassReport is the current-month attendance of every student in
// the class the calling teacher advises.
type AdvisorClassReport struct {
	ClassID  int64
	Month    string
	Students []AdvisorStudentAttendance
}

// AdvisorStudentAttendance keeps students with no lectures this month at
// zero counts rather than dropping them from the report.
type AdvisorStudentAttendance struct {
	RollNo          string
	Name            string
	TotalLectures   int32
	PresentLectures int32
	Percentage      float64
}
