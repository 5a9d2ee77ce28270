package entity

// TimetableRow is one scheduled lecture as stored, before duration expansion.
type TimetableRow struct {
	DayOfWeek   string
	LectureNo   int32
	Duration    int32
	LectureType string
	SubjectName string
	TeacherName string
	ClassName   string
	BatchName   string
}

// TimetableSlot is one rendered hour in the weekly grid. A lecture spanning
// several slots repeats with IsContinuation set past the first hour.
type TimetableSlot struct {
	Subject        string `json:"subject"`
	Type           string `json:"type"`
	Teacher        string `json:"teacher,omitempty"`
	Class          string `json:"class,omitempty"`
	Batch          string `json:"batch,omitempty"`
	Time           string `json:"time"`
	IsContinuation bool   `json:"is_continuation"`
	ParentLecture  int32  `json:"parent_lecture"`
}

// WeeklyTimetable maps day name to slot number to the rendered slot.
type WeeklyTimetable map[string]map[int32]TimetableSlot
