package inbound

import (
	"github.com/upasthit/upasthit-api/internal/academic/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/router"
)

// HTTPEndpoint exposes attendance views, the weekly timetable, announcements
// and the roster import.
type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) AttendanceOverall(r *router.Request) (any, error) {
	resp, err := h.uc.AttendanceOverall(r.Context())
	if err != nil {
		return nil, err
	}

	return AttendanceSummary{
		TotalClasses:   resp.TotalClasses,
		PresentClasses: resp.PresentClasses,
		Percentage:     resp.Percentage,
	}, nil
}

func (h *HTTPEndpoint) AttendanceMonthly(r *router.Request) (any, error) {
	resp, err := h.uc.AttendanceMonthly(r.Context())
	if err != nil {
		return nil, err
	}

	months := make([]MonthlyAttendanceItem, 0, len(resp))
	for _, m := range resp {
		months = append(months, MonthlyAttendanceItem{
			Month:          m.Month,
			TotalClasses:   m.TotalClasses,
			PresentClasses: m.PresentClasses,
			Percentage:     m.Percentage,
		})
	}

	return MonthlyAttendanceResponse{Months: months}, nil
}

func (h *HTTPEndpoint) AttendanceSubjects(r *router.Request) (any, error) {
	resp, err := h.uc.AttendanceSubjects(r.Context())
	if err != nil {
		return nil, err
	}

	subjects := make([]SubjectAttendanceItem, 0, len(resp))
	for _, s := range resp {
		subjects = append(subjects, SubjectAttendanceItem{
			Subject:        s.SubjectName,
			TotalClasses:   s.TotalClasses,
			PresentClasses: s.PresentClasses,
			Percentage:     s.Percentage,
		})
	}

	return SubjectAttendanceResponse{Subjects: subjects}, nil
}

func (h *HTTPEndpoint) AttendanceAbsentees(r *router.Request) (any, error) {
	timetableID, err := r.GetQueryInt64("timetable_id")
	if err != nil {
		return nil, err
	}
	date, err := r.GetQueryDate("date", "2006-01-02")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.AttendanceAbsentees(r.Context(), usecase.AbsenteesInput{
		TimetableID: timetableID,
		Date:        date,
	})
	if err != nil {
		return nil, err
	}

	absentees := make([]AbsenteeItem, 0, len(resp))
	for _, a := range resp {
		absentees = append(absentees, AbsenteeItem{
			AttendanceID: a.AttendanceID,
			RollNo:       a.RollNo,
			Name:         a.Name,
		})
	}

	return AbsenteesResponse{Absentees: absentees}, nil
}

func (h *HTTPEndpoint) AttendanceAdvisorClass(r *router.Request) (any, error) {
	resp, err := h.uc.AttendanceAdvisorClass(r.Context())
	if err != nil {
		return nil, err
	}

	students := make([]AdvisorStudentItem, 0, len(resp.Students))
	for _, s := range resp.Students {
		students = append(students, AdvisorStudentItem{
			RollNo:          s.RollNo,
			Name:            s.Name,
			TotalLectures:   s.TotalLectures,
			PresentLectures: s.PresentLectures,
			Percentage:      s.Percentage,
		})
	}

	return AdvisorClassResponse{
		ClassID:  resp.ClassID,
		Month:    resp.Month,
		Students: students,
	}, nil
}

func (h *HTTPEndpoint) Timetable(r *router.Request) (any, error) {
	resp, err := h.uc.Timetable(r.Context())
	if err != nil {
		return nil, err
	}

	return TimetableResponse{
		Role:      resp.Role,
		Timetable: resp.Timetable,
		TimeSlots: resp.TimeSlots,
	}, nil
}

func (h *HTTPEndpoint) Home(r *router.Request) (any, error) {
	resp, err := h.uc.Home(r.Context())
	if err != nil {
		return nil, err
	}

	return HomeResponse{
		Name:      resp.Name,
		Role:      resp.Role,
		RollNo:    resp.RollNo,
		Email:     resp.Email,
		ClassName: resp.ClassName,
	}, nil
}

func (h *HTTPEndpoint) AnnouncementCreate(r *router.Request) (any, error) {
	var req AnnouncementCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AnnouncementCreate(r.Context(), usecase.AnnouncementCreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Audience: req.Audience,
		BatchID:  req.BatchID,
		Priority: req.Priority,
	})
	if err != nil {
		return nil, err
	}

	return AnnouncementCreateResponse{ID: resp.ID}, nil
}

func (h *HTTPEndpoint) AnnouncementList(r *router.Request) (any, error) {
	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}
	offset, err := r.GetQueryInt32("offset")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.AnnouncementList(r.Context(), usecase.AnnouncementListInput{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	items := make([]AnnouncementItem, 0, len(resp))
	for _, a := range resp {
		items = append(items, AnnouncementItem{
			ID:         a.ID,
			Title:      a.Title,
			Content:    a.Content,
			AuthorName: a.AuthorName,
			AuthorRole: a.AuthorRole,
			Audience:   string(a.Audience),
			Priority:   string(a.Priority),
			CreatedAt:  a.CreatedAt,
		})
	}

	return AnnouncementListResponse{Announcements: items}, nil
}

func (h *HTTPEndpoint) AnnouncementDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.AnnouncementDelete(r.Context(), usecase.AnnouncementDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *HTTPEndpoint) RosterImport(r *router.Request) (any, error) {
	file, fileName, err := r.StreamSingleFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if fileName == "" {
		fileName = "roster.csv"
	}

	resp, err := h.uc.RosterImport(r.Context(), usecase.RosterImportInput{FileName: fileName, File: file})
	if err != nil {
		return nil, err
	}

	skipped := make([]RosterSkippedRow, 0, len(resp.Skipped))
	for _, row := range resp.Skipped {
		skipped = append(skipped, RosterSkippedRow{Line: row.Line, RollNo: row.RollNo, Reason: row.Reason})
	}

	return RosterImportResponse{Created: resp.Created, Updated: resp.Updated, Skipped: skipped}, nil
}
