package db

import (
	"context"
	"time"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
)

func (s *DB) GetOverallAttendance(ctx context.Context, studentID int64) (_ *entity.OverallAttendance, err error) {
	ctx, span := s.startSpan(ctx, "GetOverallAttendance")
	defer func() { s.endSpan(span, err) }()

	var out entity.OverallAttendance
	err = s.conn.QueryRow(ctx, `
		SELECT
			COUNT(*)::int,
			COALESCE(SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END), 0)::int,
			COALESCE(ROUND(
				(SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END)::numeric
					/ NULLIF(COUNT(*), 0)) * 100, 2), 0)
		FROM attendance a
		WHERE a.student_id = $1 AND a.submitted = true`, studentID).
		Scan(&out.TotalClasses, &out.PresentClasses, &out.Percentage)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) GetMonthlyAttendance(ctx context.Context, studentID int64) (_ []entity.MonthlyAttendance, err error) {
	ctx, span := s.startSpan(ctx, "GetMonthlyAttendance")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT
			TO_CHAR(a.attendance_date, 'YYYY-MM') AS month,
			COUNT(*)::int,
			SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END)::int,
			ROUND(
				(SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END)::numeric
					/ NULLIF(COUNT(*), 0)) * 100, 2)
		FROM attendance a
		WHERE a.student_id = $1 AND a.submitted = true
		GROUP BY month
		ORDER BY month`, studentID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.MonthlyAttendance, 0)
	for rows.Next() {
		var item entity.MonthlyAttendance
		if err = rows.Scan(&item.Month, &item.TotalClasses, &item.PresentClasses, &item.Percentage); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) GetSubjectAttendance(ctx context.Context, studentID int64) (_ []entity.SubjectAttendance, err error) {
	ctx, span := s.startSpan(ctx, "GetSubjectAttendance")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT
			sub.subject_name,
			COUNT(*)::int,
			SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END)::int,
			ROUND(
				(SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END)::numeric
					/ NULLIF(COUNT(*), 0)) * 100, 2)
		FROM attendance a
		JOIN timetable t ON t.id = a.timetable_id
		JOIN subjects sub ON sub.id = t.subject_id
		WHERE a.student_id = $1 AND a.submitted = true
		GROUP BY sub.subject_name
		ORDER BY sub.subject_name`, studentID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.SubjectAttendance, 0)
	for rows.Next() {
		var item entity.SubjectAttendance
		if err = rows.Scan(&item.SubjectName, &item.TotalClasses, &item.PresentClasses, &item.Percentage); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) GetAbsentStudents(ctx context.Context, timetableID int64, date time.Time) (_ []entity.AbsentStudent, err error) {
	ctx, span := s.startSpan(ctx, "GetAbsentStudents")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT a.id, st.roll_no, st.name
		FROM attendance a
		JOIN students st ON st.id = a.student_id
		WHERE a.timetable_id = $1
			AND a.attendance_date = $2
			AND a.status = 'Absent'
			AND a.submitted = true
		ORDER BY st.roll_no`, timetableID, date)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.AbsentStudent, 0)
	for rows.Next() {
		var item entity.AbsentStudent
		if err = rows.Scan(&item.AttendanceID, &item.RollNo, &item.Name); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}
