package db

import (
	"context"
	"time"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
)

func (s *DB) GetAdvisorClassID(ctx context.Context, teacherID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetAdvisorClassID")
	defer func() { s.endSpan(span, err) }()

	var classID int64
	err = s.conn.QueryRow(ctx, `
		SELECT class_id FROM advisors WHERE teacher_id = $1`, teacherID).
		Scan(&classID)
	if err != nil {
		return 0, s.mapError(err)
	}

	return classID, nil
}

func (s *DB) GetAdvisorClassAttendance(ctx context.Context, classID int64, month time.Time) (_ []entity.AdvisorStudentAttendance, err error) {
	ctx, span := s.startSpan(ctx, "GetAdvisorClassAttendance")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT
			st.roll_no,
			st.name,
			COUNT(a.id)::int,
			COALESCE(SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END), 0)::int,
			COALESCE(ROUND(
				(SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END)::numeric
					/ NULLIF(COUNT(a.id), 0)) * 100, 2), 0)
		FROM students st
		LEFT JOIN attendance a
			ON a.student_id = st.id
			AND a.submitted = true
			AND DATE_TRUNC('month', a.attendance_date) = DATE_TRUNC('month', $2::date)
		WHERE st.class_id = $1 AND st.deleted_at IS NULL
		GROUP BY st.roll_no, st.name
		ORDER BY st.roll_no`, classID, month)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.AdvisorStudentAttendance, 0)
	for rows.Next() {
		var item entity.AdvisorStudentAttendance
		if err = rows.Scan(&item.RollNo, &item.Name, &item.TotalLectures, &item.PresentLectures, &item.Percentage); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}
