package db

import (
	"context"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
)

const dayOrder = `
	CASE t.day_of_week
		WHEN 'Monday' THEN 1
		WHEN 'Tuesday' THEN 2
		WHEN 'Wednesday' THEN 3
		WHEN 'Thursday' THEN 4
		WHEN 'Friday' THEN 5
		WHEN 'Saturday' THEN 6
	END`

func (s *DB) GetStudentClassAndBatches(ctx context.Context, studentID int64) (classID int64, batchIDs []int64, err error) {
	ctx, span := s.startSpan(ctx, "GetStudentClassAndBatches")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.QueryRow(ctx, `
		SELECT s.class_id, COALESCE(ARRAY_AGG(sb.batch_id) FILTER (WHERE sb.batch_id IS NOT NULL), '{}')
		FROM students s
		LEFT JOIN student_batches sb ON sb.student_id = s.id
		WHERE s.id = $1 AND s.deleted_at IS NULL
		GROUP BY s.class_id`, studentID).Scan(&classID, &batchIDs)
	if err != nil {
		return 0, nil, s.mapError(err)
	}

	return classID, batchIDs, nil
}

// GetStudentTimetable returns the class lectures plus only the practicals of
// the student's own batches.
func (s *DB) GetStudentTimetable(ctx context.Context, classID int64, batchIDs []int64) (_ []entity.TimetableRow, err error) {
	ctx, span := s.startSpan(ctx, "GetStudentTimetable")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT
			t.day_of_week, t.lecture_no, t.duration, t.lecture_type,
			s.subject_name, tc.name, COALESCE(b.batch_name, '')
		FROM timetable t
		JOIN subjects s ON s.id = t.subject_id
		JOIN teachers tc ON tc.id = t.teacher_id
		LEFT JOIN batches b ON b.id = t.batch_id
		WHERE t.class_id = $1
			AND (t.lecture_type = 'LECTURE'
				OR (t.lecture_type = 'PRACTICAL' AND t.batch_id = ANY($2::bigint[])))
		ORDER BY `+dayOrder+`, t.lecture_no`, classID, batchIDs)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.TimetableRow, 0)
	for rows.Next() {
		var item entity.TimetableRow
		if err = rows.Scan(&item.DayOfWeek, &item.LectureNo, &item.Duration, &item.LectureType,
			&item.SubjectName, &item.TeacherName, &item.BatchName); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) GetTeacherTimetable(ctx context.Context, teacherID int64) (_ []entity.TimetableRow, err error) {
	ctx, span := s.startSpan(ctx, "GetTeacherTimetable")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT
			t.day_of_week, t.lecture_no, t.duration, t.lecture_type,
			s.subject_name, c.year || ' ' || c.branch, COALESCE(b.batch_name, '')
		FROM timetable t
		JOIN subjects s ON s.id = t.subject_id
		JOIN classes c ON c.id = t.class_id
		LEFT JOIN batches b ON b.id = t.batch_id
		WHERE t.teacher_id = $1
		ORDER BY `+dayOrder+`, t.lecture_no`, teacherID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.TimetableRow, 0)
	for rows.Next() {
		var item entity.TimetableRow
		if err = rows.Scan(&item.DayOfWeek, &item.LectureNo, &item.Duration, &item.LectureType,
			&item.SubjectName, &item.ClassName, &item.BatchName); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}
