package db

import (
	"context"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

func (s *DB) InsertAnnouncement(ctx context.Context, a entity.Announcement) (err error) {
	ctx, span := s.startSpan(ctx, "InsertAnnouncement")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO announcements
			(id, title, content, author_id, author_role, class_id, batch_id, target_audience, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.Title, a.Content, a.AuthorID, a.AuthorRole, a.ClassID, a.BatchID,
		string(a.Audience), string(a.Priority), a.CreatedAt)

	return s.mapError(err)
}

// ListAnnouncementsForStudent returns active announcements addressed to
// everyone, to the student's class, or to one of the student's batches.
func (s *DB) ListAnnouncementsForStudent(ctx context.Context, classID int64, batchIDs []int64, limit, offset int32) (_ []entity.Announcement, err error) {
	ctx, span := s.startSpan(ctx, "ListAnnouncementsForStudent")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT
			a.id, a.title, a.content, a.author_id, a.author_role,
			COALESCE(CASE
				WHEN a.author_role = 'student' THEN st.name
				WHEN a.author_role = 'teacher' THEN tc.name
			END, ''),
			a.class_id, a.batch_id, a.target_audience, a.priority, a.created_at
		FROM announcements a
		LEFT JOIN students st ON st.id = a.author_id AND a.author_role = 'student'
		LEFT JOIN teachers tc ON tc.id = a.author_id AND a.author_role = 'teacher'
		WHERE a.is_active = true
			AND (a.target_audience = 'all'
				OR (a.target_audience = 'class' AND a.class_id = $1)
				OR (a.target_audience = 'batch' AND a.batch_id = ANY($2::bigint[])))
		ORDER BY
			CASE a.priority
				WHEN 'urgent' THEN 1
				WHEN 'high' THEN 2
				WHEN 'normal' THEN 3
				WHEN 'low' THEN 4
			END,
			a.created_at DESC
		LIMIT $3 OFFSET $4`, classID, batchIDs, limit, offset)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	return scanAnnouncements(rows)
}

// ListAnnouncementsForTeacher returns global announcements plus the teacher's
// own, regardless of audience.
func (s *DB) ListAnnouncementsForTeacher(ctx context.Context, teacherID int64, limit, offset int32) (_ []entity.Announcement, err error) {
	ctx, span := s.startSpan(ctx, "ListAnnouncementsForTeacher")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT
			a.id, a.title, a.content, a.author_id, a.author_role,
			COALESCE(CASE
				WHEN a.author_role = 'student' THEN st.name
				WHEN a.author_role = 'teacher' THEN tc.name
			END, ''),
			a.class_id, a.batch_id, a.target_audience, a.priority, a.created_at
		FROM announcements a
		LEFT JOIN students st ON st.id = a.author_id AND a.author_role = 'student'
		LEFT JOIN teachers tc ON tc.id = a.author_id AND a.author_role = 'teacher'
		WHERE a.is_active = true
			AND (a.target_audience = 'all'
				OR (a.author_id = $1 AND a.author_role = 'teacher'))
		ORDER BY
			CASE a.priority
				WHEN 'urgent' THEN 1
				WHEN 'high' THEN 2
				WHEN 'normal' THEN 3
				WHEN 'low' THEN 4
			END,
			a.created_at DESC
		LIMIT $2 OFFSET $3`, teacherID, limit, offset)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	return scanAnnouncements(rows)
}

// DeleteAnnouncement soft-deletes, and only for the author.
func (s *DB) DeleteAnnouncement(ctx context.Context, id, authorID int64, authorRole string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteAnnouncement")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE announcements SET is_active = false
		WHERE id = $1 AND author_id = $2 AND author_role = $3 AND is_active = true`,
		id, authorID, authorRole)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

type announcementRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAnnouncements(rows announcementRows) ([]entity.Announcement, error) {
	items := make([]entity.Announcement, 0)
	for rows.Next() {
		var item entity.Announcement
		var audience, priority string
		if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.AuthorID, &item.AuthorRole,
			&item.AuthorName, &item.ClassID, &item.BatchID, &audience, &priority, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Audience = entity.AnnouncementAudience(audience)
		item.Priority = entity.AnnouncementPriority(priority)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
