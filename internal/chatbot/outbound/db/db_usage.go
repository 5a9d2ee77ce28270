package db

import (
	"context"
	"time"

	"github.com/upasthit/upasthit-api/internal/chatbot/entity"
)

func (s *DB) InsertUsage(ctx context.Context, usage entity.UsageEvent) (err error) {
	ctx, span := s.startSpan(ctx, "InsertUsage")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO chatbot_usage (id, subject_id, question, answer, tokens_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		usage.ID, usage.SubjectID, usage.Question, usage.Answer, usage.TokensUsed, usage.CreatedAt)

	return s.mapError(err)
}

func (s *DB) UpsertDailyStat(ctx context.Context, day time.Time, tokens int64) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertDailyStat")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO chatbot_daily_stats (day, questions, tokens)
		VALUES ($1, 1, $2)
		ON CONFLICT (day) DO UPDATE SET
			questions = chatbot_daily_stats.questions + 1,
			tokens = chatbot_daily_stats.tokens + EXCLUDED.tokens`,
		day, tokens)

	return s.mapError(err)
}

func (s *DB) CountUsageSince(ctx context.Context, subjectID int64, since time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountUsageSince")
	defer func() { s.endSpan(span, err) }()

	var count int64
	err = s.conn.QueryRow(ctx, `
		SELECT COUNT(*) FROM chatbot_usage
		WHERE subject_id = $1 AND created_at >= $2`, subjectID, since).Scan(&count)
	if err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}

func (s *DB) CountUsageTotal(ctx context.Context, subjectID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountUsageTotal")
	defer func() { s.endSpan(span, err) }()

	var count int64
	err = s.conn.QueryRow(ctx, `
		SELECT COUNT(*) FROM chatbot_usage WHERE subject_id = $1`, subjectID).Scan(&count)
	if err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}

func (s *DB) GetUsagePage(ctx context.Context, subjectID int64, limit, offset int32) (_ []entity.UsageEvent, err error) {
	ctx, span := s.startSpan(ctx, "GetUsagePage")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, subject_id, question, answer, tokens_used, created_at
		FROM chatbot_usage
		WHERE subject_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, subjectID, limit, offset)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.UsageEvent, 0, limit)
	for rows.Next() {
		var item entity.UsageEvent
		if err = rows.Scan(&item.ID, &item.SubjectID, &item.Question, &item.Answer,
			&item.TokensUsed, &item.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) GetRecentQuestions(ctx context.Context, subjectID int64, limit int32) (_ []string, err error) {
	ctx, span := s.startSpan(ctx, "GetRecentQuestions")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT question FROM chatbot_usage
		WHERE subject_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, subjectID, limit)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	questions := make([]string, 0, limit)
	for rows.Next() {
		var q string
		if err = rows.Scan(&q); err != nil {
			return nil, s.mapError(err)
		}
		questions = append(questions, q)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return questions, nil
}
