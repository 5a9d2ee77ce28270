package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

type AnnouncementCreateInput struct {
	Title    string `validate:"required,max=200"`
	Content  string `validate:"required,max=5000"`
	Audience string `validate:"required,oneof=all class batch"`
	BatchID  *int64 `validate:"omitempty,gt=0"`
	Priority string `validate:"omitempty,oneof=urgent high normal low"`
}

type AnnouncementCreateOutput struct {
	ID int64
}

func (s *Usecase) AnnouncementCreate(ctx context.Context, in AnnouncementCreateInput) (*AnnouncementCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "AnnouncementCreate")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Priority == "" {
		in.Priority = string(entity.PriorityNormal)
	}

	audience := entity.AnnouncementAudience(in.Audience)
	if audience == entity.AudienceBatch && in.BatchID == nil {
		return nil, goerror.NewInvalidInput(nil, "batch_id", "batch_id is required for a batch announcement")
	}

	// class-scoped posts pin to the author's own class
	var classID *int64
	if audience == entity.AudienceClass || audience == entity.AudienceBatch {
		if clm.Role == "student" {
			cid, _, err := s.repoDB.GetStudentClassAndBatches(ctx, clm.SubjectID)
			if errors.Is(err, goerror.ErrNotFound) {
				return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
			}
			if err != nil {
				slog.ErrorContext(ctx, "failed to repo get student class", "subject_id", clm.SubjectID, "error", err)
				return nil, goerror.NewServer(err)
			}
			classID = &cid
		}
	}

	id := s.uid.Generate()
	if err := s.repoDB.InsertAnnouncement(ctx, entity.Announcement{
		ID:         id,
		Title:      in.Title,
		Content:    in.Content,
		AuthorID:   clm.SubjectID,
		AuthorRole: clm.Role,
		ClassID:    classID,
		BatchID:    in.BatchID,
		Audience:   audience,
		Priority:   entity.AnnouncementPriority(in.Priority),
		CreatedAt:  s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo insert announcement", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AnnouncementCreateOutput{ID: id}, nil
}

type AnnouncementListInput struct {
	Limit  int32 `validate:"omitempty,min=1,max=100"`
	Offset int32 `validate:"omitempty,min=0"`
}

func (s *Usecase) AnnouncementList(ctx context.Context, in AnnouncementListInput) ([]entity.Announcement, error) {
	ctx, span := s.startSpan(ctx, "AnnouncementList")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Limit == 0 {
		in.Limit = 50
	}

	var items []entity.Announcement
	switch clm.Role {
	case "student":
		classID, batchIDs, err := s.repoDB.GetStudentClassAndBatches(ctx, clm.SubjectID)
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get student class", "subject_id", clm.SubjectID, "error", err)
			return nil, goerror.NewServer(err)
		}

		items, err = s.repoDB.ListAnnouncementsForStudent(ctx, classID, batchIDs, in.Limit, in.Offset)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo list announcements", "subject_id", clm.SubjectID, "error", err)
			return nil, goerror.NewServer(err)
		}

	case "teacher":
		items, err = s.repoDB.ListAnnouncementsForTeacher(ctx, clm.SubjectID, in.Limit, in.Offset)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo list announcements", "subject_id", clm.SubjectID, "error", err)
			return nil, goerror.NewServer(err)
		}

	default:
		return nil, goerror.NewBusiness("not available for your role", goerror.CodeForbidden)
	}

	return items, nil
}

type AnnouncementDeleteInput struct {
	ID int64 `validate:"required"`
}

// AnnouncementDelete removes one of the caller's own announcements.
func (s *Usecase) AnnouncementDelete(ctx context.Context, in AnnouncementDeleteInput) error {
	ctx, span := s.startSpan(ctx, "AnnouncementDelete")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err = s.repoDB.DeleteAnnouncement(ctx, in.ID, clm.SubjectID, clm.Role)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "announcement not found or not owned", "announcement_id", in.ID, "subject_id", clm.SubjectID)
		return goerror.NewBusiness("announcement not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete announcement", "announcement_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
