package usecase

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
	"github.com/upasthit/upasthit-api/internal/pkg/idempotency"
	"github.com/upasthit/upasthit-api/internal/pkg/storage"
)

// maxRosterSize caps the uploaded CSV at 5 MiB.
const maxRosterSize = 5 << 20

type RosterImportInput struct {
	FileName string
	File     io.Reader
}

type RosterImportOutput struct {
	Created int
	Updated int
	Skipped []RosterRowError
}

type RosterRowError struct {
	Line   int
	RollNo string
	Reason string
}

// RosterImport bulk-loads students from an uploaded CSV. The same file (by
// checksum) is imported once; retries and double-clicks short-circuit on the
// idempotency state. The raw file is archived to object storage off the
// request path.
func (s *Usecase) RosterImport(ctx context.Context, in RosterImportInput) (*RosterImportOutput, error) {
	ctx, span := s.startSpan(ctx, "RosterImport")
	defer span.End()

	if _, err := s.authenticatedRole(ctx, "teacher"); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(io.LimitReader(in.File, maxRosterSize+1))
	if err != nil {
		slog.ErrorContext(ctx, "failed to read roster upload", "error", err)
		return nil, goerror.NewServer(err)
	}
	if len(raw) > maxRosterSize {
		return nil, goerror.NewBusiness("roster file is too large", goerror.CodeInvalidInput)
	}
	if len(raw) == 0 {
		return nil, goerror.NewBusiness("roster file is empty", goerror.CodeInvalidInput)
	}

	sum := sha256.Sum256(raw)
	checksum := hex.EncodeToString(sum[:])

	rows, skipped, err := s.parseRoster(raw)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, goerror.NewBusiness("roster file has no valid rows", goerror.CodeInvalidInput)
	}

	var created, updated int
	err = s.idemp.Exec(ctx, "roster_import:"+checksum, func(ctx context.Context) error {
		ids := make(map[string]int64, len(rows))
		hashes := make(map[string]string, len(rows))
		for _, row := range rows {
			ids[row.RollNo] = s.uid.Generate()

			// first login uses the roll number as the password
			digest, hashErr := s.bcrypt.Hash(row.RollNo)
			if hashErr != nil {
				return hashErr
			}
			hashes[row.RollNo] = string(digest)
		}

		var execErr error
		created, updated, execErr = s.repoDB.UpsertStudents(ctx, rows, ids, hashes)
		return execErr
	}, idempotency.WithStateTTL(24*time.Hour))

	switch {
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		return nil, goerror.NewBusiness("this roster file is already being imported", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		return nil, goerror.NewBusiness("this roster file was already imported", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyFailed):
		return nil, goerror.NewBusiness("a previous import of this file failed, rename the file to retry", goerror.CodeConflict)
	case err != nil:
		slog.ErrorContext(ctx, "failed to import roster", "checksum", checksum, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.archiveRoster(ctx, in.FileName, checksum, raw)

	return &RosterImportOutput{Created: created, Updated: updated, Skipped: skipped}, nil
}

func (s *Usecase) parseRoster(raw []byte) ([]entity.RosterRow, []RosterRowError, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, goerror.NewBusiness("roster file is not valid CSV", goerror.CodeInvalidFormat)
	}
	if len(records) < 2 {
		return nil, nil, goerror.NewBusiness("roster file has no data rows", goerror.CodeInvalidInput)
	}

	header := lo.Map(records[0], func(col string, _ int) string {
		return strings.ToLower(strings.TrimSpace(col))
	})
	idx := map[string]int{}
	for i, col := range header {
		idx[col] = i
	}
	for _, required := range []string{"roll_no", "name", "email", "class"} {
		if _, ok := idx[required]; !ok {
			return nil, nil, goerror.NewBusiness(
				fmt.Sprintf("roster file is missing the %q column", required), goerror.CodeInvalidInput)
		}
	}

	rows := make([]entity.RosterRow, 0, len(records)-1)
	skipped := make([]RosterRowError, 0)
	seen := map[string]struct{}{}

	for i, record := range records[1:] {
		line := i + 2
		if len(record) < len(header) {
			skipped = append(skipped, RosterRowError{Line: line, Reason: "wrong column count"})
			continue
		}

		row := entity.RosterRow{
			RollNo:    strings.ToUpper(strings.TrimSpace(record[idx["roll_no"]])),
			Name:      strings.TrimSpace(record[idx["name"]]),
			Email:     strings.ToLower(strings.TrimSpace(record[idx["email"]])),
			ClassName: strings.TrimSpace(record[idx["class"]]),
		}

		if err := s.validator.Validate(row); err != nil {
			skipped = append(skipped, RosterRowError{Line: line, RollNo: row.RollNo, Reason: err.Error()})
			continue
		}

		if _, dup := seen[row.RollNo]; dup {
			skipped = append(skipped, RosterRowError{Line: line, RollNo: row.RollNo, Reason: "duplicate roll number in file"})
			continue
		}
		seen[row.RollNo] = struct{}{}

		rows = append(rows, row)
	}

	return rows, skipped, nil
}

// archiveRoster keeps the raw upload in object storage for audit. It runs in
// the background; the import result does not depend on it.
func (s *Usecase) archiveRoster(ctx context.Context, fileName, checksum string, raw []byte) {
	bucket := s.cfg.GetString("storage.bucket")
	day := s.clock.Now().Format("2006-01-02")
	key := fmt.Sprintf("rosters/%s/%s_%s", day, checksum[:12], fileName)

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		_, err := s.storage.PutObject(ctx, bucket, key, bytes.NewReader(raw), storage.PutOptions{
			Size:        int64(len(raw)),
			ContentType: "text/csv",
			Metadata:    map[string]string{"checksum": checksum},
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to archive roster file", "bucket", bucket, "key", key, "error", err)
		}

		return nil
	})
}
