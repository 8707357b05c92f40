package comments

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gridsight/gridsight/pkg/query"
	"github.com/gridsight/gridsight/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "inspection_comments", "c").
	Project("id", "ID").
	Project("inspection_number", "InspectionNumber").
	Project("topic", "Topic").
	Project("author", "Author").
	Project("comment", "Comment").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanComment(s repository.Scanner) (Comment, error) {
	var c Comment
	err := s.Scan(
		&c.ID,
		&c.InspectionNumber,
		&c.Topic,
		&c.Author,
		&c.Comment,
		&c.CreatedAt,
	)
	return c, err
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a comment repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "comments"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListByInspection(ctx context.Context, inspectionNumber string) ([]Comment, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("InspectionNumber", inspectionNumber).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanComment)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	return items, nil
}

func (r *repo) Create(ctx context.Context, inspectionNumber string, cmd CreateCommand) (*Comment, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO inspection_comments(id, inspection_number, topic, author, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, inspection_number, topic, author, comment, created_at`

	insertArgs := []any{
		uuid.New(),
		inspectionNumber,
		cmd.Topic,
		cmd.Author,
		cmd.Comment,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Comment, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanComment)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrInspectionNotFound, ErrNotFound)
	}

	r.logger.Info("comment created", "id", c.ID, "inspection", inspectionNumber)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Comment, error) {
	q := `
		UPDATE inspection_comments
		SET topic = $1, comment = $2
		WHERE id = $3
		RETURNING id, inspection_number, topic, author, comment, created_at`

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Comment, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Topic, cmd.Comment, id}, scanComment)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("comment updated", "id", id)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM inspection_comments WHERE id = $1",
			id,
		)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("comment deleted", "id", id)
	return nil
}
