package augmentations

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/sarifworks/augments/pkg/hypermedia"
	"github.com/sarifworks/augments/pkg/pagination"
	"github.com/sarifworks/augments/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	presenter  *Presenter
	maxUpload  int64
}

// New creates a catalog repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	resolver *hypermedia.Resolver,
	maxUpload int64,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "augmentations"),
		pagination: pagination,
		presenter:  NewPresenter(resolver),
		maxUpload:  maxUpload,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination, r.presenter, r.maxUpload)
}

// List loads the full catalog in id order and runs the query pipeline over
// it in memory. Filtering, searching, and paging happen after the rows are
// fetched, so the pipeline stays a pure function over the same snapshot.
func (r *repo) List(ctx context.Context, q Query) ([]Augmentation, error) {
	listQ := fmt.Sprintf("SELECT %s FROM augmentations ORDER BY id", augmentationColumns)

	items, err := repository.QueryMany(ctx, r.db, listQ, nil, scanAugmentation)
	if err != nil {
		return nil, fmt.Errorf("query augmentations: %w", err)
	}

	return Listing(items, q), nil
}

func (r *repo) Find(ctx context.Context, id int) (*Augmentation, error) {
	findQ := fmt.Sprintf("SELECT %s FROM augmentations WHERE id = $1", augmentationColumns)

	aug, err := repository.QueryOne(ctx, r.db, findQ, []any{id}, scanAugmentation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &aug, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Augmentation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aug, err := insertAugmentation(ctx, r.db, cmd)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("augmentation created", "id", aug.ID, "name", aug.Name)
	return &aug, nil
}

func (r *repo) Update(ctx context.Context, id int, cmd CreateCommand) (*Augmentation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updateQ := fmt.Sprintf(`
		UPDATE augmentations
		SET type = $1, area = $2, name = $3, description = $4,
			activation = $5, energy_consumption = $6
		WHERE id = $7
		RETURNING %s`, augmentationColumns)

	args := []any{cmd.Type, cmd.Area, cmd.Name, cmd.Description,
		cmd.Activation, cmd.EnergyConsumption, id}

	aug, err := repository.QueryOne(ctx, r.db, updateQ, args, scanAugmentation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("augmentation updated", "id", aug.ID)
	return &aug, nil
}

// Patch applies operations against the record as it exists inside the same
// transaction that writes the result, so concurrent patches cannot
// interleave on a stale read.
func (r *repo) Patch(ctx context.Context, id int, ops []PatchOp) (*Augmentation, error) {
	findQ := fmt.Sprintf("SELECT %s FROM augmentations WHERE id = $1 FOR UPDATE", augmentationColumns)
	updateQ := fmt.Sprintf(`
		UPDATE augmentations
		SET type = $1, area = $2, name = $3, description = $4,
			activation = $5, energy_consumption = $6
		WHERE id = $7
		RETURNING %s`, augmentationColumns)

	aug, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Augmentation, error) {
		current, err := repository.QueryOne(ctx, tx, findQ, []any{id}, scanAugmentation)
		if err != nil {
			return Augmentation{}, err
		}

		cmd, err := ApplyPatch(current, ops)
		if err != nil {
			return Augmentation{}, err
		}

		args := []any{cmd.Type, cmd.Area, cmd.Name, cmd.Description,
			cmd.Activation, cmd.EnergyConsumption, id}

		return repository.QueryOne(ctx, tx, updateQ, args, scanAugmentation)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("augmentation patched", "id", aug.ID)
	return &aug, nil
}

func (r *repo) Delete(ctx context.Context, id int) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM augmentations WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("augmentation deleted", "id", id)
	return nil
}

// Import persists a decoded CSV batch atomically. Every row inserts inside
// one transaction; any failure rolls the whole batch back so a partial
// import can never be observed.
func (r *repo) Import(ctx context.Context, cmds []CreateCommand) ([]Augmentation, error) {
	augs, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]Augmentation, error) {
		inserted := make([]Augmentation, 0, len(cmds))
		for i, cmd := range cmds {
			aug, err := insertAugmentation(ctx, tx, cmd)
			if err != nil {
				return nil, &RowError{Row: i + 1, Err: repository.MapError(err, ErrNotFound, ErrDuplicate)}
			}
			inserted = append(inserted, aug)
		}
		return inserted, nil
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("augmentations imported", "count", len(augs))
	return augs, nil
}

// Export runs the query pipeline and renders the resulting records as a PDF
// document. An empty result has nothing to export and reports ErrEmptyExport.
func (r *repo) Export(ctx context.Context, q Query) ([]byte, error) {
	exportQ := fmt.Sprintf("SELECT %s FROM augmentations ORDER BY id", augmentationColumns)

	all, err := repository.QueryMany(ctx, r.db, exportQ, nil, scanAugmentation)
	if err != nil {
		return nil, fmt.Errorf("query augmentations: %w", err)
	}
	items := Listing(all, q)

	var buf bytes.Buffer
	if err := WritePDF(&buf, items); err != nil {
		return nil, err
	}

	pages, err := api.PageCount(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		r.logger.Warn("failed to verify exported PDF", "error", err)
	} else {
		r.logger.Info("catalog exported", "records", len(items), "pages", pages)
	}

	return buf.Bytes(), nil
}

func insertAugmentation(ctx context.Context, q repository.Querier, cmd CreateCommand) (Augmentation, error) {
	insertQ := fmt.Sprintf(`
		INSERT INTO augmentations(type, area, name, description, activation, energy_consumption)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, augmentationColumns)

	args := []any{cmd.Type, cmd.Area, cmd.Name, cmd.Description,
		cmd.Activation, cmd.EnergyConsumption}

	return repository.QueryOne(ctx, q, insertQ, args, scanAugmentation)
}
