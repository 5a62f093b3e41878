package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/internal/infrastructure/database/migrate"
	"github.com/eslsoft/ordasafn/internal/infrastructure/database/types"
	"github.com/eslsoft/ordasafn/internal/repository"
)

type entryRepository struct {
	drv    dialect.Driver
	logger logrus.FieldLogger
	now    func() time.Time
}

// EntryRepositoryOption customizes the entry repository.
type EntryRepositoryOption func(*entryRepository)

// WithClock overrides the source of created and edited stamps.
func WithClock(now func() time.Time) EntryRepositoryOption {
	return func(r *entryRepository) {
		if now != nil {
			r.now = now
		}
	}
}

func NewEntryRepository(drv dialect.Driver, logger logrus.FieldLogger, opts ...EntryRepositoryOption) repository.EntryRepository {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	r := &entryRepository{drv: drv, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *entryRepository) builder() *sql.DialectBuilder {
	return sql.Dialect(r.drv.Dialect())
}

func (r *entryRepository) Write(ctx context.Context, e *entity.Entry) (*repository.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.New("entry is nil")
	}
	if e.Identity == "" || e.Hash == "" {
		return nil, fmt.Errorf("entry %q is not sealed", e.Lemma)
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			_ = tx.Rollback()
		}
	}()

	existing, err := r.load(ctx, tx, sql.EQ("identity", e.Identity))
	if err != nil && !errors.Is(err, entity.ErrEntryNotFound) {
		return nil, err
	}

	b := r.builder()
	now := types.NewTimestamp(r.now())
	result := &repository.WriteResult{}
	created := now.Time

	if existing == nil {
		id, err := insertID(ctx, tx, entryValues(e, now).add("created", now).insert(b, migrate.EntryTable))
		if err != nil {
			return nil, translateEntryError(err)
		}
		result.ID, result.Status = id, repository.StatusCreated
	} else {
		result.ID = existing.ID
		result.Changes = entity.Changes(existing, e)
		if len(result.Changes) == 0 {
			e.ID, e.CreatedAt, e.EditedAt = existing.ID, existing.CreatedAt, existing.EditedAt
			result.Status = repository.StatusUnchanged
			return result, nil
		}
		if err := r.clear(ctx, tx, existing.ID, entryValues(e, now)); err != nil {
			return nil, translateEntryError(err)
		}
		result.Status = repository.StatusUpdated
		created = existing.CreatedAt
	}

	w := &rowWriter{ctx: ctx, q: tx, b: b, entryID: result.ID}
	w.paradigm(e)
	w.multiword(e.Multiword)
	if e.IsCompound() {
		w.compound(e.Compound)
	}
	if w.err != nil {
		return nil, translateEntryError(w.err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit entry %s: %w", e.Identity, err)
	}
	commit = true

	e.ID, e.CreatedAt, e.EditedAt = result.ID, created, now.Time
	r.logger.WithFields(logrus.Fields{
		"identity": e.Identity,
		"status":   result.Status.String(),
	}).Debug("entry written")
	return result, nil
}

// clear updates the entry row and drops every row it owns.
func (r *entryRepository) clear(ctx context.Context, tx dialect.ExecQuerier, id int64, v *values) error {
	b := r.builder()
	update := b.Update(migrate.EntryTable)
	for i, col := range v.cols {
		update.Set(col, v.vals[i])
	}
	if err := execQuery(ctx, tx, update.Where(sql.EQ("id", id))); err != nil {
		return rowError(migrate.EntryTable, err)
	}
	for _, t := range migrate.OwnedTables {
		if err := execQuery(ctx, tx, b.Delete(t.Name).Where(sql.EQ("entry_id", id))); err != nil {
			return rowError(t.Name, err)
		}
	}
	return nil
}

func (r *entryRepository) GetByID(ctx context.Context, id int64) (*entity.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.load(ctx, r.drv, sql.EQ("id", id))
}

func (r *entryRepository) GetByIdentity(ctx context.Context, identity string) (*entity.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.load(ctx, r.drv, sql.EQ("identity", identity))
}

func (r *entryRepository) ListIDs(ctx context.Context, query *repository.ListEntryQuery) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	preds, err := entryPredicates(query)
	if err != nil {
		return nil, err
	}
	b := r.builder()
	sel := b.Select("id").From(b.Table(migrate.EntryTable)).OrderBy("id")
	if len(preds) > 0 {
		sel.Where(sql.And(preds...))
	}
	records, err := queryRecords(ctx, r.drv, sel, migrate.EntryColumns[:1])
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return lo.Map(records, func(rec record, _ int) int64 {
		id, _ := rec.id("id")
		return id
	}), nil
}

// load reads one entry with every row it owns.
func (r *entryRepository) load(ctx context.Context, q dialect.ExecQuerier, where *sql.Predicate) (*entity.Entry, error) {
	b := r.builder()
	sel := b.Select(columnNames(migrate.EntryColumns)...).
		From(b.Table(migrate.EntryTable)).
		Where(where)
	records, err := queryRecords(ctx, q, sel, migrate.EntryColumns)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if len(records) == 0 {
		return nil, entity.ErrEntryNotFound
	}
	e, err := entryFromRecord(records[0])
	if err != nil {
		return nil, err
	}

	rows, err := loadRowSet(ctx, q, b, e.ID)
	if err != nil {
		return nil, err
	}
	if t, ok := categoryTable[e.Category]; ok {
		siblings, err := ownedRecords(ctx, q, b, t, e.ID)
		if err != nil {
			return nil, err
		}
		if len(siblings) > 0 {
			e.Paradigm = rows.paradigm(e.Category, siblings[0])
			if e.Category == entity.Particle {
				e.Governs = governed(siblings[0])
			}
		}
	}

	if e.Category == entity.Particle {
		words, err := ownedRecords(ctx, q, b, migrate.ParticleMultiwordTableDesc, e.ID)
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			hook, err := entity.ParseHook(w.text("hook"))
			if err != nil {
				return nil, fmt.Errorf("entry %s multiword: %w", e.Identity, err)
			}
			e.Multiword = append(e.Multiword, entity.Continuation{Text: w.text("text"), Hook: hook})
		}
	}

	if e.IsCompound() {
		heads, err := ownedRecords(ctx, q, b, migrate.CompoundEntryTableDesc, e.ID)
		if err != nil {
			return nil, err
		}
		if len(heads) == 0 {
			return nil, fmt.Errorf("entry %s: compound definition is missing", e.Identity)
		}
		parts, err := ownedRecords(ctx, q, b, migrate.CompoundPartTableDesc, e.ID)
		if err != nil {
			return nil, err
		}
		if e.Compound, err = chainParts(heads[0], parts); err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.Identity, err)
		}
	}
	return e, nil
}

// entryValues are the entry columns every write sets.
func entryValues(e *entity.Entry, edited types.Timestamp) *values {
	v := &values{}
	v.add("identity", e.Identity).
		add("lemma", e.Lemma).
		add("category", e.Category.Alias().Slug).
		add("subcategory", nil).
		add("gender", nil).
		add("person", nil).
		add("meaning", nullableText(e.Meaning)).
		add("numeric_value", types.Decimal{Decimal: e.NumericValue}).
		add("is_compound", e.IsCompound()).
		add("dependent", e.Dependent).
		add("indeclinable", e.Indeclinable).
		add("content_hash", e.Hash).
		add("edited", edited)
	if e.Subcategory.Specified() {
		v.vals[3] = e.Subcategory.Alias().Slug
	}
	if e.Gender.Specified() {
		v.vals[4] = e.Gender.Alias().Slug
	}
	if e.Person.Specified() {
		v.vals[5] = e.Person.Alias().Slug
	}
	return v
}

func entryFromRecord(r record) (*entity.Entry, error) {
	id, _ := r.id("id")
	e := &entity.Entry{
		ID:           id,
		Identity:     r.text("identity"),
		Lemma:        r.text("lemma"),
		Meaning:      r.text("meaning"),
		Dependent:    r.flag("dependent"),
		Indeclinable: r.flag("indeclinable"),
		Hash:         r.text("content_hash"),
	}
	if r.flag("is_compound") {
		e.Compound = []entity.Part{}
	}

	var err error
	if e.Category, err = entity.ParseCategory(r.text("category")); err != nil {
		return nil, fmt.Errorf("entry %d: %w", id, err)
	}
	if s := r.str("subcategory"); s != nil {
		if e.Subcategory, err = entity.ParseSubcategory(*s); err != nil {
			return nil, fmt.Errorf("entry %d: %w", id, err)
		}
	}
	if s := r.str("gender"); s != nil {
		if e.Gender, err = entity.ParseGender(*s); err != nil {
			return nil, fmt.Errorf("entry %d: %w", id, err)
		}
	}
	if s := r.str("person"); s != nil {
		if e.Person, err = entity.ParsePerson(*s); err != nil {
			return nil, fmt.Errorf("entry %d: %w", id, err)
		}
	}

	var value types.Decimal
	if err := value.Scan(r["numeric_value"]); err != nil {
		return nil, fmt.Errorf("entry %d: %w", id, err)
	}
	e.NumericValue = value.Decimal

	var created, edited types.Timestamp
	if err := created.Scan(r["created"]); err != nil {
		return nil, fmt.Errorf("entry %d created: %w", id, err)
	}
	if err := edited.Scan(r["edited"]); err != nil {
		return nil, fmt.Errorf("entry %d edited: %w", id, err)
	}
	e.CreatedAt, e.EditedAt = created.Time, edited.Time
	return e, nil
}

func translateEntryError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %v", entity.ErrDuplicateIdentity, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %v", entity.ErrDuplicateIdentity, err)
	}
	return err
}
