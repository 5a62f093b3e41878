package compound

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/ordasafn/internal/entity"
)

// Lookup finds entries by identity. Implementations return an error wrapping
// entity.ErrEntryNotFound when there is none.
type Lookup interface {
	GetByIdentity(ctx context.Context, identity string) (*entity.Entry, error)
}

// Resolver derives the paradigm of compound entries from their parts.
type Resolver struct {
	lookup Lookup
	logger logrus.FieldLogger
}

// NewResolver constructs a Resolver reading referents through lookup.
func NewResolver(lookup Lookup, logger logrus.FieldLogger) *Resolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Resolver{lookup: lookup, logger: logger}
}

// Resolve derives the paradigm of e, walking its parts right to left. The
// entry and its referents are left untouched. A nil paradigm means the
// compound is indeclinable.
func (r *Resolver) Resolve(ctx context.Context, e *entity.Entry) (entity.Paradigm, error) {
	if !e.IsCompound() {
		return nil, fmt.Errorf("%s is not a compound", identityOf(e))
	}
	return r.resolve(ctx, e, nil)
}

// Materialize resolves e and stores the derived paradigm on it.
func (r *Resolver) Materialize(ctx context.Context, e *entity.Entry) error {
	p, err := r.Resolve(ctx, e)
	if err != nil {
		return err
	}
	e.Paradigm = p
	if err := entity.CheckDerived(e); err != nil {
		return fmt.Errorf("resolve %s: %w", identityOf(e), err)
	}
	return nil
}

func identityOf(e *entity.Entry) string {
	if e.Identity != "" {
		return e.Identity
	}
	return entity.DeriveIdentity(e)
}

func (r *Resolver) resolve(ctx context.Context, e *entity.Entry, path []string) (entity.Paradigm, error) {
	id := identityOf(e)
	path = append(slices.Clone(path), id)
	parts := e.Compound
	if len(parts) == 0 {
		return nil, &entity.FieldError{Kind: entity.ErrSchemaViolation, Path: "compound", Msg: "no parts"}
	}

	last := len(parts) - 1
	var acc entity.Paradigm
	if _, literal := parts[last].(*entity.LiteralPart); !literal {
		p, err := r.partParadigm(ctx, id, parts[last], path)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", last, err)
		}
		acc = p
	}

	for i := last - 1; i >= 0; i-- {
		switch part := parts[i].(type) {
		case *entity.LiteralPart:
			Prefix(acc, part.Text)
		default:
			left, err := r.partParadigm(ctx, id, part, path)
			if err != nil {
				return nil, fmt.Errorf("part %d: %w", i, err)
			}
			if err := Merge(left, acc); err != nil {
				return nil, fmt.Errorf("part %d: %w", i, err)
			}
		}
	}

	if acc != nil && acc.Prune() {
		acc = nil
	}
	r.logger.WithFields(logrus.Fields{"identity": id, "parts": len(parts)}).Trace("compound resolved")
	return acc, nil
}

// partParadigm returns a private copy of the paradigm a referencing part
// contributes, filtered and transformed.
func (r *Resolver) partParadigm(ctx context.Context, owner string, part entity.Part, path []string) (entity.Paradigm, error) {
	ref, err := r.referent(ctx, owner, part.Referent(), path)
	if err != nil {
		return nil, err
	}

	var (
		p         entity.Paradigm
		tags      []string
		category  = ref.Category
		transform entity.Transforms
	)
	switch part := part.(type) {
	case *entity.ReferencePart:
		if ref.Paradigm != nil {
			p = ref.Paradigm.Clone()
		}
		tags, transform = part.Beygingar, part.Transforms
	case *entity.AdjectiveFormPart:
		projected, err := ProjectAdjective(ref, part.Form)
		if err != nil {
			return nil, err
		}
		p, category = projected, entity.Noun
		tags, transform = part.Beygingar, part.Transforms
	default:
		return nil, fmt.Errorf("unsupported part %T", part)
	}

	if len(tags) > 0 {
		for _, tag := range tags {
			if !entity.ValidTag(category, tag) {
				return nil, &entity.FieldError{
					Kind: entity.ErrInappropriateBeyging,
					Path: "beygingar",
					Msg:  fmt.Sprintf("%q does not name a table of %s %s", tag, category, ref.Identity),
				}
			}
		}
		p = Filter(p, tags)
	}
	Apply(p, transform)
	return p, nil
}

// referent fetches the entry a part points at, deriving its paradigm first
// when it is a compound that has not been materialized.
func (r *Resolver) referent(ctx context.Context, owner, identity string, path []string) (*entity.Entry, error) {
	if slices.Contains(path, identity) {
		return nil, &entity.CycleError{Identities: append(slices.Clone(path), identity)}
	}
	ref, err := r.lookup.GetByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, entity.ErrEntryNotFound) {
			return nil, &entity.MissingReferenceError{Identity: owner, Referent: identity}
		}
		return nil, fmt.Errorf("look up %s: %w", identity, err)
	}
	if ref.IsCompound() && ref.Paradigm == nil && !ref.Indeclinable {
		p, err := r.resolve(ctx, ref, path)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", identity, err)
		}
		ref = ref.Clone()
		ref.Paradigm = p
	}
	return ref, nil
}
