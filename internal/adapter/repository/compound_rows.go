package repository

import (
	"fmt"

	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/internal/infrastructure/database/migrate"
	"github.com/eslsoft/ordasafn/internal/infrastructure/database/types"
)

const (
	partLiteral       = "literal"
	partReference     = "reference"
	partAdjectiveForm = "adjective-form"
)

// compound writes the parts as a chain linked left to right through
// next_part_id. Parts are inserted rightmost first so every row knows its
// successor; compound_entry points at the head.
func (w *rowWriter) compound(parts []entity.Part) {
	var next any
	for i := len(parts) - 1; i >= 0; i-- {
		v := w.owned()
		switch p := parts[i].(type) {
		case *entity.LiteralPart:
			v.add("kind", partLiteral).
				add("ref_identity", nullableText(p.RefIdentity)).
				add("literal", p.Text).
				add("joining_type", p.Joining.Alias().Slug)
			addTransforms(v, nil, entity.Transforms{}, nil)
		case *entity.ReferencePart:
			v.add("kind", partReference).
				add("ref_identity", p.Identity).
				add("literal", nil).
				add("joining_type", nil)
			addTransforms(v, nil, p.Transforms, p.Beygingar)
		case *entity.AdjectiveFormPart:
			v.add("kind", partAdjectiveForm).
				add("ref_identity", p.Identity).
				add("literal", nil).
				add("joining_type", nil)
			addTransforms(v, p.Form.String(), p.Transforms, p.Beygingar)
		default:
			if w.err == nil {
				w.err = fmt.Errorf("compound part %d: unsupported type %T", i, p)
			}
			return
		}
		next = w.insert(migrate.CompoundPartTable, v.add("next_part_id", next))
	}
	w.insert(migrate.CompoundEntryTable, w.owned().add("first_part_id", next))
}

// addTransforms appends the columns from adjective_form through titlecase.
func addTransforms(v *values, form any, t entity.Transforms, beygingar []string) {
	v.add("adjective_form", form).
		add("beygingar", types.Tags(beygingar)).
		add("prefix", nullableText(t.Prefix)).
		add("suffix", nullableText(t.Suffix)).
		add("lowercase", t.Lowercase).
		add("titlecase", t.Titlecase)
}

// chainParts walks the stored chain from its head.
func chainParts(head record, parts []record) ([]entity.Part, error) {
	byID := make(map[int64]record, len(parts))
	for _, r := range parts {
		id, _ := r.id("id")
		byID[id] = r
	}
	out := make([]entity.Part, 0, len(parts))
	id, ok := head.id("first_part_id")
	for ok {
		r, found := byID[id]
		if !found {
			return nil, fmt.Errorf("compound part %d is missing", id)
		}
		if len(out) == len(parts) {
			return nil, fmt.Errorf("compound part chain loops at %d", id)
		}
		p, err := partFromRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
		id, ok = r.id("next_part_id")
	}
	if len(out) != len(parts) {
		return nil, fmt.Errorf("compound chain holds %d of %d parts", len(out), len(parts))
	}
	return out, nil
}

func partFromRecord(r record) (entity.Part, error) {
	t := entity.Transforms{
		Prefix:    r.text("prefix"),
		Suffix:    r.text("suffix"),
		Lowercase: r.flag("lowercase"),
		Titlecase: r.flag("titlecase"),
	}
	var tags types.Tags
	if err := tags.Scan(r["beygingar"]); err != nil {
		return nil, err
	}
	switch kind := r.text("kind"); kind {
	case partLiteral:
		j, err := entity.ParseJoinType(r.text("joining_type"))
		if err != nil {
			return nil, err
		}
		return &entity.LiteralPart{Text: r.text("literal"), Joining: j, RefIdentity: r.text("ref_identity")}, nil
	case partReference:
		return &entity.ReferencePart{Identity: r.text("ref_identity"), Beygingar: tags, Transforms: t}, nil
	case partAdjectiveForm:
		form, err := entity.ParseAdjectiveForm(r.text("adjective_form"))
		if err != nil {
			return nil, err
		}
		return &entity.AdjectiveFormPart{Identity: r.text("ref_identity"), Form: form, Beygingar: tags, Transforms: t}, nil
	default:
		return nil, fmt.Errorf("unknown compound part kind %q", kind)
	}
}
