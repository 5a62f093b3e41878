package compound

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eslsoft/ordasafn/internal/entity"
)

// Filter returns a copy of p keeping only forms below one of tags. Tables
// left empty are removed; nil is returned when nothing remains.
func Filter(p entity.Paradigm, tags []string) entity.Paradigm {
	if p == nil {
		return nil
	}
	out := p.Clone()
	out.Walk(func(l entity.Leaf) {
		for _, tag := range tags {
			if entity.TagCovers(tag, l.Table) {
				return
			}
		}
		*l.Slot = nil
	})
	if out.Prune() {
		return nil
	}
	return out
}

// Apply runs the case transform, then prefix and suffix, on every form of p.
func Apply(p entity.Paradigm, t entity.Transforms) {
	if p == nil || t == (entity.Transforms{}) {
		return
	}
	lower := cases.Lower(language.Icelandic)
	p.Walk(func(l entity.Leaf) {
		if *l.Slot == nil {
			return
		}
		s := **l.Slot
		switch {
		case t.Lowercase:
			s = lower.String(s)
		case t.Titlecase:
			s = titlecase(s)
		}
		s = t.Prefix + s + t.Suffix
		*l.Slot = &s
	})
}

// titlecase upper-cases the first letter and leaves the rest as is.
func titlecase(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Icelandic).String(s[:size]) + s[size:]
}

// Prefix prepends text to every form of p.
func Prefix(p entity.Paradigm, text string) {
	if p == nil || text == "" {
		return
	}
	p.Walk(func(l entity.Leaf) {
		if *l.Slot == nil {
			return
		}
		s := text + **l.Slot
		*l.Slot = &s
	})
}

// Merge prefixes every form of acc with the form of left at the same path.
// A form of acc without a counterpart in left is an error.
func Merge(left, acc entity.Paradigm) error {
	if acc == nil {
		return nil
	}
	forms := entity.Forms(left)
	var missing []string
	acc.Walk(func(l entity.Leaf) {
		if *l.Slot == nil {
			return
		}
		f, ok := forms[l.Path]
		if !ok {
			missing = append(missing, l.Path)
			return
		}
		s := f + **l.Slot
		*l.Slot = &s
	})
	if len(missing) > 0 {
		return &entity.FieldError{
			Kind: entity.ErrSchemaViolation,
			Path: missing[0],
			Msg:  fmt.Sprintf("left part lacks %d form(s) present on the right", len(missing)),
		}
	}
	return nil
}

// ProjectAdjective turns one declension of an adjective into a noun
// paradigm: its singular and plural tuples serve as both bare and definite.
func ProjectAdjective(ref *entity.Entry, f entity.AdjectiveForm) (*entity.NounParadigm, error) {
	adj, ok := ref.Paradigm.(*entity.AdjectiveParadigm)
	if !ok {
		return nil, &entity.FieldError{
			Kind: entity.ErrSchemaViolation,
			Path: "adjective-form",
			Msg:  fmt.Sprintf("%s is not an inflected adjective", ref.Identity),
		}
	}
	var numbers *entity.NumberGenderCases
	if block := adj.Stage(f.Degree); block != nil {
		if f.Declension == "strong" {
			numbers = block.Strong
		} else {
			numbers = block.Weak
		}
	}
	if numbers == nil {
		return nil, &entity.FieldError{
			Kind: entity.ErrSchemaViolation,
			Path: "adjective-form",
			Msg:  fmt.Sprintf("%s has no %s.%s forms", ref.Identity, f.Degree, f.Declension),
		}
	}

	out := &entity.NounParadigm{}
	if sg := numbers.Singular.Of(f.Gender); sg != nil {
		out.Singular = &entity.NounNumber{Bare: sg, Definite: sg}
	}
	if pl := numbers.Plural.Of(f.Gender); pl != nil {
		out.Plural = &entity.NounNumber{Bare: pl, Definite: pl}
	}
	if out.Singular == nil && out.Plural == nil {
		return nil, &entity.FieldError{
			Kind: entity.ErrSchemaViolation,
			Path: "adjective-form",
			Msg:  fmt.Sprintf("%s has no %s forms", ref.Identity, f),
		}
	}
	// Clone detaches the tuples from the adjective and from each other.
	return out.Clone().(*entity.NounParadigm), nil
}
