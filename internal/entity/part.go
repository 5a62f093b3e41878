package entity

import (
	"fmt"
	"strings"

	"github.com/eslsoft/ordasafn/pkg/canonjson"
)

// Part is one element of a compound definition: *LiteralPart,
// *ReferencePart or *AdjectiveFormPart.
type Part interface {
	// Referent is the identity of the entry the part points at, or "".
	Referent() string
	node() canonjson.Node
}

// Transforms are applied to a referenced part after filtering: lowercase or
// titlecase first, then prefix and suffix.
type Transforms struct {
	Prefix    string
	Suffix    string
	Lowercase bool
	Titlecase bool
}

func (t Transforms) encode(o *canonjson.Object) {
	if t.Prefix != "" {
		o.Set("prefix", canonjson.String(t.Prefix))
	}
	if t.Suffix != "" {
		o.Set("suffix", canonjson.String(t.Suffix))
	}
	if t.Lowercase {
		o.Set("lowercase", canonjson.Bool(true))
	}
	if t.Titlecase {
		o.Set("titlecase", canonjson.Bool(true))
	}
}

// LiteralPart is fixed text prepended to every form on its right.
type LiteralPart struct {
	Text        string
	Joining     JoinType
	RefIdentity string
}

func (p *LiteralPart) Referent() string { return "" }

func (p *LiteralPart) node() canonjson.Node {
	o := canonjson.NewObject().
		Set("literal", canonjson.String(p.Text)).
		Set("joining", canonjson.String(p.Joining.String()))
	if p.RefIdentity != "" {
		o.Set("ref-identity", canonjson.String(p.RefIdentity))
	}
	return o
}

// ReferencePart borrows the paradigm of another entry.
type ReferencePart struct {
	Identity  string
	Beygingar []string
	Transforms
}

func (p *ReferencePart) Referent() string { return p.Identity }

func (p *ReferencePart) node() canonjson.Node {
	o := canonjson.NewObject().Set("reference", canonjson.String(p.Identity))
	if len(p.Beygingar) > 0 {
		o.Set("beygingar", canonjson.Strings(p.Beygingar, true))
	}
	p.Transforms.encode(o)
	return o
}

// AdjectiveFormPart borrows one declension of an adjective and uses it as a
// noun paradigm.
type AdjectiveFormPart struct {
	Identity  string
	Form      AdjectiveForm
	Beygingar []string
	Transforms
}

func (p *AdjectiveFormPart) Referent() string { return p.Identity }

func (p *AdjectiveFormPart) node() canonjson.Node {
	o := canonjson.NewObject().
		Set("adjective-form", canonjson.String(p.Form.String())).
		Set("ref-identity", canonjson.String(p.Identity))
	if len(p.Beygingar) > 0 {
		o.Set("beygingar", canonjson.Strings(p.Beygingar, true))
	}
	p.Transforms.encode(o)
	return o
}

// AdjectiveForm selects degree, declension and gender of an adjective.
type AdjectiveForm struct {
	Degree     string
	Declension string
	Gender     Gender
}

// ParseAdjectiveForm reads "<degree>.<declension>.<gender>", for example
// "positive.weak.feminine". The comparative has only a weak declension.
func ParseAdjectiveForm(s string) (AdjectiveForm, error) {
	segments := strings.Split(s, ".")
	if len(segments) != 3 {
		return AdjectiveForm{}, fmt.Errorf("adjective form %q must be <degree>.<declension>.<gender>", s)
	}
	degree, declension := segments[0], segments[1]
	switch degree {
	case "positive", "superlative":
		if declension != "strong" && declension != "weak" {
			return AdjectiveForm{}, fmt.Errorf("adjective form %q: unknown declension %q", s, declension)
		}
	case "comparative":
		if declension != "weak" {
			return AdjectiveForm{}, fmt.Errorf("adjective form %q: comparative is weak only", s)
		}
	default:
		return AdjectiveForm{}, fmt.Errorf("adjective form %q: unknown degree %q", s, degree)
	}
	g, err := ParseGender(segments[2])
	if err != nil {
		return AdjectiveForm{}, fmt.Errorf("adjective form %q: %w", s, err)
	}
	return AdjectiveForm{Degree: degree, Declension: declension, Gender: g}, nil
}

func (f AdjectiveForm) String() string {
	return f.Degree + "." + f.Declension + "." + f.Gender.Alias().Slug
}

var partKeys = []string{
	"literal", "joining", "ref-identity",
	"reference", "adjective-form", "beygingar",
	"prefix", "suffix", "lowercase", "titlecase",
}

func (p *problems) part(n canonjson.Node, path string) Part {
	o := p.object(n, path, partKeys...)
	if o == nil {
		return nil
	}
	var bodies []string
	for _, key := range []string{"literal", "reference", "adjective-form"} {
		if member(o, key) != nil {
			bodies = append(bodies, key)
		}
	}
	if len(bodies) != 1 {
		p.schema(path, "exactly one of literal, reference, adjective-form is required, got %d", len(bodies))
		return nil
	}
	forbid := func(keys ...string) {
		for _, key := range keys {
			if member(o, key) != nil {
				p.schema(sub(path, key), "not allowed on a %s part", bodies[0])
			}
		}
	}

	switch bodies[0] {
	case "literal":
		forbid("beygingar", "prefix", "suffix", "lowercase", "titlecase")
		lp := &LiteralPart{Text: p.requiredString(o, "literal", path)}
		if s := p.str(member(o, "joining"), sub(path, "joining")); s != nil {
			j, err := ParseJoinType(*s)
			if err != nil {
				p.schema(sub(path, "joining"), "%v", err)
			}
			lp.Joining = j
		} else {
			p.schema(sub(path, "joining"), "required")
		}
		if s := p.str(member(o, "ref-identity"), sub(path, "ref-identity")); s != nil {
			lp.RefIdentity = *s
		}
		return lp
	case "reference":
		forbid("joining", "ref-identity")
		rp := &ReferencePart{
			Identity:   p.requiredString(o, "reference", path),
			Beygingar:  p.beygingar(member(o, "beygingar"), sub(path, "beygingar")),
			Transforms: p.transforms(o, path),
		}
		return rp
	default:
		forbid("joining")
		ap := &AdjectiveFormPart{
			Identity:   p.requiredString(o, "ref-identity", path),
			Beygingar:  p.beygingar(member(o, "beygingar"), sub(path, "beygingar")),
			Transforms: p.transforms(o, path),
		}
		if s := p.str(member(o, "adjective-form"), sub(path, "adjective-form")); s != nil {
			f, err := ParseAdjectiveForm(*s)
			if err != nil {
				p.schema(sub(path, "adjective-form"), "%v", err)
			}
			ap.Form = f
		}
		return ap
	}
}

func (p *problems) transforms(o *canonjson.Object, path string) Transforms {
	t := Transforms{
		Lowercase: p.flag(o, "lowercase", path),
		Titlecase: p.flag(o, "titlecase", path),
	}
	if s := p.str(member(o, "prefix"), sub(path, "prefix")); s != nil {
		t.Prefix = *s
	}
	if s := p.str(member(o, "suffix"), sub(path, "suffix")); s != nil {
		t.Suffix = *s
	}
	if t.Lowercase && t.Titlecase {
		p.schema(path, "lowercase and titlecase are mutually exclusive")
	}
	return t
}

func (p *problems) beygingar(n canonjson.Node, path string) []string {
	if n == nil {
		return nil
	}
	a, ok := n.(*canonjson.Array)
	if !ok {
		p.schema(path, "expected array of tags, got %s", canonjson.TypeName(n))
		return nil
	}
	if len(a.Items) == 0 {
		p.schema(path, "must not be empty")
		return nil
	}
	out := make([]string, 0, len(a.Items))
	for i, item := range a.Items {
		if s := p.str(item, fmt.Sprintf("%s[%d]", path, i)); s != nil {
			out = append(out, *s)
		}
	}
	return out
}
