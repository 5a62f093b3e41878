package entity

import (
	"fmt"

	"github.com/eslsoft/ordasafn/pkg/canonjson"
	"go.uber.org/multierr"
)

func objOrNil(o *canonjson.Object) canonjson.Node {
	if o.Len() == 0 {
		return nil
	}
	return o
}

func stringNode(s *string) canonjson.Node {
	if s == nil {
		return nil
	}
	return canonjson.String(*s)
}

func (c *CaseForms) node() canonjson.Node {
	if c == nil {
		return nil
	}
	return canonjson.OptStrings(c[0], c[1], c[2], c[3])
}

func (g *GenderCases) node() canonjson.Node {
	if g == nil {
		return nil
	}
	o := canonjson.NewObject()
	for i, s := range g.slots() {
		o.SetOpt(Genders()[i].Alias().Slug, (*s).node())
	}
	return objOrNil(o)
}

func (n *NumberGenderCases) node() canonjson.Node {
	if n == nil {
		return nil
	}
	o := canonjson.NewObject().
		SetOpt("singular", n.Singular.node()).
		SetOpt("plural", n.Plural.node())
	return objOrNil(o)
}

func (b *StageBlock) node() canonjson.Node {
	if b == nil {
		return nil
	}
	o := canonjson.NewObject().
		SetOpt("strong", b.Strong.node()).
		SetOpt("weak", b.Weak.node())
	return objOrNil(o)
}

func (n *NounNumber) node() canonjson.Node {
	if n == nil {
		return nil
	}
	o := canonjson.NewObject().
		SetOpt("bare", n.Bare.node()).
		SetOpt("definite", n.Definite.node())
	return objOrNil(o)
}

func (n *PronounNumber) node() canonjson.Node {
	if n == nil {
		return nil
	}
	if n.Flat != nil {
		return n.Flat.node()
	}
	return n.Gendered.node()
}

func (s *PersonSet) node() canonjson.Node {
	if s == nil {
		return nil
	}
	return canonjson.OptStrings(s[0], s[1], s[2])
}

func (t *TenseForms) node() canonjson.Node {
	if t == nil {
		return nil
	}
	o := canonjson.NewObject().
		SetOpt("singular", t.Singular.node()).
		SetOpt("plural", t.Plural.node())
	return objOrNil(o)
}

func (v *VerbForms) node() canonjson.Node {
	if v == nil {
		return nil
	}
	o := canonjson.NewObject().
		SetOpt("present", v.Present.node()).
		SetOpt("past", v.Past.node())
	return objOrNil(o)
}

func (i *Imperative) node() canonjson.Node {
	if i == nil {
		return nil
	}
	o := canonjson.NewObject().
		SetOpt("singular", stringNode(i.Singular)).
		SetOpt("plural", stringNode(i.Plural)).
		SetOpt("clipped", stringNode(i.Clipped))
	return objOrNil(o)
}

func (v *Voice) node() canonjson.Node {
	if v == nil {
		return nil
	}
	o := canonjson.NewObject().SetOpt("infinitive", stringNode(v.Infinitive))
	if v.SubjectCase != nil {
		o.Set("subject-case", canonjson.String(v.SubjectCase.String()))
	}
	o.SetOpt("indicative", v.Indicative.node()).
		SetOpt("subjunctive", v.Subjunctive.node()).
		SetOpt("imperative", v.Imperative.node()).
		SetOpt("supine", stringNode(v.Supine))
	return objOrNil(o)
}

func (p *Participle) node() canonjson.Node {
	if p == nil {
		return nil
	}
	o := canonjson.NewObject().
		SetOpt("present", stringNode(p.Present)).
		SetOpt("past", p.Past.node())
	return objOrNil(o)
}

func (p *NounParadigm) encode(o *canonjson.Object) {
	o.SetOpt("et", p.Singular.node()).SetOpt("ft", p.Plural.node())
}

func (p *AdjectiveParadigm) encode(o *canonjson.Object) {
	o.SetOpt("positive", p.Positive.node()).
		SetOpt("comparative", p.Comparative.node()).
		SetOpt("superlative", p.Superlative.node())
}

func (p *ArticleParadigm) encode(o *canonjson.Object) {
	o.SetOpt("singular", p.Singular.node()).SetOpt("plural", p.Plural.node())
}

func (p *PronounParadigm) encode(o *canonjson.Object) {
	o.SetOpt("singular", p.Singular.node()).SetOpt("plural", p.Plural.node())
}

func (p *NumeralParadigm) encode(o *canonjson.Object) {
	o.SetOpt("singular", p.Singular.node()).
		SetOpt("plural", p.Plural.node()).
		SetOpt("strong", p.Strong.node()).
		SetOpt("weak", p.Weak.node())
}

func (p *VerbParadigm) encode(o *canonjson.Object) {
	o.SetOpt("active", p.Active.node()).
		SetOpt("middle", p.Middle.node()).
		SetOpt("participle", p.Participle.node())
}

func (p *ParticleParadigm) encode(o *canonjson.Object) {
	o.SetOpt("comparative", stringNode(p.Comparative)).
		SetOpt("superlative", stringNode(p.Superlative))
}

// ParadigmKeys lists the top-level keys that hold tables for entries of the
// given category and subcategory.
func ParadigmKeys(c Category, s Subcategory) []string {
	switch c {
	case Noun, ProperName:
		return []string{"et", "ft"}
	case Adjective:
		return []string{"positive", "comparative", "superlative"}
	case Article, Pronoun:
		return []string{"singular", "plural"}
	case Numeral:
		if s == Ordinal {
			return []string{"strong", "weak"}
		}
		return []string{"singular", "plural"}
	case Verb:
		return []string{"active", "middle", "participle"}
	case Particle:
		if s == Adverb {
			return []string{"comparative", "superlative"}
		}
	}
	return nil
}

// problems accumulates every field error of one document.
type problems struct {
	err error
}

func (p *problems) add(kind error, path, format string, args ...any) {
	p.err = multierr.Append(p.err, &FieldError{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)})
}

func (p *problems) schema(path, format string, args ...any) {
	p.add(ErrSchemaViolation, path, format, args...)
}

func (p *problems) object(n canonjson.Node, path string, allowed ...string) *canonjson.Object {
	o, ok := n.(*canonjson.Object)
	if !ok {
		p.schema(path, "expected object, got %s", canonjson.TypeName(n))
		return nil
	}
	for _, key := range o.Keys() {
		known := false
		for _, a := range allowed {
			if a == key {
				known = true
				break
			}
		}
		if !known {
			p.schema(sub(path, key), "unexpected field")
		}
	}
	return o
}

// member returns the value of key, treating an explicit null as absent.
func member(o *canonjson.Object, key string) canonjson.Node {
	if o == nil {
		return nil
	}
	n, ok := o.Get(key)
	if !ok {
		return nil
	}
	if _, isNull := n.(canonjson.Null); isNull {
		return nil
	}
	return n
}

func (p *problems) str(n canonjson.Node, path string) *string {
	if n == nil {
		return nil
	}
	s, ok := n.(canonjson.String)
	if !ok {
		p.schema(path, "expected string, got %s", canonjson.TypeName(n))
		return nil
	}
	v := string(s)
	return &v
}

func (p *problems) requiredString(o *canonjson.Object, key, path string) string {
	n := member(o, key)
	if n == nil {
		p.schema(sub(path, key), "required")
		return ""
	}
	s := p.str(n, sub(path, key))
	if s == nil {
		return ""
	}
	if *s == "" {
		p.schema(sub(path, key), "must not be empty")
	}
	return *s
}

func (p *problems) flag(o *canonjson.Object, key, path string) bool {
	n := member(o, key)
	if n == nil {
		return false
	}
	b, ok := n.(canonjson.Bool)
	if !ok {
		p.schema(sub(path, key), "expected boolean, got %s", canonjson.TypeName(n))
		return false
	}
	return bool(b)
}

func (p *problems) tuple(n canonjson.Node, path string, size int) []*string {
	if n == nil {
		return nil
	}
	a, ok := n.(*canonjson.Array)
	if !ok {
		p.schema(path, "expected array of %d forms, got %s", size, canonjson.TypeName(n))
		return nil
	}
	if len(a.Items) != size {
		p.schema(path, "expected %d forms, got %d", size, len(a.Items))
		return nil
	}
	out := make([]*string, size)
	present := false
	for i, item := range a.Items {
		if _, isNull := item.(canonjson.Null); isNull {
			continue
		}
		out[i] = p.str(item, fmt.Sprintf("%s[%d]", path, i))
		if out[i] != nil {
			present = true
		}
	}
	if !present {
		p.schema(path, "all forms are null")
		return nil
	}
	return out
}

func (p *problems) caseForms(n canonjson.Node, path string) *CaseForms {
	forms := p.tuple(n, path, 4)
	if forms == nil {
		return nil
	}
	c := &CaseForms{}
	copy(c[:], forms)
	return c
}

func (p *problems) personSet(n canonjson.Node, path string) *PersonSet {
	forms := p.tuple(n, path, 3)
	if forms == nil {
		return nil
	}
	s := &PersonSet{}
	copy(s[:], forms)
	return s
}

func (p *problems) notEmpty(path string, present ...bool) {
	for _, ok := range present {
		if ok {
			return
		}
	}
	p.schema(path, "must contain at least one table")
}

func (p *problems) genderCases(n canonjson.Node, path string) *GenderCases {
	if n == nil {
		return nil
	}
	o := p.object(n, path, "masculine", "feminine", "neuter")
	if o == nil {
		return nil
	}
	g := &GenderCases{}
	for i, s := range g.slots() {
		key := Genders()[i].Alias().Slug
		*s = p.caseForms(member(o, key), sub(path, key))
	}
	p.notEmpty(path, g.Masculine != nil, g.Feminine != nil, g.Neuter != nil)
	return g
}

func (p *problems) numberGenderCases(n canonjson.Node, path string) *NumberGenderCases {
	if n == nil {
		return nil
	}
	o := p.object(n, path, "singular", "plural")
	if o == nil {
		return nil
	}
	out := &NumberGenderCases{
		Singular: p.genderCases(member(o, "singular"), sub(path, "singular")),
		Plural:   p.genderCases(member(o, "plural"), sub(path, "plural")),
	}
	p.notEmpty(path, out.Singular != nil, out.Plural != nil)
	return out
}

func (p *problems) stageBlock(n canonjson.Node, path string, weakOnly bool) *StageBlock {
	if n == nil {
		return nil
	}
	allowed := []string{"strong", "weak"}
	if weakOnly {
		allowed = []string{"weak"}
	}
	o := p.object(n, path, allowed...)
	if o == nil {
		return nil
	}
	out := &StageBlock{Weak: p.numberGenderCases(member(o, "weak"), sub(path, "weak"))}
	if !weakOnly {
		out.Strong = p.numberGenderCases(member(o, "strong"), sub(path, "strong"))
	}
	p.notEmpty(path, out.Strong != nil, out.Weak != nil)
	return out
}

func (p *problems) nounNumber(n canonjson.Node, path string) *NounNumber {
	if n == nil {
		return nil
	}
	o := p.object(n, path, "bare", "definite")
	if o == nil {
		return nil
	}
	out := &NounNumber{
		Bare:     p.caseForms(member(o, "bare"), sub(path, "bare")),
		Definite: p.caseForms(member(o, "definite"), sub(path, "definite")),
	}
	p.notEmpty(path, out.Bare != nil, out.Definite != nil)
	return out
}

func (p *problems) pronounNumber(n canonjson.Node, path string) *PronounNumber {
	switch n.(type) {
	case nil:
		return nil
	case *canonjson.Array:
		if c := p.caseForms(n, path); c != nil {
			return &PronounNumber{Flat: c}
		}
		return nil
	default:
		if g := p.genderCases(n, path); g != nil {
			return &PronounNumber{Gendered: g}
		}
		return nil
	}
}

func (p *problems) tenseForms(n canonjson.Node, path string) *TenseForms {
	if n == nil {
		return nil
	}
	o := p.object(n, path, "singular", "plural")
	if o == nil {
		return nil
	}
	out := &TenseForms{
		Singular: p.personSet(member(o, "singular"), sub(path, "singular")),
		Plural:   p.personSet(member(o, "plural"), sub(path, "plural")),
	}
	p.notEmpty(path, out.Singular != nil, out.Plural != nil)
	return out
}

func (p *problems) verbForms(n canonjson.Node, path string) *VerbForms {
	if n == nil {
		return nil
	}
	o := p.object(n, path, "present", "past")
	if o == nil {
		return nil
	}
	out := &VerbForms{
		Present: p.tenseForms(member(o, "present"), sub(path, "present")),
		Past:    p.tenseForms(member(o, "past"), sub(path, "past")),
	}
	p.notEmpty(path, out.Present != nil, out.Past != nil)
	return out
}

func (p *problems) imperative(n canonjson.Node, path string) *Imperative {
	if n == nil {
		return nil
	}
	o := p.object(n, path, "singular", "plural", "clipped")
	if o == nil {
		return nil
	}
	out := &Imperative{
		Singular: p.str(member(o, "singular"), sub(path, "singular")),
		Plural:   p.str(member(o, "plural"), sub(path, "plural")),
		Clipped:  p.str(member(o, "clipped"), sub(path, "clipped")),
	}
	p.notEmpty(path, out.Singular != nil, out.Plural != nil, out.Clipped != nil)
	return out
}

func (p *problems) voice(n canonjson.Node, path string) *Voice {
	if n == nil {
		return nil
	}
	o := p.object(n, path, "infinitive", "subject-case", "indicative", "subjunctive", "imperative", "supine")
	if o == nil {
		return nil
	}
	out := &Voice{
		Infinitive:  p.str(member(o, "infinitive"), sub(path, "infinitive")),
		Indicative:  p.verbForms(member(o, "indicative"), sub(path, "indicative")),
		Subjunctive: p.verbForms(member(o, "subjunctive"), sub(path, "subjunctive")),
		Imperative:  p.imperative(member(o, "imperative"), sub(path, "imperative")),
		Supine:      p.str(member(o, "supine"), sub(path, "supine")),
	}
	if s := p.str(member(o, "subject-case"), sub(path, "subject-case")); s != nil {
		c, err := ParseCase(*s)
		if err != nil {
			p.schema(sub(path, "subject-case"), "%v", err)
		} else {
			out.SubjectCase = &c
		}
	}
	p.notEmpty(path, out.Infinitive != nil, out.Indicative != nil, out.Subjunctive != nil, out.Imperative != nil, out.Supine != nil)
	return out
}

func (p *problems) participle(n canonjson.Node, path string) *Participle {
	if n == nil {
		return nil
	}
	o := p.object(n, path, "present", "past")
	if o == nil {
		return nil
	}
	out := &Participle{
		Present: p.str(member(o, "present"), sub(path, "present")),
		Past:    p.stageBlock(member(o, "past"), sub(path, "past"), false),
	}
	p.notEmpty(path, out.Present != nil, out.Past != nil)
	return out
}

// decodeParadigm reads the tables of category c from the entry object. It
// returns nil when the object carries none.
func (p *problems) decodeParadigm(o *canonjson.Object, c Category, s Subcategory) Paradigm {
	switch c {
	case Noun, ProperName:
		out := &NounParadigm{
			Singular: p.nounNumber(member(o, "et"), "et"),
			Plural:   p.nounNumber(member(o, "ft"), "ft"),
		}
		if out.Singular == nil && out.Plural == nil {
			return nil
		}
		return out
	case Adjective:
		out := &AdjectiveParadigm{
			Positive:    p.stageBlock(member(o, "positive"), "positive", false),
			Comparative: p.stageBlock(member(o, "comparative"), "comparative", true),
			Superlative: p.stageBlock(member(o, "superlative"), "superlative", false),
		}
		if out.Positive == nil && out.Comparative == nil && out.Superlative == nil {
			return nil
		}
		return out
	case Article:
		out := &ArticleParadigm{
			Singular: p.genderCases(member(o, "singular"), "singular"),
			Plural:   p.genderCases(member(o, "plural"), "plural"),
		}
		if out.Singular == nil && out.Plural == nil {
			return nil
		}
		return out
	case Pronoun:
		out := &PronounParadigm{
			Singular: p.pronounNumber(member(o, "singular"), "singular"),
			Plural:   p.pronounNumber(member(o, "plural"), "plural"),
		}
		if out.Singular == nil && out.Plural == nil {
			return nil
		}
		if out.Singular != nil && out.Plural != nil && out.Singular.gendered() != out.Plural.gendered() {
			p.schema("plural", "must have the same shape as singular")
		}
		return out
	case Numeral:
		out := &NumeralParadigm{}
		if s == Ordinal {
			out.Strong = p.numberGenderCases(member(o, "strong"), "strong")
			out.Weak = p.numberGenderCases(member(o, "weak"), "weak")
		} else {
			out.Singular = p.genderCases(member(o, "singular"), "singular")
			out.Plural = p.genderCases(member(o, "plural"), "plural")
		}
		if out.Prune() {
			return nil
		}
		return out
	case Verb:
		out := &VerbParadigm{
			Active:     p.voice(member(o, "active"), "active"),
			Middle:     p.voice(member(o, "middle"), "middle"),
			Participle: p.participle(member(o, "participle"), "participle"),
		}
		if out.Active == nil && out.Middle == nil && out.Participle == nil {
			return nil
		}
		return out
	case Particle:
		if s != Adverb {
			return nil
		}
		out := &ParticleParadigm{
			Comparative: p.str(member(o, "comparative"), "comparative"),
			Superlative: p.str(member(o, "superlative"), "superlative"),
		}
		if out.Prune() {
			return nil
		}
		return out
	}
	return nil
}
