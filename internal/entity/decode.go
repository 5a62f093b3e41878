package entity

import (
	"fmt"

	"github.com/eslsoft/ordasafn/pkg/canonjson"
)

var envelopeKeys = []string{
	"lemma", "category", "subcategory", "gender", "person", "numeric_value", "meaning",
	"compound", "dependent", "indeclinable", "identity", "hash",
}

// Decode parses and validates the on-disk bytes of one entry. Every problem
// found is reported; the result is nil when there is any.
func Decode(data []byte) (*Entry, error) {
	n, err := canonjson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return FromDocument(n)
}

// FromDocument builds an entry from a parsed document.
func FromDocument(n canonjson.Node) (*Entry, error) {
	var p problems
	o, ok := n.(*canonjson.Object)
	if !ok {
		p.schema("", "expected object, got %s", canonjson.TypeName(n))
		return nil, p.err
	}

	e := &Entry{Lemma: p.requiredString(o, "lemma", "")}
	if s := p.str(member(o, "category"), "category"); s != nil {
		c, err := ParseCategory(*s)
		if err != nil {
			p.add(ErrUnknownCategory, "category", "%q", *s)
		}
		e.Category = c
	} else {
		p.schema("category", "required")
	}
	if s := p.str(member(o, "subcategory"), "subcategory"); s != nil {
		sc, err := ParseSubcategory(*s)
		if err != nil {
			p.add(ErrUnknownCategory, "subcategory", "%q", *s)
		}
		e.Subcategory = sc
	}
	if s := p.str(member(o, "gender"), "gender"); s != nil {
		g, err := ParseGender(*s)
		if err != nil {
			p.schema("gender", "%v", err)
		}
		e.Gender = g
	}
	if s := p.str(member(o, "person"), "person"); s != nil {
		pr, err := ParsePerson(*s)
		if err != nil {
			p.schema("person", "%v", err)
		}
		e.Person = pr
	}
	if v := member(o, "numeric_value"); v != nil {
		var text string
		switch t := v.(type) {
		case canonjson.Number:
			text = string(t)
		case canonjson.String:
			text = string(t)
		default:
			p.schema("numeric_value", "expected number, got %s", canonjson.TypeName(v))
		}
		if text != "" {
			d, err := ParseDecimal(text)
			if err != nil {
				p.schema("numeric_value", "%v", err)
			} else {
				e.NumericValue = &d
			}
		}
	}
	if s := p.str(member(o, "meaning"), "meaning"); s != nil {
		if *s == "" {
			p.schema("meaning", "must not be empty when present")
		}
		e.Meaning = *s
	}
	if v := member(o, "compound"); v != nil {
		e.Compound = p.compound(v, "compound")
	}
	e.Dependent = p.flag(o, "dependent", "")
	e.Indeclinable = p.flag(o, "indeclinable", "")
	if s := p.str(member(o, "identity"), "identity"); s != nil {
		e.Identity = *s
	}
	if s := p.str(member(o, "hash"), "hash"); s != nil {
		e.Hash = *s
	}

	if e.Category.Valid() {
		allowed := append([]string(nil), envelopeKeys...)
		tables := ParadigmKeys(e.Category, e.Subcategory)
		allowed = append(allowed, tables...)
		if e.Subcategory == Preposition {
			allowed = append(allowed, "governs")
		}
		if e.Subcategory == CompoundConjunction {
			allowed = append(allowed, "multiword")
		}
		p.object(o, "", allowed...)

		if e.IsCompound() {
			for _, key := range tables {
				if member(o, key) != nil {
					p.schema(key, "compound entries do not carry inflection tables")
				}
			}
		} else {
			e.Paradigm = p.decodeParadigm(o, e.Category, e.Subcategory)
		}
		if v := member(o, "governs"); v != nil {
			e.Governs = p.governs(v, "governs")
		}
		if v := member(o, "multiword"); v != nil {
			e.Multiword = p.multiword(v, "multiword")
		}
	}

	p.validate(e)
	if p.err != nil {
		return nil, p.err
	}
	return e, nil
}

func (p *problems) compound(n canonjson.Node, path string) []Part {
	a, ok := n.(*canonjson.Array)
	if !ok {
		p.schema(path, "expected array of parts, got %s", canonjson.TypeName(n))
		return nil
	}
	parts := make([]Part, 0, len(a.Items))
	for i, item := range a.Items {
		if part := p.part(item, fmt.Sprintf("%s[%d]", path, i)); part != nil {
			parts = append(parts, part)
		}
	}
	return parts
}

func (p *problems) governs(n canonjson.Node, path string) []Case {
	a, ok := n.(*canonjson.Array)
	if !ok {
		p.schema(path, "expected array of cases, got %s", canonjson.TypeName(n))
		return nil
	}
	out := make([]Case, 0, len(a.Items))
	for i, item := range a.Items {
		s := p.str(item, fmt.Sprintf("%s[%d]", path, i))
		if s == nil {
			continue
		}
		c, err := ParseCase(*s)
		if err != nil {
			p.schema(fmt.Sprintf("%s[%d]", path, i), "%v", err)
			continue
		}
		out = append(out, c)
	}
	return out
}

func (p *problems) multiword(n canonjson.Node, path string) []Continuation {
	a, ok := n.(*canonjson.Array)
	if !ok {
		p.schema(path, "expected array, got %s", canonjson.TypeName(n))
		return nil
	}
	out := make([]Continuation, 0, len(a.Items))
	for i, item := range a.Items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		o := p.object(item, itemPath, "text", "hook")
		if o == nil {
			continue
		}
		w := Continuation{Text: p.requiredString(o, "text", itemPath)}
		if s := p.str(member(o, "hook"), sub(itemPath, "hook")); s != nil {
			h, err := ParseHook(*s)
			if err != nil {
				p.schema(sub(itemPath, "hook"), "%v", err)
			}
			w.Hook = h
		} else {
			p.schema(sub(itemPath, "hook"), "required")
		}
		out = append(out, w)
	}
	return out
}

// Validate checks the cross-field rules of an entry.
func Validate(e *Entry) error {
	var p problems
	p.validate(e)
	return p.err
}

func (p *problems) validate(e *Entry) {
	if e.Lemma == "" {
		p.schema("lemma", "must not be empty")
	}
	if !e.Category.Valid() {
		return
	}

	switch {
	case e.Category.RequiresSubcategory() && !e.Subcategory.Specified():
		p.schema("subcategory", "required for %s", e.Category)
	case e.Subcategory.Specified() && !e.Subcategory.BelongsTo(e.Category):
		p.add(ErrUnknownCategory, "subcategory", "%s is not a subcategory of %s", e.Subcategory, e.Category)
	}

	switch {
	case e.Category == Noun, e.Category == ProperName && e.Subcategory != MiddleName:
		if !e.Gender.Specified() {
			p.schema("gender", "required for %s", e.Category)
		}
	case e.Category == Pronoun:
	default:
		if e.Gender.Specified() {
			p.schema("gender", "not allowed for %s", e.Category)
		}
	}
	if e.Person.Specified() && e.Subcategory != PersonalPronoun {
		p.schema("person", "only personal pronouns carry a person")
	}

	if e.Subcategory == Preposition {
		if len(e.Governs) == 0 {
			p.schema("governs", "a preposition must govern at least one case")
		}
		for i := 1; i < len(e.Governs); i++ {
			if e.Governs[i] <= e.Governs[i-1] {
				p.schema("governs", "cases must be unique and in case order")
				break
			}
		}
	} else if len(e.Governs) > 0 {
		p.schema("governs", "only prepositions govern cases")
	}
	if len(e.Multiword) > 0 && e.Subcategory != CompoundConjunction {
		p.schema("multiword", "only compound conjunctions carry continuations")
	}

	if e.Paradigm != nil && !Fits(e.Category, e.Paradigm) {
		p.schema("", "%T does not fit %s", e.Paradigm, e.Category)
	}

	if e.IsCompound() {
		if len(e.Compound) == 0 {
			p.schema("compound", "must list at least one part")
			return
		}
		if _, literalTail := e.Compound[len(e.Compound)-1].(*LiteralPart); literalTail && !e.Indeclinable && e.Category != Particle {
			p.schema("indeclinable", "a compound ending in a literal must be indeclinable")
		}
		return
	}

	switch {
	case e.Indeclinable && !IsEmpty(e.Paradigm):
		p.schema("indeclinable", "indeclinable entries carry no inflection tables")
	case !e.Indeclinable && e.Category != Particle && IsEmpty(e.Paradigm):
		p.add(ErrEmptyParadigm, "", "%s has no inflection tables and is not indeclinable", e.Category)
	}
}

// CheckDerived validates the paradigm a compound resolved to.
func CheckDerived(e *Entry) error {
	var p problems
	switch {
	case e.Paradigm != nil && !Fits(e.Category, e.Paradigm):
		p.schema("compound", "derived %T does not fit %s", e.Paradigm, e.Category)
	case e.Indeclinable && !IsEmpty(e.Paradigm):
		p.schema("indeclinable", "compound is indeclinable but derives inflection tables")
	case !e.Indeclinable && e.Category != Particle && IsEmpty(e.Paradigm):
		p.add(ErrEmptyParadigm, "compound", "derived paradigm is empty")
	}
	return p.err
}
