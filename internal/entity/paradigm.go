package entity

import "github.com/eslsoft/ordasafn/pkg/canonjson"

// Leaf is one inflected form slot of a paradigm. Path names the slot and
// Table the sub-table holding it; for single-string slots both are equal.
type Leaf struct {
	Path  string
	Table string
	Slot  **string
}

// LeafFunc visits a leaf. Assigning through Slot edits the paradigm.
type LeafFunc func(Leaf)

// Paradigm is the category-specific set of inflection tables of an entry.
type Paradigm interface {
	// Walk visits every slot, present or not, in a fixed order.
	Walk(fn LeafFunc)
	// Clone returns a deep copy.
	Clone() Paradigm
	// Prune drops empty sub-tables and reports whether nothing is left.
	Prune() bool
	encode(o *canonjson.Object)
}

var (
	caseKeys   = [4]string{"nominative", "accusative", "dative", "genitive"}
	personKeys = [3]string{"first", "second", "third"}
)

func sub(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func str(s string) *string { return &s }

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func walkString(path string, s **string, fn LeafFunc) {
	fn(Leaf{Path: path, Table: path, Slot: s})
}

// CaseForms holds the four case forms nominative, accusative, dative, genitive.
type CaseForms [4]*string

// NewCaseForms builds a case-tuple; empty strings become absent slots.
func NewCaseForms(nom, acc, dat, gen string) *CaseForms {
	c := &CaseForms{}
	for i, s := range []string{nom, acc, dat, gen} {
		if s != "" {
			c[i] = str(s)
		}
	}
	return c
}

func (c *CaseForms) walk(path string, fn LeafFunc) {
	if c == nil {
		return
	}
	for i := range c {
		fn(Leaf{Path: sub(path, caseKeys[i]), Table: path, Slot: &c[i]})
	}
}

func (c *CaseForms) clone() *CaseForms {
	if c == nil {
		return nil
	}
	out := &CaseForms{}
	for i, s := range c {
		out[i] = cloneString(s)
	}
	return out
}

func (c *CaseForms) empty() bool {
	if c == nil {
		return true
	}
	for _, s := range c {
		if s != nil {
			return false
		}
	}
	return true
}

// Form returns the form of case k, or "" when absent.
func (c *CaseForms) Form(k Case) string {
	if c == nil || c[k] == nil {
		return ""
	}
	return *c[k]
}

func pruneCases(c **CaseForms) bool {
	if (*c).empty() {
		*c = nil
		return true
	}
	return false
}

// GenderCases holds a case-tuple per gender.
type GenderCases struct {
	Masculine *CaseForms
	Feminine  *CaseForms
	Neuter    *CaseForms
}

// Of returns the tuple of gender g.
func (g *GenderCases) Of(gender Gender) *CaseForms {
	if g == nil {
		return nil
	}
	switch gender {
	case Masculine:
		return g.Masculine
	case Feminine:
		return g.Feminine
	case Neuter:
		return g.Neuter
	}
	return nil
}

func (g *GenderCases) slots() [3]**CaseForms {
	return [3]**CaseForms{&g.Masculine, &g.Feminine, &g.Neuter}
}

func (g *GenderCases) walk(path string, fn LeafFunc) {
	if g == nil {
		return
	}
	for i, s := range g.slots() {
		(*s).walk(sub(path, Genders()[i].Alias().Slug), fn)
	}
}

func (g *GenderCases) clone() *GenderCases {
	if g == nil {
		return nil
	}
	return &GenderCases{Masculine: g.Masculine.clone(), Feminine: g.Feminine.clone(), Neuter: g.Neuter.clone()}
}

func pruneGenders(g **GenderCases) bool {
	if *g == nil {
		return true
	}
	empty := true
	for _, s := range (*g).slots() {
		if !pruneCases(s) {
			empty = false
		}
	}
	if empty {
		*g = nil
	}
	return empty
}

// NumberGenderCases holds gendered tables for singular and plural.
type NumberGenderCases struct {
	Singular *GenderCases
	Plural   *GenderCases
}

func (n *NumberGenderCases) walk(path string, fn LeafFunc) {
	if n == nil {
		return
	}
	n.Singular.walk(sub(path, "singular"), fn)
	n.Plural.walk(sub(path, "plural"), fn)
}

func (n *NumberGenderCases) clone() *NumberGenderCases {
	if n == nil {
		return nil
	}
	return &NumberGenderCases{Singular: n.Singular.clone(), Plural: n.Plural.clone()}
}

func pruneNumbers(n **NumberGenderCases) bool {
	if *n == nil {
		return true
	}
	s := pruneGenders(&(*n).Singular)
	p := pruneGenders(&(*n).Plural)
	if s && p {
		*n = nil
		return true
	}
	return false
}

// StageBlock holds strong and weak declensions.
type StageBlock struct {
	Strong *NumberGenderCases
	Weak   *NumberGenderCases
}

func (b *StageBlock) walk(path string, fn LeafFunc) {
	if b == nil {
		return
	}
	b.Strong.walk(sub(path, "strong"), fn)
	b.Weak.walk(sub(path, "weak"), fn)
}

func (b *StageBlock) clone() *StageBlock {
	if b == nil {
		return nil
	}
	return &StageBlock{Strong: b.Strong.clone(), Weak: b.Weak.clone()}
}

func pruneStage(b **StageBlock) bool {
	if *b == nil {
		return true
	}
	s := pruneNumbers(&(*b).Strong)
	w := pruneNumbers(&(*b).Weak)
	if s && w {
		*b = nil
		return true
	}
	return false
}

// NounNumber holds the bare and definite tuples of one number.
type NounNumber struct {
	Bare     *CaseForms
	Definite *CaseForms
}

func (n *NounNumber) walk(path string, fn LeafFunc) {
	if n == nil {
		return
	}
	n.Bare.walk(sub(path, "bare"), fn)
	n.Definite.walk(sub(path, "definite"), fn)
}

func (n *NounNumber) clone() *NounNumber {
	if n == nil {
		return nil
	}
	return &NounNumber{Bare: n.Bare.clone(), Definite: n.Definite.clone()}
}

func pruneNounNumber(n **NounNumber) bool {
	if *n == nil {
		return true
	}
	b := pruneCases(&(*n).Bare)
	d := pruneCases(&(*n).Definite)
	if b && d {
		*n = nil
		return true
	}
	return false
}

// NounParadigm serves nouns and proper names: et is singular, ft plural.
type NounParadigm struct {
	Singular *NounNumber
	Plural   *NounNumber
}

func (p *NounParadigm) Walk(fn LeafFunc) {
	p.Singular.walk("et", fn)
	p.Plural.walk("ft", fn)
}

func (p *NounParadigm) Clone() Paradigm {
	return &NounParadigm{Singular: p.Singular.clone(), Plural: p.Plural.clone()}
}

func (p *NounParadigm) Prune() bool {
	s := pruneNounNumber(&p.Singular)
	pl := pruneNounNumber(&p.Plural)
	return s && pl
}

// AdjectiveParadigm holds the three degrees; the comparative is weak only.
type AdjectiveParadigm struct {
	Positive    *StageBlock
	Comparative *StageBlock
	Superlative *StageBlock
}

// Stage returns the block of a degree by key.
func (p *AdjectiveParadigm) Stage(key string) *StageBlock {
	switch key {
	case "positive":
		return p.Positive
	case "comparative":
		return p.Comparative
	case "superlative":
		return p.Superlative
	}
	return nil
}

func (p *AdjectiveParadigm) Walk(fn LeafFunc) {
	p.Positive.walk("positive", fn)
	p.Comparative.walk("comparative", fn)
	p.Superlative.walk("superlative", fn)
}

func (p *AdjectiveParadigm) Clone() Paradigm {
	return &AdjectiveParadigm{Positive: p.Positive.clone(), Comparative: p.Comparative.clone(), Superlative: p.Superlative.clone()}
}

func (p *AdjectiveParadigm) Prune() bool {
	a := pruneStage(&p.Positive)
	b := pruneStage(&p.Comparative)
	c := pruneStage(&p.Superlative)
	return a && b && c
}

// ArticleParadigm holds gendered singular and plural tables.
type ArticleParadigm struct {
	Singular *GenderCases
	Plural   *GenderCases
}

func (p *ArticleParadigm) Walk(fn LeafFunc) {
	p.Singular.walk("singular", fn)
	p.Plural.walk("plural", fn)
}

func (p *ArticleParadigm) Clone() Paradigm {
	return &ArticleParadigm{Singular: p.Singular.clone(), Plural: p.Plural.clone()}
}

func (p *ArticleParadigm) Prune() bool {
	s := pruneGenders(&p.Singular)
	pl := pruneGenders(&p.Plural)
	return s && pl
}

// PronounNumber is either a flat case-tuple or a gendered table.
type PronounNumber struct {
	Flat     *CaseForms
	Gendered *GenderCases
}

func (n *PronounNumber) walk(path string, fn LeafFunc) {
	if n == nil {
		return
	}
	if n.Flat != nil {
		n.Flat.walk(path, fn)
		return
	}
	n.Gendered.walk(path, fn)
}

func (n *PronounNumber) clone() *PronounNumber {
	if n == nil {
		return nil
	}
	return &PronounNumber{Flat: n.Flat.clone(), Gendered: n.Gendered.clone()}
}

func (n *PronounNumber) gendered() bool {
	return n != nil && n.Flat == nil && n.Gendered != nil
}

func prunePronounNumber(n **PronounNumber) bool {
	if *n == nil {
		return true
	}
	f := pruneCases(&(*n).Flat)
	g := pruneGenders(&(*n).Gendered)
	if f && g {
		*n = nil
		return true
	}
	return false
}

// PronounParadigm holds singular and plural of one shape.
type PronounParadigm struct {
	Singular *PronounNumber
	Plural   *PronounNumber
}

func (p *PronounParadigm) Walk(fn LeafFunc) {
	p.Singular.walk("singular", fn)
	p.Plural.walk("plural", fn)
}

func (p *PronounParadigm) Clone() Paradigm {
	return &PronounParadigm{Singular: p.Singular.clone(), Plural: p.Plural.clone()}
}

func (p *PronounParadigm) Prune() bool {
	s := prunePronounNumber(&p.Singular)
	pl := prunePronounNumber(&p.Plural)
	return s && pl
}

// NumeralParadigm: cardinals inflect by number, ordinals by declension.
type NumeralParadigm struct {
	Singular *GenderCases
	Plural   *GenderCases
	Strong   *NumberGenderCases
	Weak     *NumberGenderCases
}

func (p *NumeralParadigm) Walk(fn LeafFunc) {
	p.Singular.walk("singular", fn)
	p.Plural.walk("plural", fn)
	p.Strong.walk("strong", fn)
	p.Weak.walk("weak", fn)
}

func (p *NumeralParadigm) Clone() Paradigm {
	return &NumeralParadigm{
		Singular: p.Singular.clone(),
		Plural:   p.Plural.clone(),
		Strong:   p.Strong.clone(),
		Weak:     p.Weak.clone(),
	}
}

func (p *NumeralParadigm) Prune() bool {
	a := pruneGenders(&p.Singular)
	b := pruneGenders(&p.Plural)
	c := pruneNumbers(&p.Strong)
	d := pruneNumbers(&p.Weak)
	return a && b && c && d
}

// PersonSet holds first, second and third person forms.
type PersonSet [3]*string

func (s *PersonSet) walk(path string, fn LeafFunc) {
	if s == nil {
		return
	}
	for i := range s {
		fn(Leaf{Path: sub(path, personKeys[i]), Table: path, Slot: &s[i]})
	}
}

func (s *PersonSet) clone() *PersonSet {
	if s == nil {
		return nil
	}
	out := &PersonSet{}
	for i, v := range s {
		out[i] = cloneString(v)
	}
	return out
}

func prunePersons(s **PersonSet) bool {
	if *s == nil {
		return true
	}
	for _, v := range *s {
		if v != nil {
			return false
		}
	}
	*s = nil
	return true
}

// TenseForms holds the person sets of singular and plural.
type TenseForms struct {
	Singular *PersonSet
	Plural   *PersonSet
}

func (t *TenseForms) walk(path string, fn LeafFunc) {
	if t == nil {
		return
	}
	t.Singular.walk(sub(path, "singular"), fn)
	t.Plural.walk(sub(path, "plural"), fn)
}

func (t *TenseForms) clone() *TenseForms {
	if t == nil {
		return nil
	}
	return &TenseForms{Singular: t.Singular.clone(), Plural: t.Plural.clone()}
}

func pruneTense(t **TenseForms) bool {
	if *t == nil {
		return true
	}
	s := prunePersons(&(*t).Singular)
	p := prunePersons(&(*t).Plural)
	if s && p {
		*t = nil
		return true
	}
	return false
}

// VerbForms holds one mood: present and past tense.
type VerbForms struct {
	Present *TenseForms
	Past    *TenseForms
}

func (v *VerbForms) walk(path string, fn LeafFunc) {
	if v == nil {
		return
	}
	v.Present.walk(sub(path, "present"), fn)
	v.Past.walk(sub(path, "past"), fn)
}

func (v *VerbForms) clone() *VerbForms {
	if v == nil {
		return nil
	}
	return &VerbForms{Present: v.Present.clone(), Past: v.Past.clone()}
}

func pruneMood(v **VerbForms) bool {
	if *v == nil {
		return true
	}
	pr := pruneTense(&(*v).Present)
	pa := pruneTense(&(*v).Past)
	if pr && pa {
		*v = nil
		return true
	}
	return false
}

// Imperative holds the singular, plural and clipped imperative.
type Imperative struct {
	Singular *string
	Plural   *string
	Clipped  *string
}

func (i *Imperative) walk(path string, fn LeafFunc) {
	if i == nil {
		return
	}
	walkString(sub(path, "singular"), &i.Singular, fn)
	walkString(sub(path, "plural"), &i.Plural, fn)
	walkString(sub(path, "clipped"), &i.Clipped, fn)
}

func (i *Imperative) clone() *Imperative {
	if i == nil {
		return nil
	}
	return &Imperative{Singular: cloneString(i.Singular), Plural: cloneString(i.Plural), Clipped: cloneString(i.Clipped)}
}

func pruneImperative(i **Imperative) bool {
	if *i == nil {
		return true
	}
	if (*i).Singular == nil && (*i).Plural == nil && (*i).Clipped == nil {
		*i = nil
		return true
	}
	return false
}

// Voice holds the forms of the active or middle voice. SubjectCase is an
// attribute of the voice, not a form.
type Voice struct {
	Infinitive  *string
	SubjectCase *Case
	Indicative  *VerbForms
	Subjunctive *VerbForms
	Imperative  *Imperative
	Supine      *string
}

func (v *Voice) walk(path string, fn LeafFunc) {
	if v == nil {
		return
	}
	walkString(sub(path, "infinitive"), &v.Infinitive, fn)
	v.Indicative.walk(sub(path, "indicative"), fn)
	v.Subjunctive.walk(sub(path, "subjunctive"), fn)
	v.Imperative.walk(sub(path, "imperative"), fn)
	walkString(sub(path, "supine"), &v.Supine, fn)
}

func (v *Voice) clone() *Voice {
	if v == nil {
		return nil
	}
	out := &Voice{
		Infinitive:  cloneString(v.Infinitive),
		Indicative:  v.Indicative.clone(),
		Subjunctive: v.Subjunctive.clone(),
		Imperative:  v.Imperative.clone(),
		Supine:      cloneString(v.Supine),
	}
	if v.SubjectCase != nil {
		c := *v.SubjectCase
		out.SubjectCase = &c
	}
	return out
}

func pruneVoice(v **Voice) bool {
	if *v == nil {
		return true
	}
	i := pruneMood(&(*v).Indicative)
	s := pruneMood(&(*v).Subjunctive)
	m := pruneImperative(&(*v).Imperative)
	if i && s && m && (*v).Infinitive == nil && (*v).Supine == nil {
		*v = nil
		return true
	}
	return false
}

// Participle holds the present participle and the declined past participle.
type Participle struct {
	Present *string
	Past    *StageBlock
}

func (p *Participle) walk(path string, fn LeafFunc) {
	if p == nil {
		return
	}
	walkString(sub(path, "present"), &p.Present, fn)
	p.Past.walk(sub(path, "past"), fn)
}

func (p *Participle) clone() *Participle {
	if p == nil {
		return nil
	}
	return &Participle{Present: cloneString(p.Present), Past: p.Past.clone()}
}

func pruneParticiple(p **Participle) bool {
	if *p == nil {
		return true
	}
	if pruneStage(&(*p).Past) && (*p).Present == nil {
		*p = nil
		return true
	}
	return false
}

// VerbParadigm holds both voices and the participles.
type VerbParadigm struct {
	Active     *Voice
	Middle     *Voice
	Participle *Participle
}

func (p *VerbParadigm) Walk(fn LeafFunc) {
	p.Active.walk("active", fn)
	p.Middle.walk("middle", fn)
	p.Participle.walk("participle", fn)
}

func (p *VerbParadigm) Clone() Paradigm {
	return &VerbParadigm{Active: p.Active.clone(), Middle: p.Middle.clone(), Participle: p.Participle.clone()}
}

func (p *VerbParadigm) Prune() bool {
	a := pruneVoice(&p.Active)
	m := pruneVoice(&p.Middle)
	pt := pruneParticiple(&p.Participle)
	return a && m && pt
}

// ParticleParadigm holds the degrees of an adverb.
type ParticleParadigm struct {
	Comparative *string
	Superlative *string
}

func (p *ParticleParadigm) Walk(fn LeafFunc) {
	walkString("comparative", &p.Comparative, fn)
	walkString("superlative", &p.Superlative, fn)
}

func (p *ParticleParadigm) Clone() Paradigm {
	return &ParticleParadigm{Comparative: cloneString(p.Comparative), Superlative: cloneString(p.Superlative)}
}

func (p *ParticleParadigm) Prune() bool {
	return p.Comparative == nil && p.Superlative == nil
}

// Forms flattens the present leaves of p into path -> form.
func Forms(p Paradigm) map[string]string {
	out := make(map[string]string)
	if p == nil {
		return out
	}
	p.Walk(func(l Leaf) {
		if *l.Slot != nil {
			out[l.Path] = **l.Slot
		}
	})
	return out
}

// IsEmpty reports whether p has no present leaf.
func IsEmpty(p Paradigm) bool {
	if p == nil {
		return true
	}
	empty := true
	p.Walk(func(l Leaf) {
		if *l.Slot != nil {
			empty = false
		}
	})
	return empty
}

// Fits reports whether p has the shape entries of category c carry.
func Fits(c Category, p Paradigm) bool {
	switch p.(type) {
	case *NounParadigm:
		return c == Noun || c == ProperName
	case *AdjectiveParadigm:
		return c == Adjective
	case *ArticleParadigm:
		return c == Article
	case *PronounParadigm:
		return c == Pronoun
	case *NumeralParadigm:
		return c == Numeral
	case *VerbParadigm:
		return c == Verb
	case *ParticleParadigm:
		return c == Particle
	case nil:
		return true
	}
	return false
}
