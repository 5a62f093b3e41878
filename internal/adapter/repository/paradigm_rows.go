package repository

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/internal/infrastructure/database/migrate"
)

var (
	caseColumns   = columnNames(migrate.CaseFormsColumns[2:])
	genderColumns = columnNames(migrate.GenderCasesColumns[2:])
)

// rowWriter inserts the owned rows of one entry. The first failure sticks
// and turns every later call into a no-op.
type rowWriter struct {
	ctx     context.Context
	q       dialect.ExecQuerier
	b       *sql.DialectBuilder
	entryID int64
	err     error
}

func (w *rowWriter) owned() *values {
	return (&values{}).add("entry_id", w.entryID)
}

// insert returns the new row id, or nil once an error occurred.
func (w *rowWriter) insert(table string, v *values) any {
	if w.err != nil {
		return nil
	}
	id, err := insertID(w.ctx, w.q, v.insert(w.b, table))
	if err != nil {
		w.err = rowError(table, err)
		return nil
	}
	return id
}

func (w *rowWriter) caseForms(c *entity.CaseForms) any {
	if c == nil {
		return nil
	}
	v := w.owned()
	for i, col := range caseColumns {
		v.add(col, nullable(c[i]))
	}
	return w.insert(migrate.CaseFormsTable, v)
}

func (w *rowWriter) genderCases(g *entity.GenderCases) any {
	if g == nil {
		return nil
	}
	v := w.owned()
	for i, gender := range entity.Genders() {
		v.add(genderColumns[i], w.caseForms(g.Of(gender)))
	}
	return w.insert(migrate.GenderCasesTable, v)
}

func (w *rowWriter) numberGenderCases(n *entity.NumberGenderCases) any {
	if n == nil {
		return nil
	}
	v := w.owned().
		add("singular_id", w.genderCases(n.Singular)).
		add("plural_id", w.genderCases(n.Plural))
	return w.insert(migrate.NumberGenderCasesTable, v)
}

func (w *rowWriter) verbForms(m *entity.VerbForms) any {
	if m == nil {
		return nil
	}
	v := w.owned()
	col := 0
	for _, t := range []*entity.TenseForms{m.Present, m.Past} {
		for _, set := range tensePersons(t) {
			for i := 0; i < 3; i++ {
				var form *string
				if set != nil {
					form = set[i]
				}
				v.add(migrate.VerbFormColumns[col], nullable(form))
				col++
			}
		}
	}
	return w.insert(migrate.VerbFormsTable, v)
}

func tensePersons(t *entity.TenseForms) [2]*entity.PersonSet {
	if t == nil {
		return [2]*entity.PersonSet{}
	}
	return [2]*entity.PersonSet{t.Singular, t.Plural}
}

// paradigm writes the category row of e and the tables it points at.
// Particles always get a row since it also carries the governed cases.
func (w *rowWriter) paradigm(e *entity.Entry) {
	switch p := e.Paradigm.(type) {
	case *entity.NounParadigm:
		table := migrate.NounTable
		if e.Category == entity.ProperName {
			table = migrate.ProperNameTable
		}
		sg, pl := nounNumber(p.Singular), nounNumber(p.Plural)
		w.insert(table, w.owned().
			add("et_bare_id", w.caseForms(sg.Bare)).
			add("et_definite_id", w.caseForms(sg.Definite)).
			add("ft_bare_id", w.caseForms(pl.Bare)).
			add("ft_definite_id", w.caseForms(pl.Definite)))
	case *entity.AdjectiveParadigm:
		pos, cmp, sup := stage(p.Positive), stage(p.Comparative), stage(p.Superlative)
		w.insert(migrate.AdjectiveTable, w.owned().
			add("positive_strong_id", w.numberGenderCases(pos.Strong)).
			add("positive_weak_id", w.numberGenderCases(pos.Weak)).
			add("comparative_weak_id", w.numberGenderCases(cmp.Weak)).
			add("superlative_strong_id", w.numberGenderCases(sup.Strong)).
			add("superlative_weak_id", w.numberGenderCases(sup.Weak)))
	case *entity.ArticleParadigm:
		w.insert(migrate.ArticleTable, w.owned().
			add("singular_id", w.genderCases(p.Singular)).
			add("plural_id", w.genderCases(p.Plural)))
	case *entity.PronounParadigm:
		sg, pl := pronounNumber(p.Singular), pronounNumber(p.Plural)
		w.insert(migrate.PronounTable, w.owned().
			add("singular_flat_id", w.caseForms(sg.Flat)).
			add("plural_flat_id", w.caseForms(pl.Flat)).
			add("singular_gendered_id", w.genderCases(sg.Gendered)).
			add("plural_gendered_id", w.genderCases(pl.Gendered)))
	case *entity.NumeralParadigm:
		w.insert(migrate.NumeralTable, w.owned().
			add("singular_id", w.genderCases(p.Singular)).
			add("plural_id", w.genderCases(p.Plural)).
			add("strong_id", w.numberGenderCases(p.Strong)).
			add("weak_id", w.numberGenderCases(p.Weak)))
	case *entity.VerbParadigm:
		v := w.owned()
		w.voice(v, "active", p.Active)
		w.voice(v, "middle", p.Middle)
		var present *string
		var past *entity.StageBlock
		if p.Participle != nil {
			present, past = p.Participle.Present, p.Participle.Past
		}
		past = stage(past)
		v.add("participle_present", nullable(present)).
			add("participle_past_strong_id", w.numberGenderCases(past.Strong)).
			add("participle_past_weak_id", w.numberGenderCases(past.Weak))
		w.insert(migrate.VerbTable, v)
	}

	if e.Category == entity.Particle {
		var comparative, superlative *string
		if p, ok := e.Paradigm.(*entity.ParticleParadigm); ok {
			comparative, superlative = p.Comparative, p.Superlative
		}
		v := w.owned().
			add("comparative", nullable(comparative)).
			add("superlative", nullable(superlative))
		for _, c := range entity.Cases() {
			v.add("governs_"+c.Alias().Slug, governs(e.Governs, c))
		}
		w.insert(migrate.ParticleTable, v)
	}
}

func (w *rowWriter) voice(v *values, prefix string, voice *entity.Voice) {
	if voice == nil {
		voice = &entity.Voice{}
	}
	imp := voice.Imperative
	if imp == nil {
		imp = &entity.Imperative{}
	}
	var subject any
	if voice.SubjectCase != nil {
		subject = voice.SubjectCase.Alias().Slug
	}
	v.add(prefix+"_infinitive", nullable(voice.Infinitive)).
		add(prefix+"_subject_case", subject).
		add(prefix+"_indicative_id", w.verbForms(voice.Indicative)).
		add(prefix+"_subjunctive_id", w.verbForms(voice.Subjunctive)).
		add(prefix+"_imperative_singular", nullable(imp.Singular)).
		add(prefix+"_imperative_plural", nullable(imp.Plural)).
		add(prefix+"_imperative_clipped", nullable(imp.Clipped)).
		add(prefix+"_supine", nullable(voice.Supine))
}

func (w *rowWriter) multiword(words []entity.Continuation) {
	for i, word := range words {
		w.insert(migrate.ParticleMultiwordTable, w.owned().
			add("position", i).
			add("text", word.Text).
			add("hook", word.Hook.Alias().Slug))
	}
}

func nounNumber(n *entity.NounNumber) *entity.NounNumber {
	if n == nil {
		return &entity.NounNumber{}
	}
	return n
}

func stage(b *entity.StageBlock) *entity.StageBlock {
	if b == nil {
		return &entity.StageBlock{}
	}
	return b
}

func pronounNumber(n *entity.PronounNumber) *entity.PronounNumber {
	if n == nil {
		return &entity.PronounNumber{}
	}
	return n
}

func governs(cases []entity.Case, c entity.Case) bool {
	for _, g := range cases {
		if g == c {
			return true
		}
	}
	return false
}

// rowSet holds the shared form tables of one entry keyed by row id.
type rowSet struct {
	cases   map[int64]record
	genders map[int64]record
	numbers map[int64]record
	moods   map[int64]record
}

func loadRowSet(ctx context.Context, q dialect.ExecQuerier, b *sql.DialectBuilder, entryID int64) (*rowSet, error) {
	s := &rowSet{}
	for _, t := range []struct {
		desc *schema.Table
		dst  *map[int64]record
	}{
		{migrate.CaseFormsTableDesc, &s.cases},
		{migrate.GenderCasesTableDesc, &s.genders},
		{migrate.NumberGenderCasesTableDesc, &s.numbers},
		{migrate.VerbFormsTableDesc, &s.moods},
	} {
		records, err := ownedRecords(ctx, q, b, t.desc, entryID)
		if err != nil {
			return nil, err
		}
		*t.dst = make(map[int64]record, len(records))
		for _, r := range records {
			id, _ := r.id("id")
			(*t.dst)[id] = r
		}
	}
	return s, nil
}

func ownedRecords(ctx context.Context, q dialect.ExecQuerier, b *sql.DialectBuilder, t *schema.Table, entryID int64) ([]record, error) {
	sel := b.Select(columnNames(t.Columns)...).
		From(b.Table(t.Name)).
		Where(sql.EQ("entry_id", entryID)).
		OrderBy("id")
	records, err := queryRecords(ctx, q, sel, t.Columns)
	if err != nil {
		return nil, rowError(t.Name, err)
	}
	return records, nil
}

func (s *rowSet) row(rows map[int64]record, r record, col string) record {
	id, ok := r.id(col)
	if !ok {
		return nil
	}
	return rows[id]
}

func (s *rowSet) caseForms(r record, col string) *entity.CaseForms {
	row := s.row(s.cases, r, col)
	if row == nil {
		return nil
	}
	c := &entity.CaseForms{}
	for i, name := range caseColumns {
		c[i] = row.str(name)
	}
	return c
}

func (s *rowSet) genderCases(r record, col string) *entity.GenderCases {
	row := s.row(s.genders, r, col)
	if row == nil {
		return nil
	}
	return &entity.GenderCases{
		Masculine: s.caseForms(row, genderColumns[0]),
		Feminine:  s.caseForms(row, genderColumns[1]),
		Neuter:    s.caseForms(row, genderColumns[2]),
	}
}

func (s *rowSet) numberGenderCases(r record, col string) *entity.NumberGenderCases {
	row := s.row(s.numbers, r, col)
	if row == nil {
		return nil
	}
	return &entity.NumberGenderCases{
		Singular: s.genderCases(row, "singular_id"),
		Plural:   s.genderCases(row, "plural_id"),
	}
}

func (s *rowSet) verbForms(r record, col string) *entity.VerbForms {
	row := s.row(s.moods, r, col)
	if row == nil {
		return nil
	}
	var sets [4]*entity.PersonSet
	for i := range sets {
		sets[i] = &entity.PersonSet{}
		for p := 0; p < 3; p++ {
			sets[i][p] = row.str(migrate.VerbFormColumns[i*3+p])
		}
	}
	return &entity.VerbForms{
		Present: &entity.TenseForms{Singular: sets[0], Plural: sets[1]},
		Past:    &entity.TenseForms{Singular: sets[2], Plural: sets[3]},
	}
}

func (s *rowSet) voice(r record, prefix string) *entity.Voice {
	v := &entity.Voice{
		Infinitive:  r.str(prefix + "_infinitive"),
		Indicative:  s.verbForms(r, prefix+"_indicative_id"),
		Subjunctive: s.verbForms(r, prefix+"_subjunctive_id"),
		Imperative: &entity.Imperative{
			Singular: r.str(prefix + "_imperative_singular"),
			Plural:   r.str(prefix + "_imperative_plural"),
			Clipped:  r.str(prefix + "_imperative_clipped"),
		},
		Supine: r.str(prefix + "_supine"),
	}
	if slug := r.str(prefix + "_subject_case"); slug != nil {
		c, err := entity.ParseCase(*slug)
		if err == nil {
			v.SubjectCase = &c
		}
	}
	return v
}

// categoryTable is the row table of each declinable category.
var categoryTable = map[entity.Category]*schema.Table{
	entity.Noun:       migrate.NounTableDesc,
	entity.ProperName: migrate.ProperNameTableDesc,
	entity.Adjective:  migrate.AdjectiveTableDesc,
	entity.Article:    migrate.ArticleTableDesc,
	entity.Pronoun:    migrate.PronounTableDesc,
	entity.Numeral:    migrate.NumeralTableDesc,
	entity.Verb:       migrate.VerbTableDesc,
	entity.Particle:   migrate.ParticleTableDesc,
}

// paradigm rebuilds the tables of category c from its row. Sub-tables with
// no stored form are pruned away, which mirrors how entries are decoded.
func (s *rowSet) paradigm(c entity.Category, r record) entity.Paradigm {
	var p entity.Paradigm
	switch c {
	case entity.Noun, entity.ProperName:
		p = &entity.NounParadigm{
			Singular: &entity.NounNumber{Bare: s.caseForms(r, "et_bare_id"), Definite: s.caseForms(r, "et_definite_id")},
			Plural:   &entity.NounNumber{Bare: s.caseForms(r, "ft_bare_id"), Definite: s.caseForms(r, "ft_definite_id")},
		}
	case entity.Adjective:
		p = &entity.AdjectiveParadigm{
			Positive: &entity.StageBlock{
				Strong: s.numberGenderCases(r, "positive_strong_id"),
				Weak:   s.numberGenderCases(r, "positive_weak_id"),
			},
			Comparative: &entity.StageBlock{Weak: s.numberGenderCases(r, "comparative_weak_id")},
			Superlative: &entity.StageBlock{
				Strong: s.numberGenderCases(r, "superlative_strong_id"),
				Weak:   s.numberGenderCases(r, "superlative_weak_id"),
			},
		}
	case entity.Article:
		p = &entity.ArticleParadigm{
			Singular: s.genderCases(r, "singular_id"),
			Plural:   s.genderCases(r, "plural_id"),
		}
	case entity.Pronoun:
		p = &entity.PronounParadigm{
			Singular: &entity.PronounNumber{Flat: s.caseForms(r, "singular_flat_id"), Gendered: s.genderCases(r, "singular_gendered_id")},
			Plural:   &entity.PronounNumber{Flat: s.caseForms(r, "plural_flat_id"), Gendered: s.genderCases(r, "plural_gendered_id")},
		}
	case entity.Numeral:
		p = &entity.NumeralParadigm{
			Singular: s.genderCases(r, "singular_id"),
			Plural:   s.genderCases(r, "plural_id"),
			Strong:   s.numberGenderCases(r, "strong_id"),
			Weak:     s.numberGenderCases(r, "weak_id"),
		}
	case entity.Verb:
		p = &entity.VerbParadigm{
			Active: s.voice(r, "active"),
			Middle: s.voice(r, "middle"),
			Participle: &entity.Participle{
				Present: r.str("participle_present"),
				Past: &entity.StageBlock{
					Strong: s.numberGenderCases(r, "participle_past_strong_id"),
					Weak:   s.numberGenderCases(r, "participle_past_weak_id"),
				},
			},
		}
	case entity.Particle:
		p = &entity.ParticleParadigm{Comparative: r.str("comparative"), Superlative: r.str("superlative")}
	default:
		return nil
	}
	if p.Prune() {
		return nil
	}
	return p
}

// governed reads the governed cases of a particle row in case order.
func governed(r record) []entity.Case {
	var out []entity.Case
	for _, c := range entity.Cases() {
		if r.flag("governs_" + c.Alias().Slug) {
			out = append(out, c)
		}
	}
	return out
}
