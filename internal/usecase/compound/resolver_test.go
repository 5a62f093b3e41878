package compound

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eslsoft/ordasafn/internal/entity"
)

func noun(lemma string, g entity.Gender, forms [4][4]string) *entity.Entry {
	e := &entity.Entry{
		Lemma:    lemma,
		Category: entity.Noun,
		Gender:   g,
		Paradigm: &entity.NounParadigm{
			Singular: &entity.NounNumber{
				Bare:     entity.NewCaseForms(forms[0][0], forms[0][1], forms[0][2], forms[0][3]),
				Definite: entity.NewCaseForms(forms[1][0], forms[1][1], forms[1][2], forms[1][3]),
			},
			Plural: &entity.NounNumber{
				Bare:     entity.NewCaseForms(forms[2][0], forms[2][1], forms[2][2], forms[2][3]),
				Definite: entity.NewCaseForms(forms[3][0], forms[3][1], forms[3][2], forms[3][3]),
			},
		},
	}
	e.Identity = entity.DeriveIdentity(e)
	return e
}

func hus() *entity.Entry {
	return noun("hús", entity.Neuter, [4][4]string{
		{"hús", "hús", "húsi", "húss"},
		{"húsið", "húsið", "húsinu", "hússins"},
		{"hús", "hús", "húsum", "húsa"},
		{"húsin", "húsin", "húsunum", "húsanna"},
	})
}

func hetta() *entity.Entry {
	return noun("hetta", entity.Feminine, [4][4]string{
		{"hetta", "hettu", "hettu", "hettu"},
		{"hettan", "hettuna", "hettunni", "hettunnar"},
		{"hettur", "hettur", "hettum", "hetta"},
		{"hetturnar", "hetturnar", "hettunum", "hettnanna"},
	})
}

func godur() *entity.Entry {
	fem := func(a, b, c, d string) *entity.GenderCases {
		return &entity.GenderCases{Feminine: entity.NewCaseForms(a, b, c, d)}
	}
	e := &entity.Entry{
		Lemma:    "góður",
		Category: entity.Adjective,
		Paradigm: &entity.AdjectiveParadigm{
			Positive: &entity.StageBlock{
				Strong: &entity.NumberGenderCases{Singular: fem("góð", "góða", "góðri", "góðrar")},
				Weak: &entity.NumberGenderCases{
					Singular: fem("góða", "góðu", "góðu", "góðu"),
					Plural:   fem("góðu", "góðu", "góðu", "góðu"),
				},
			},
		},
	}
	e.Identity = entity.DeriveIdentity(e)
	return e
}

func compound(lemma string, c entity.Category, g entity.Gender, parts ...entity.Part) *entity.Entry {
	e := &entity.Entry{Lemma: lemma, Category: c, Gender: g, Compound: parts}
	e.Identity = entity.DeriveIdentity(e)
	return e
}

func TestResolveLiteralPrefix(t *testing.T) {
	ref := hus()
	r := NewResolver(NewMemoryLookup(ref), nil)
	e := compound("eldhús", entity.Noun, entity.Neuter,
		&entity.LiteralPart{Text: "eld", Joining: entity.StemJoin},
		&entity.ReferencePart{Identity: "n-hús-n"},
	)
	p, err := r.Resolve(context.Background(), e)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	forms := entity.Forms(p)
	for path, base := range entity.Forms(ref.Paradigm) {
		if forms[path] != "eld"+base {
			t.Fatalf("%s = %q, want %q", path, forms[path], "eld"+base)
		}
	}
	if forms["et.definite.genitive"] != "eldhússins" {
		t.Fatalf("unexpected genitive %q", forms["et.definite.genitive"])
	}
	if got := entity.Forms(ref.Paradigm)["et.bare.nominative"]; got != "hús" {
		t.Fatalf("referent was modified: %q", got)
	}
}

func TestResolveReferenceMerge(t *testing.T) {
	r := NewResolver(NewMemoryLookup(hus(), hetta()), nil)
	e := compound("hettuhús", entity.Noun, entity.Neuter,
		&entity.ReferencePart{Identity: "n-hetta-f"},
		&entity.ReferencePart{Identity: "n-hús-n"},
	)
	p, err := r.Resolve(context.Background(), e)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	forms := entity.Forms(p)
	if forms["et.bare.dative"] != "hettuhúsi" || forms["ft.definite.genitive"] != "hettnannahúsanna" {
		t.Fatalf("unexpected merged forms: %v", forms)
	}
}

func TestResolveAdjectiveForm(t *testing.T) {
	r := NewResolver(NewMemoryLookup(godur(), hetta()), nil)
	e := compound("Góðahetta", entity.ProperName, entity.Feminine,
		&entity.AdjectiveFormPart{
			Identity:   "adj-góður",
			Form:       entity.AdjectiveForm{Degree: "positive", Declension: "weak", Gender: entity.Feminine},
			Transforms: entity.Transforms{Titlecase: true},
		},
		&entity.ReferencePart{Identity: "n-hetta-f"},
	)
	e.Subcategory = entity.GivenName
	p, err := r.Resolve(context.Background(), e)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	forms := entity.Forms(p)
	want := map[string]string{
		"et.bare.nominative":     "Góðahetta",
		"et.bare.accusative":     "Góðuhettu",
		"et.definite.nominative": "Góðahettan",
		"ft.bare.genitive":       "Góðuhetta",
	}
	for path, f := range want {
		if forms[path] != f {
			t.Fatalf("%s = %q, want %q", path, forms[path], f)
		}
	}
}

func TestProjectAdjectiveDuplicatesTuples(t *testing.T) {
	p, err := ProjectAdjective(godur(), entity.AdjectiveForm{Degree: "positive", Declension: "weak", Gender: entity.Feminine})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p.Singular.Bare, p.Singular.Definite); diff != "" {
		t.Fatalf("bare and definite differ: %s", diff)
	}
	if p.Singular.Bare == p.Singular.Definite {
		t.Fatal("projected tuples share storage")
	}
	if _, err := ProjectAdjective(godur(), entity.AdjectiveForm{Degree: "superlative", Declension: "weak", Gender: entity.Feminine}); !errors.Is(err, entity.ErrSchemaViolation) {
		t.Fatalf("expected schema violation for missing degree, got %v", err)
	}
	if _, err := ProjectAdjective(hus(), entity.AdjectiveForm{Degree: "positive", Declension: "weak", Gender: entity.Feminine}); !errors.Is(err, entity.ErrSchemaViolation) {
		t.Fatalf("expected schema violation for non-adjective, got %v", err)
	}
}

func TestResolveBeygingar(t *testing.T) {
	r := NewResolver(NewMemoryLookup(hus()), nil)
	e := compound("eldhús", entity.Noun, entity.Neuter,
		&entity.LiteralPart{Text: "eld", Joining: entity.StemJoin},
		&entity.ReferencePart{Identity: "n-hús-n", Beygingar: []string{"et"}},
	)
	p, err := r.Resolve(context.Background(), e)
	if err != nil {
		t.Fatal(err)
	}
	np := p.(*entity.NounParadigm)
	if np.Plural != nil {
		t.Fatal("plural survived the et filter")
	}
	if np.Singular == nil || np.Singular.Definite == nil {
		t.Fatal("singular lost")
	}

	e.Compound[1] = &entity.ReferencePart{Identity: "n-hús-n", Beygingar: []string{"positive"}}
	if _, err := r.Resolve(context.Background(), e); !errors.Is(err, entity.ErrInappropriateBeyging) {
		t.Fatalf("expected ErrInappropriateBeyging, got %v", err)
	}
}

func TestFilterMonotone(t *testing.T) {
	p := hus().Paradigm
	narrow := entity.Forms(Filter(p, []string{"et.bare"}))
	wide := entity.Forms(Filter(p, []string{"et.bare", "ft"}))
	if len(narrow) != 4 || len(wide) != 12 {
		t.Fatalf("unexpected sizes %d %d", len(narrow), len(wide))
	}
	for path, f := range narrow {
		if wide[path] != f {
			t.Fatalf("%s missing from wider filter", path)
		}
	}
	if Filter(p, []string{"et.bare.nominative"}) != nil {
		t.Fatal("a tag below the table level selected forms")
	}
}

func TestPrefixDistributesOverFilter(t *testing.T) {
	tags := []string{"ft.definite", "et.bare"}
	a := hus().Paradigm.Clone()
	Prefix(a, "stein")
	a = Filter(a, tags)

	b := Filter(hus().Paradigm, tags)
	Prefix(b, "stein")

	if diff := cmp.Diff(entity.Forms(a), entity.Forms(b)); diff != "" {
		t.Fatalf("prefix does not distribute over filter (-a +b):\n%s", diff)
	}
}

func TestApplyCaseTransforms(t *testing.T) {
	p := &entity.ParticleParadigm{Comparative: strPtr("ÍSLAND"), Superlative: strPtr("ísland")}
	Apply(p, entity.Transforms{Lowercase: true, Suffix: "s"})
	if *p.Comparative != "íslands" {
		t.Fatalf("lowercase = %q", *p.Comparative)
	}
	Apply(p, entity.Transforms{Titlecase: true, Prefix: "Ó"})
	if *p.Superlative != "ÓÍslands" {
		t.Fatalf("titlecase = %q", *p.Superlative)
	}
}

func strPtr(s string) *string { return &s }

func TestSubjectCaseSurvivesTransforms(t *testing.T) {
	acc := entity.Accusative
	verb := &entity.Entry{
		Lemma:    "vanta",
		Category: entity.Verb,
		Paradigm: &entity.VerbParadigm{Active: &entity.Voice{Infinitive: strPtr("vanta"), SubjectCase: &acc}},
	}
	verb.Identity = entity.DeriveIdentity(verb)
	r := NewResolver(NewMemoryLookup(verb), nil)
	e := &entity.Entry{Lemma: "bráðvanta", Category: entity.Verb, Compound: []entity.Part{
		&entity.LiteralPart{Text: "bráð", Joining: entity.StemJoin},
		&entity.ReferencePart{Identity: verb.Identity, Transforms: entity.Transforms{Suffix: "!"}},
	}}
	p, err := r.Resolve(context.Background(), e)
	if err != nil {
		t.Fatal(err)
	}
	active := p.(*entity.VerbParadigm).Active
	if *active.Infinitive != "bráðvanta!" || active.SubjectCase == nil || *active.SubjectCase != entity.Accusative {
		t.Fatalf("unexpected voice %+v", active)
	}
}

func TestResolveLiteralTailIsIndeclinable(t *testing.T) {
	r := NewResolver(NewMemoryLookup(hus()), nil)
	e := compound("hússins vegna", entity.Particle, entity.GenderUnspecified,
		&entity.ReferencePart{Identity: "n-hús-n"},
		&entity.LiteralPart{Text: " vegna", Joining: entity.GenitiveJoin},
	)
	p, err := r.Resolve(context.Background(), e)
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Fatalf("expected no paradigm, got %v", entity.Forms(p))
	}
}

func TestResolveNestedCompound(t *testing.T) {
	inner := compound("eldhús", entity.Noun, entity.Neuter,
		&entity.LiteralPart{Text: "eld", Joining: entity.StemJoin},
		&entity.ReferencePart{Identity: "n-hús-n"},
	)
	outer := compound("sumareldhús", entity.Noun, entity.Neuter,
		&entity.LiteralPart{Text: "sumar", Joining: entity.StemJoin},
		&entity.ReferencePart{Identity: inner.Identity},
	)
	r := NewResolver(NewMemoryLookup(hus(), inner), nil)
	p, err := r.Resolve(context.Background(), outer)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := entity.Forms(p)["ft.bare.dative"]; got != "sumareldhúsum" {
		t.Fatalf("ft.bare.dative = %q", got)
	}
	if inner.Paradigm != nil {
		t.Fatal("resolving through a referent materialized it")
	}

	first := entity.Forms(p)
	again, err := r.Resolve(context.Background(), outer)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, entity.Forms(again)); diff != "" {
		t.Fatalf("resolution is not idempotent:\n%s", diff)
	}
}

func TestResolveMissingReference(t *testing.T) {
	r := NewResolver(NewMemoryLookup(), nil)
	e := compound("eldhús", entity.Noun, entity.Neuter,
		&entity.LiteralPart{Text: "eld", Joining: entity.StemJoin},
		&entity.ReferencePart{Identity: "n-hús-n"},
	)
	_, err := r.Resolve(context.Background(), e)
	var missing *entity.MissingReferenceError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingReferenceError, got %v", err)
	}
	if missing.Referent != "n-hús-n" || missing.Identity != "n-eldhús-n" {
		t.Fatalf("unexpected error %+v", missing)
	}
}

func TestResolveCycle(t *testing.T) {
	a := compound("a", entity.Noun, entity.Neuter, &entity.ReferencePart{Identity: "n-b-n"})
	b := compound("b", entity.Noun, entity.Neuter, &entity.ReferencePart{Identity: "n-a-n"})
	r := NewResolver(NewMemoryLookup(a, b), nil)
	_, err := r.Resolve(context.Background(), a)
	if !errors.Is(err, entity.ErrReferenceCycle) {
		t.Fatalf("expected ErrReferenceCycle, got %v", err)
	}
}

func TestMergeMissingBranch(t *testing.T) {
	left := Filter(hus().Paradigm, []string{"et"})
	err := Merge(left, hetta().Paradigm.Clone())
	if !errors.Is(err, entity.ErrSchemaViolation) {
		t.Fatalf("expected schema violation, got %v", err)
	}
}

func TestMaterializeChecksCategory(t *testing.T) {
	r := NewResolver(NewMemoryLookup(hus()), nil)
	e := &entity.Entry{Lemma: "húsa", Category: entity.Adjective, Compound: []entity.Part{
		&entity.ReferencePart{Identity: "n-hús-n"},
	}}
	if err := r.Materialize(context.Background(), e); !errors.Is(err, entity.ErrSchemaViolation) {
		t.Fatalf("expected schema violation, got %v", err)
	}
}
