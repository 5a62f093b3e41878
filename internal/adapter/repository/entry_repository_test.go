package repository

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/internal/infrastructure/config"
	"github.com/eslsoft/ordasafn/internal/infrastructure/database"
	"github.com/eslsoft/ordasafn/internal/infrastructure/database/migrate"
	"github.com/eslsoft/ordasafn/internal/repository"
	"github.com/eslsoft/ordasafn/pkg/canonjson"
)

var dbCounter atomic.Int64

func newTestDriver(t *testing.T) dialect.Driver {
	t.Helper()
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    fmt.Sprintf("file:entries%d?mode=memory&cache=shared&_fk=1", dbCounter.Add(1)),
	}}
	drv, cleanup, err := database.NewDriver(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.NoError(t, database.Migrate(context.Background(), drv))
	return drv
}

// stepClock advances one second on every call.
func stepClock() func() time.Time {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newTestRepository(t *testing.T) (repository.EntryRepository, dialect.Driver) {
	t.Helper()
	drv := newTestDriver(t)
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return NewEntryRepository(drv, logger, WithClock(stepClock())), drv
}

func sealed(t *testing.T, src string) *entity.Entry {
	t.Helper()
	e, err := entity.Decode([]byte(src))
	require.NoError(t, err)
	_, err = e.Seal()
	require.NoError(t, err)
	return e
}

const hestur = `{
  "lemma": "hestur",
  "category": "nafnorð",
  "gender": "karlkyn",
  "et": {
    "bare": ["hestur", "hest", "hesti", "hests"],
    "definite": ["hesturinn", "hestinn", "hestinum", "hestsins"]
  },
  "ft": {
    "bare": ["hestar", "hesta", "hestum", "hesta"]
  }
}`

var roundTripSources = map[string]string{
	"noun": hestur,
	"adjective": `{
  "lemma": "góður",
  "category": "lýsingarorð",
  "positive": {
    "strong": {"singular": {"masculine": ["góður", "góðan", "góðum", "góðs"], "feminine": ["góð", "góða", "góðri", "góðrar"]}},
    "weak": {"plural": {"neuter": ["góðu", "góðu", "góðu", "góðu"]}}
  },
  "comparative": {"weak": {"singular": {"masculine": ["betri", "betri", "betri", "betri"]}}}
}`,
	"pronoun": `{
  "lemma": "hann",
  "category": "fornafn",
  "subcategory": "persónufornafn",
  "gender": "karlkyn",
  "person": "þriðja persóna",
  "singular": ["hann", "hann", "honum", "hans"],
  "plural": ["þeir", "þá", "þeim", "þeirra"]
}`,
	"ordinal": `{
  "lemma": "fyrstur",
  "category": "töluorð",
  "subcategory": "raðtala",
  "numeric_value": 1,
  "strong": {"singular": {"masculine": ["fyrstur", "fyrstan", "fyrstum", "fyrsts"]}},
  "weak": {"singular": {"masculine": ["fyrsti", "fyrsta", "fyrsta", "fyrsta"]}}
}`,
	"verb": `{
  "lemma": "vanta",
  "category": "sagnorð",
  "active": {
    "infinitive": "vanta",
    "subject-case": "þolfall",
    "indicative": {
      "present": {"singular": ["vantar", "vantar", "vantar"]},
      "past": {"plural": ["vantaði", null, "vantaði"]}
    },
    "imperative": {"singular": "vanta"},
    "supine": "vantað"
  },
  "participle": {
    "present": "vantandi",
    "past": {"strong": {"singular": {"neuter": ["vantað", "vantað", "vöntuðu", "vantaðs"]}}}
  }
}`,
	"preposition": `{
  "lemma": "á",
  "category": "smáorð",
  "subcategory": "forsetning",
  "governs": ["þolfall", "þágufall"]
}`,
	"adverb": `{
  "lemma": "vel",
  "category": "smáorð",
  "subcategory": "atviksorð",
  "comparative": "betur",
  "superlative": "best"
}`,
	"compound conjunction": `{
  "lemma": "hvorki",
  "category": "smáorð",
  "subcategory": "fleiryrt samtenging",
  "multiword": [{"text": "né", "hook": "laust"}]
}`,
	"indeclinable": `{
  "lemma": "hissa",
  "category": "lýsingarorð",
  "indeclinable": true
}`,
}

func TestWriteRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	for name, src := range roundTripSources {
		t.Run(name, func(t *testing.T) {
			e := sealed(t, src)
			res, err := repo.Write(ctx, e)
			require.NoError(t, err)
			require.Equal(t, repository.StatusCreated, res.Status)
			require.NotZero(t, res.ID)
			require.Equal(t, res.ID, e.ID)

			got, err := repo.GetByIdentity(ctx, e.Identity)
			require.NoError(t, err)
			require.Empty(t, entity.Changes(e, got))
			require.Equal(t, e.Hash, got.Hash)
			require.True(t, got.CreatedAt.Equal(e.CreatedAt))

			byID, err := repo.GetByID(ctx, res.ID)
			require.NoError(t, err)
			require.Equal(t, got.Identity, byID.Identity)

			out, err := entity.Encode(got)
			require.NoError(t, err)
			again, err := entity.Decode(out)
			require.NoError(t, err)
			changed, err := again.Seal()
			require.NoError(t, err)
			require.False(t, changed)
		})
	}
}

func TestWriteUnchangedKeepsStamps(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	first := sealed(t, hestur)
	res, err := repo.Write(ctx, first)
	require.NoError(t, err)
	require.Equal(t, repository.StatusCreated, res.Status)

	second := sealed(t, hestur)
	res, err = repo.Write(ctx, second)
	require.NoError(t, err)
	require.Equal(t, repository.StatusUnchanged, res.Status)
	require.Empty(t, res.Changes)
	require.Equal(t, first.ID, second.ID)
	require.True(t, second.EditedAt.Equal(first.EditedAt))
	require.True(t, second.CreatedAt.Equal(first.CreatedAt))
}

func TestWriteUpdatedRewritesRows(t *testing.T) {
	ctx := context.Background()
	repo, drv := newTestRepository(t)

	first := sealed(t, hestur)
	_, err := repo.Write(ctx, first)
	require.NoError(t, err)

	edited := sealed(t, strings.Replace(hestur, `"hesti", "hests"`, `"hestinum", "hests"`, 1))
	res, err := repo.Write(ctx, edited)
	require.NoError(t, err)
	require.Equal(t, repository.StatusUpdated, res.Status)
	require.Equal(t, []string{"et.bare.2", "hash"}, res.Changes)
	require.Equal(t, first.ID, edited.ID)
	require.True(t, edited.CreatedAt.Equal(first.CreatedAt))
	require.True(t, edited.EditedAt.After(first.EditedAt))

	got, err := repo.GetByIdentity(ctx, edited.Identity)
	require.NoError(t, err)
	require.Equal(t, "hestinum", got.Paradigm.(*entity.NounParadigm).Singular.Bare.Form(entity.Dative))
	require.True(t, got.EditedAt.Equal(edited.EditedAt))

	b := entsql.Dialect(drv.Dialect())
	rows, err := ownedRecords(ctx, drv, b, migrate.CaseFormsTableDesc, first.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3, "old tuples must be gone")
}

const eldhus = `{
  "lemma": "eldhús",
  "category": "nafnorð",
  "gender": "hvorugkyn",
  "compound": [
    {"literal": "eld", "joining": "stofnsamsetning"},
    {"reference": "n-hús-n", "beygingar": ["et"], "prefix": "-"},
    {"adjective-form": "positive.weak.feminine", "ref-identity": "adj-góður", "lowercase": true}
  ]
}`

func TestWriteCompoundRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	e := sealed(t, eldhus)
	e.Paradigm = &entity.NounParadigm{Singular: &entity.NounNumber{
		Bare: entity.NewCaseForms("eldhús", "eldhús", "eldhúsi", "eldhúss"),
	}}
	_, err := repo.Write(ctx, e)
	require.NoError(t, err)

	got, err := repo.GetByIdentity(ctx, e.Identity)
	require.NoError(t, err)
	require.True(t, got.IsCompound())
	require.Len(t, got.Compound, 3)
	require.Empty(t, entity.Changes(e, got))

	lit := got.Compound[0].(*entity.LiteralPart)
	require.Equal(t, entity.StemJoin, lit.Joining)
	ref := got.Compound[1].(*entity.ReferencePart)
	require.Equal(t, []string{"et"}, ref.Beygingar)
	require.Equal(t, "-", ref.Prefix)
	adj := got.Compound[2].(*entity.AdjectiveFormPart)
	require.Nil(t, adj.Beygingar)
	require.True(t, adj.Lowercase)
	require.Equal(t, entity.Feminine, adj.Form.Gender)

	disk, err := entity.Encode(got)
	require.NoError(t, err)
	doc, err := canonjson.Parse(disk)
	require.NoError(t, err)
	_, hasTables := doc.(*canonjson.Object).Get("et")
	require.False(t, hasTables, "derived tables written to disk")
}

func TestGetMissingEntry(t *testing.T) {
	repo, _ := newTestRepository(t)
	_, err := repo.GetByIdentity(context.Background(), "n-ekkert-n")
	require.ErrorIs(t, err, entity.ErrEntryNotFound)
}

func TestWriteRejectsUnsealedEntry(t *testing.T) {
	repo, _ := newTestRepository(t)
	_, err := repo.Write(context.Background(), &entity.Entry{Lemma: "x", Category: entity.Noun})
	require.Error(t, err)
}

func TestListIDs(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	var ids []int64
	var stamps []time.Time
	for _, name := range []string{"noun", "adjective", "preposition", "adverb"} {
		e := sealed(t, roundTripSources[name])
		res, err := repo.Write(ctx, e)
		require.NoError(t, err)
		ids = append(ids, res.ID)
		stamps = append(stamps, e.EditedAt)
	}

	all, err := repo.ListIDs(ctx, &repository.ListEntryQuery{})
	require.NoError(t, err)
	require.Equal(t, ids, all)

	since := stamps[2]
	recent, err := repo.ListIDs(ctx, &repository.ListEntryQuery{Since: &since})
	require.NoError(t, err)
	require.Equal(t, ids[2:], recent)

	cases := []struct {
		filter string
		want   []int64
	}{
		{`category == 'nafnorð'`, ids[:1]},
		{`category in ['adj', 'noun']`, ids[:2]},
		{`subcategory == 'preposition'`, ids[2:3]},
		{`identity.startsWith('adv-') || false`, nil},
		{`identity == 'adj-góður'`, ids[1:2]},
		{`category == 'smáorð' && lemma.startsWith('v')`, ids[3:]},
		{fmt.Sprintf(`edited >= timestamp('%s')`, stamps[3].Format(time.RFC3339Nano)), ids[3:]},
	}
	for _, c := range cases {
		got, err := repo.ListIDs(ctx, &repository.ListEntryQuery{FilterOrder: repository.FilterOrder{Filter: c.filter}})
		if c.want == nil {
			require.Error(t, err, c.filter)
			continue
		}
		require.NoError(t, err, c.filter)
		require.Equal(t, c.want, got, c.filter)
	}

	_, err = repo.ListIDs(ctx, &repository.ListEntryQuery{FilterOrder: repository.FilterOrder{Filter: `category == 'sögn'`}})
	require.ErrorIs(t, err, entity.ErrUnknownCategory)
}
