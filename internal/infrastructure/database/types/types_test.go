package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eslsoft/ordasafn/internal/entity"
)

func TestTimestampRoundTrip(t *testing.T) {
	in := NewTimestamp(time.Date(2024, 3, 5, 7, 8, 9, 123456789, time.FixedZone("x", 3600)))
	v, err := in.Value()
	require.NoError(t, err)
	require.Equal(t, "2024-03-05T06:08:09.123456", v)
	require.Len(t, v, 26)

	var out Timestamp
	require.NoError(t, out.Scan(v))
	require.True(t, out.Equal(in.Time))

	require.Error(t, out.Scan("2024-03-05T06:08:09Z"))
	require.NoError(t, out.Scan(nil))
	require.True(t, out.IsZero())
}

func TestDecimalColumn(t *testing.T) {
	d := entity.MustDecimal("1.50")
	v, err := Decimal{Decimal: &d}.Value()
	require.NoError(t, err)
	require.Equal(t, "1.5", v)

	var out Decimal
	require.NoError(t, out.Scan([]byte("1.5")))
	require.NotNil(t, out.Decimal)
	require.Equal(t, "1.5", out.Decimal.String())

	v, err = Decimal{}.Value()
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestTagsKeepsNilAndOrder(t *testing.T) {
	v, err := Tags(nil).Value()
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = Tags{"ft", "et.bare"}.Value()
	require.NoError(t, err)
	require.Equal(t, `["ft","et.bare"]`, v)

	var out Tags
	require.NoError(t, out.Scan(v))
	require.Equal(t, Tags{"ft", "et.bare"}, out)
}
