package sections

import (
	"encoding/json"
	"testing"

	"kickstarter-campaigns/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := Parse("categories")
	require.NoError(t, err)
	assert.Equal(t, Categories, s)

	s, err = Parse("campaigns")
	require.NoError(t, err)
	assert.Equal(t, Campaigns, s)

	for _, name := range []string{"", "Categories", "campaign", "users"} {
		_, err := Parse(name)
		assert.ErrorIs(t, err, ErrUnknownSection, name)
	}
}

func TestSectionNames(t *testing.T) {
	assert.Equal(t, "categories", Categories.String())
	assert.Equal(t, "category", Categories.Singular())
	assert.Equal(t, "campaign", Campaigns.Singular())
	assert.True(t, Campaigns.Deletable())
	assert.False(t, Categories.Deletable())
}

func TestFirstMissing(t *testing.T) {
	field, missing := Campaigns.FirstMissing(Fields{"name": "Moon Boots", "category_id": json.Number("1")})
	assert.True(t, missing)
	assert.Equal(t, "creator", field)

	field, missing = Campaigns.FirstMissing(Fields{})
	assert.True(t, missing)
	assert.Equal(t, "name", field)

	field, missing = Categories.FirstMissing(Fields{"category": "Art", "category_link": ""})
	assert.True(t, missing)
	assert.Equal(t, "category_link", field)

	_, missing = Categories.FirstMissing(Fields{"category": "Art", "category_link": "http://x"})
	assert.False(t, missing)
}

func TestFieldsHas(t *testing.T) {
	f := Fields{"a": nil, "b": "", "c": json.Number("0"), "d": false}
	assert.False(t, f.Has("a"))
	assert.False(t, f.Has("b"))
	assert.True(t, f.Has("c"))
	assert.True(t, f.Has("d"))
	assert.False(t, f.Has("missing"))
}

func TestFieldsInt(t *testing.T) {
	cases := []struct {
		value any
		want  int64
		ok    bool
	}{
		{json.Number("5"), 5, true},
		{json.Number("5.0"), 5, true},
		{json.Number("5.5"), 0, false},
		{"12", 12, true},
		{" 7 ", 7, true},
		{"abc", 0, false},
		{float64(3), 3, true},
		{true, 0, false},
	}
	for _, tc := range cases {
		got, err := Fields{"id": tc.value}.Int("id")
		if tc.ok {
			require.NoError(t, err, "%v", tc.value)
			assert.Equal(t, tc.want, got)
		} else {
			assert.ErrorIs(t, err, ErrNotInteger, "%v", tc.value)
		}
	}
}

func TestNewRecord(t *testing.T) {
	rec, err := Categories.NewRecord(Fields{"category": "Art", "category_link": "http://x"})
	require.NoError(t, err)
	assert.Equal(t, &models.Category{Category: "Art", CategoryLink: "http://x"}, rec)

	rec, err = Campaigns.NewRecord(Fields{
		"name": "Moon Boots", "creator": "Ada", "location": "Denver, CO", "category_id": json.Number("2"),
	})
	require.NoError(t, err)
	assert.Equal(t, &models.Campaign{Name: "Moon Boots", Creator: "Ada", Location: "Denver, CO", CategoryID: 2}, rec)

	_, err = Campaigns.NewRecord(Fields{"category_id": "two"})
	assert.ErrorIs(t, err, ErrNotInteger)
}

func TestNewRows(t *testing.T) {
	rows, ok := Categories.NewRows().(*[]models.Category)
	require.True(t, ok)
	assert.NotNil(t, *rows)

	_, ok = Campaigns.NewRow().(*models.Campaign)
	assert.True(t, ok)
}
