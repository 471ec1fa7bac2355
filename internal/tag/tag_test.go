package tag

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixture = map[string][]string{
	"1": {"a", "b", "c", "d"},
	"2": {"a", "b", "c"},
	"3": {"a", "b"},
	"4": {"a"},
}

func filter(include, exclude Query) []string {
	var kept []string
	for _, title := range []string{"1", "2", "3", "4"} {
		if Matches(fixture[title], include, exclude) {
			kept = append(kept, title)
		}
	}
	return kept
}

func TestMatches_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		include Query
		exclude Query
		want    []string
	}{
		{
			name:    "include all d c",
			include: Query{Mode: All, Tags: []string{"d", "c"}},
			want:    []string{"1"},
		},
		{
			name:    "include all b exclude all b d",
			include: Query{Mode: All, Tags: []string{"b"}},
			exclude: Query{Mode: All, Tags: []string{"b", "d"}},
			want:    []string{"2", "3"},
		},
		{
			name:    "include any c d b exclude all a d",
			include: Query{Mode: Any, Tags: []string{"c", "d", "b"}},
			exclude: Query{Mode: All, Tags: []string{"a", "d"}},
			want:    []string{"2", "3"},
		},
		{
			name:    "include all c d b exclude any a d",
			include: Query{Mode: All, Tags: []string{"c", "d", "b"}},
			exclude: Query{Mode: Any, Tags: []string{"a", "d"}},
			want:    nil,
		},
		{
			name: "empty filter keeps everything",
			want: []string{"1", "2", "3", "4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter(tt.include, tt.exclude))
		})
	}
}

func TestInclude_Properties(t *testing.T) {
	doc := []string{"a", "b", "c"}

	// All is a subset test, even when doc has tags the query lacks.
	assert.True(t, Include(doc, Query{Mode: All, Tags: []string{"a", "c"}}))
	assert.False(t, Include(doc, Query{Mode: All, Tags: []string{"a", "z"}}))

	// Any is a non-empty intersection.
	assert.True(t, Include(doc, Query{Mode: Any, Tags: []string{"z", "b"}}))
	assert.False(t, Include(doc, Query{Mode: Any, Tags: []string{"y", "z"}}))

	for _, m := range []Mode{Any, All} {
		assert.True(t, Include(doc, Query{Mode: m}), "empty include keeps, mode %s", m)
		assert.False(t, Exclude(doc, Query{Mode: m}), "empty exclude drops nothing, mode %s", m)
		assert.True(t, Include(nil, Query{Mode: m}))
	}

	assert.False(t, Include(nil, Query{Mode: Any, Tags: []string{"a"}}))
	assert.False(t, Include(nil, Query{Mode: All, Tags: []string{"a"}}))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("ALL")
	require.NoError(t, err)
	assert.Equal(t, All, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Any, m)

	_, err = ParseMode("some")
	assert.Error(t, err)
}

func TestQuery_JSON(t *testing.T) {
	var q Query
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"all","tags":["x"]}`), &q))
	assert.Equal(t, Query{Mode: All, Tags: []string{"x"}}, q)

	b, err := json.Marshal(Query{Mode: Any, Tags: []string{"y"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"any","tags":["y"]}`, string(b))
}

func TestParse(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, Parse(" a, ,b c,"))
	assert.Nil(t, Parse(""))
}

func TestUnion(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d"}, Union(fixture["1"], fixture["3"], []string{"d"}))
	assert.Empty(t, Union())
}
