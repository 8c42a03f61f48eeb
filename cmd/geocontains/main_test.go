package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmadfox/geocontains"
	"github.com/mmadfox/geocontains/internal/config"
)

func TestParsePoint(t *testing.T) {
	testCases := []struct {
		in   string
		want geocontains.Point
		err  bool
	}{
		{in: "1,2", want: geocontains.Pt(1, 2)},
		{in: " -180.5 , 45 ", want: geocontains.Pt(-180.5, 45)},
		{in: "1e-3,0", want: geocontains.Pt(0.001, 0)},
		{in: "1", err: true},
		{in: "1,2,3", err: true},
		{in: "a,2", err: true},
		{in: "1,b", err: true},
	}
	for _, tc := range testCases {
		have, err := parsePoint(tc.in)
		if tc.err {
			if err == nil {
				t.Fatalf("parsePoint(%q) => have nil error, want error", tc.in)
			}
			continue
		}
		require.NoError(t, err)
		if have != tc.want {
			t.Fatalf("parsePoint(%q) => have %v, want %v", tc.in, have, tc.want)
		}
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	index, err := loadIndex(ctx, config.Default(), nil, "../../internal/geojson/testdata/feature_collection.json")
	require.NoError(t, err)
	assert.Equal(t, 3, index.Len())

	var points pointsFlag
	require.NoError(t, points.Set("1,1"))
	stdin := strings.NewReader("# comment\n\n50,50\n30,5\n")
	var out bytes.Buffer
	require.NoError(t, run(ctx, index, points, stdin, &out))
	want := "1,1\ttrue\tsquare\n" +
		"50,50\tfalse\t\n" +
		"30,5\ttrue\troad\n"
	assert.Equal(t, want, out.String())

	out.Reset()
	err = run(ctx, index, nil, strings.NewReader("oops\n"), &out)
	assert.Error(t, err)
}

func TestLoadIndexSingleGeometry(t *testing.T) {
	index, err := loadIndex(context.Background(), config.Default(), nil, "../../internal/geojson/testdata/collection.json")
	require.NoError(t, err)
	ids, err := index.Locate(context.Background(), geocontains.Pt(90, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, ids)
}

func TestLoadIndexNullGeometry(t *testing.T) {
	ctx := context.Background()
	index, err := loadIndex(ctx, config.Default(), nil, "../../internal/geojson/testdata/null_geometry.json")
	require.NoError(t, err)
	assert.Equal(t, 4, index.Len())

	var out bytes.Buffer
	require.NoError(t, run(ctx, index, nil, strings.NewReader("5,5\n50,50\n"), &out))
	want := "5,5\ttrue\t7 mixed world\n" +
		"50,50\ttrue\tmixed world\n"
	assert.Equal(t, want, out.String())
}
