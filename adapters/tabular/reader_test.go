package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostoch/domain/core"
	"gostoch/domain/dist"
	"gostoch/domain/sample"
)

func TestParseSampleInfersTypes(t *testing.T) {
	input := "price,color\n1.5,red\n2,blue\n3,red\n"

	s, err := ParseSample(strings.NewReader(input), Options{})
	require.NoError(t, err)

	price, _, ok := s.ByKey("price")
	require.True(t, ok)
	assert.Equal(t, sample.Numerical, price.Type)

	color, _, ok := s.ByKey("color")
	require.True(t, ok)
	assert.Equal(t, sample.Nominal, color.Type)
	assert.Equal(t, 3, s.Size())
}

func TestParseSampleTypeOverride(t *testing.T) {
	input := "grade\n1\n2\n1\n"

	s, err := ParseSample(strings.NewReader(input), Options{
		Types:  map[string]sample.VarType{"grade": sample.Ordinal},
		Orders: map[string][]string{"grade": {"1", "2"}},
	})
	require.NoError(t, err)

	grade := s.Variables[0]
	assert.Equal(t, sample.Ordinal, grade.Type)
	assert.Equal(t, []string{"1", "2"}, grade.Order)
}

func TestParseSampleHardFailures(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty input", "", core.ErrMissingHeader},
		{"header only", "a,b\n", core.ErrEmptyDataset},
		{"ragged row", "a,b\n1,2\n3\n", core.ErrRaggedRow},
		{"blank cell", "a,b\n1,\n", core.ErrBlankCell},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSample(strings.NewReader(tc.input), Options{})
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseSampleRowNumbersInErrors(t *testing.T) {
	_, err := ParseSample(strings.NewReader("a,b\n1,2\n3\n"), Options{})
	require.Error(t, err)
	// Data rows are indexed from 1 as users see them.
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseSampleHeaderValidation(t *testing.T) {
	_, err := ParseSample(strings.NewReader("a,a\n1,2\n"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = ParseSample(strings.NewReader("a,\n1,2\n"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}

func TestParsePanel(t *testing.T) {
	input := "Time,Instance1,Instance2\njan,sunny,rainy\nfeb,rainy,rainy\n"

	p, err := ParsePanel(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, p.Steps())
	assert.Equal(t, 2, p.Size())
	assert.Equal(t, []string{"jan", "feb"}, p.TimeLabels)
	// Instances[i][t] layout: instance rows transposed from the time rows.
	assert.Equal(t, []string{"sunny", "rainy"}, p.Instances[0])
}

func TestParsePanelHeaderCaseInsensitive(t *testing.T) {
	input := "time,instance1\njan,a\nfeb,b\n"
	_, err := ParsePanel(strings.NewReader(input))
	require.NoError(t, err)
}

func TestParsePanelBadHeaders(t *testing.T) {
	cases := []string{
		"Clock,Instance1\njan,a\n",
		"Time\njan\n",
		"Time,Instance2\njan,a\n",
		"Time,Instance1,Widget\njan,a,b\n",
	}
	for _, input := range cases {
		_, err := ParsePanel(strings.NewReader(input))
		require.ErrorIs(t, err, core.ErrBadPanelHeader, "input %q", input)
	}
}

func TestParseModel(t *testing.T) {
	input := "flip,Probability\nh,0.5\nt,0.5\n"

	m, err := ParseModel("coin", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "coin", m.Name)
	require.Len(t, m.Variables, 1)
	assert.Equal(t, core.VariableKey("flip"), m.Variables[0].Key)
	assert.Equal(t, []string{"h", "t"}, m.Variables[0].States)
	assert.InDelta(t, 0.5, m.Table[dist.Tuple{"h"}.Key()], 1e-12)
}

func TestParseModelAccumulatesDuplicates(t *testing.T) {
	input := "flip,Probability\nh,0.25\nh,0.25\nt,0.5\n"

	m, err := ParseModel("split", strings.NewReader(input))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, m.Table[dist.Tuple{"h"}.Key()], 1e-12)
}

func TestParseModelBadProbability(t *testing.T) {
	input := "flip,Probability\nh,often\n"
	_, err := ParseModel("bad", strings.NewReader(input))
	require.ErrorIs(t, err, core.ErrBadNumberCell)
}

func TestParseModelHeaderValidation(t *testing.T) {
	_, err := ParseModel("m", strings.NewReader("flip,chance\nh,0.5\n"))
	require.Error(t, err)

	_, err = ParseModel("m", strings.NewReader("Probability\n0.5\n"))
	require.Error(t, err)
}
