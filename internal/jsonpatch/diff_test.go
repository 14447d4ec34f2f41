package jsonpatch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"primeadapt/internal/model"
)

func TestDiffResponses(t *testing.T) {
	before := model.Responses{
		AgeBracket:    model.Age60To69,
		HouseholdSize: 2,
		IncomeBracket: model.Tranche1,
	}
	after := model.Responses{
		AgeBracket:    model.Age60To69,
		HouseholdSize: 3,
		PostalCode:    "69000",
		ProjectTypes:  []model.ProjectType{model.ProjectStairlift},
	}

	ops, err := Diff(before, after)
	require.NoError(t, err)

	require.Len(t, ops, 4)
	require.Equal(t, Op{Op: "replace", Path: "/household_size", Value: []byte("3")}, ops[0])
	require.Equal(t, "remove", ops[1].Op)
	require.Equal(t, "/income_bracket", ops[1].Path)
	require.Equal(t, Op{Op: "add", Path: "/postal_code", Value: []byte(`"69000"`)}, ops[2])
	require.Equal(t, "/project_types", ops[3].Path)
	require.Equal(t, "replace", ops[3].Op)
	require.JSONEq(t, `["stairlift"]`, string(ops[3].Value))
}

func TestDiffIdenticalIsEmpty(t *testing.T) {
	r := model.Responses{AgeBracket: model.Age70AndUp, Consent: true}
	ops, err := Diff(r, r.Clone())
	require.NoError(t, err)
	require.Empty(t, ops)
}

func TestEscapeKey(t *testing.T) {
	require.Equal(t, "a~1b~0c", escapeKey("a/b~c"))
}
