package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootHelpNamesProgramme(t *testing.T) {
	require.Equal(t, "MaPrimeAdapt eligibility wizard", rootCmd.Short)
	require.NotContains(t, rootCmd.Long, "'")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	require.NoError(t, rootCmd.Help())
	require.True(t, strings.HasPrefix(out.String(), "primeadapt serves the MaPrimeAdapt eligibility wizard"))
}
