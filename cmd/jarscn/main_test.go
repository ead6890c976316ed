package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/jarscn/domain"
	"github.com/ludo-technologies/jarscn/internal/version"
)

// runCLI executes the root command with args and returns stdout
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Short()+"\n", out)

	out, err = runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "jarscn "))
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"analyze", "graph", "init", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category domain.ErrorCategory
	}{
		{"input", domain.NewInvalidInputError("input file must be a jar file: a.zip", nil), domain.ErrorCategoryInput},
		{"config", domain.NewConfigError("failed to load configuration", errors.New("bad toml")), domain.ErrorCategoryConfig},
		{"export", domain.NewExportError("cannot reach neo4j", nil), domain.ErrorCategoryProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err)
			assert.Contains(t, buf.String(), "Error: "+tt.err.Error())
			assert.Contains(t, buf.String(), string(tt.category))
		})
	}
}
