package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghgcalc/internal/cli"
	"github.com/rshade/ghgcalc/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.String())
		require.NotNil(t, root)
		assert.Equal(t, "ghgcalc", root.Use)

		names := make([]string, 0, len(root.Commands()))
		for _, c := range root.Commands() {
			names = append(names, c.Name())
		}
		assert.Subset(t, names, []string{"calculate", "convert", "equivalent", "units", "factors", "config"})
	})
}

func TestExtractExitCode(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantExitCode int
	}{
		{
			name:         "ExitError with exit code 2",
			err:          &cli.ExitError{ExitCode: 2, Reason: "1 of 3 calculations failed"},
			wantExitCode: 2,
		},
		{
			name:         "wrapped ExitError",
			err:          errors.Join(errors.New("outer"), &cli.ExitError{ExitCode: 3, Reason: "wrapped"}),
			wantExitCode: 3,
		},
		{
			name:         "generic error",
			err:          errors.New("generic error"),
			wantExitCode: 1,
		},
		{
			name:         "nil error returns 0",
			err:          nil,
			wantExitCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantExitCode, extractExitCode(tt.err))
		})
	}
}
