package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCommand(t *testing.T) {
	commands := []string{"add", "list", "search", "save", "exit"}

	tests := []struct {
		name      string
		prefix    string
		want      string
		wantError bool
		errorMsg  string
	}{
		{name: "exact match", prefix: "list", want: "list"},
		{name: "exact match case insensitive", prefix: "LIST", want: "list"},
		{name: "surrounding space ignored", prefix: "  add \n", want: "add"},
		{name: "unique prefix a matches add", prefix: "a", want: "add"},
		{name: "unique prefix se matches search", prefix: "se", want: "search"},
		{name: "unique prefix sa matches save", prefix: "sa", want: "save"},
		{name: "unique prefix e matches exit", prefix: "e", want: "exit"},
		{
			name:      "ambiguous prefix s matches search and save",
			prefix:    "s",
			wantError: true,
			errorMsg:  "ambiguous command",
		},
		{
			name:      "no match",
			prefix:    "delete",
			wantError: true,
			errorMsg:  "unknown command",
		},
		{
			name:      "empty input",
			prefix:    "",
			wantError: true,
			errorMsg:  "no command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchCommand(tt.prefix, commands)

			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMatchCommandEmptyCommands(t *testing.T) {
	_, err := MatchCommand("list", []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
