package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"cocktail-recommender/internal/core/match"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &buf
	err := cmd.Run(context.Background(), append([]string{"recommend"}, args...))
	return buf.String(), err
}

func TestRecommendCommand_JSON(t *testing.T) {
	out, err := runCommand(t,
		"--select", "KOVAL Coffee Liqueur",
		"--logic", "ALL",
		"--format", "json",
	)
	require.NoError(t, err)

	var resp struct {
		Recommendations []match.Recipe `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	names := make([]string, 0, len(resp.Recommendations))
	for _, r := range resp.Recommendations {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Espresso Mule", "Classic KOVAL Mule"}, names)
}

func TestRecommendCommand_Text(t *testing.T) {
	out, err := runCommand(t, "--select", "KOVAL Vodka", "--select", "KOVAL Coffee Liqueur", "--logic", "and")
	require.NoError(t, err)
	assert.Contains(t, out, "Espresso Mule\n")
	assert.Contains(t, out, "Classic KOVAL Mule\n")
	assert.NotContains(t, out, "Ginger Vodka Smash")
}

func TestRecommendCommand_NoSelection(t *testing.T) {
	out, err := runCommand(t)
	require.NoError(t, err)
	assert.Equal(t, "No matching recipes.\n", out)
}

func TestRecommendCommand_All(t *testing.T) {
	out, err := runCommand(t, "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Shirley Temple\n")
}

func TestRecommendCommand_Products(t *testing.T) {
	out, err := runCommand(t, "--products")
	require.NoError(t, err)
	assert.Contains(t, out, "KOVAL Coffee Liqueur")
}

func TestRecommendCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "invalid logic", args: []string{"--select", "KOVAL Vodka", "--logic", "XOR"}, want: "XOR"},
		{name: "invalid format", args: []string{"--format", "yaml"}, want: "unknown output format"},
		{name: "missing catalog dir", args: []string{"--catalog", "/nonexistent/catalog"}, want: "failed to load catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
