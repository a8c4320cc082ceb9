package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/CodeStranger-Fred/narmbandit/bandit"
	"github.com/CodeStranger-Fred/narmbandit/testbed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg = testbed.DefaultConfig()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestArmsCommand(t *testing.T) {
	out, err := execute(t, "arms", "--arms", "4", "--seed", "3", "--color=false")
	require.NoError(t, err)
	assert.Contains(t, out, "quality")
	assert.Contains(t, out, "average")
}

func TestArmsCommandRejectsInvalidConfig(t *testing.T) {
	_, err := execute(t, "arms", "--sampled-truth=-1", "--color=false")
	assert.ErrorIs(t, err, bandit.ErrInvalidConfiguration)

	_, err = execute(t, "arms", "--arms", "0", "--color=false")
	assert.ErrorIs(t, err, bandit.ErrInvalidConfiguration)
}

func TestArmsCommandSampledTruth(t *testing.T) {
	out, err := execute(t, "arms", "--arms", "3", "--sampled-truth", "50", "--color=false")
	require.NoError(t, err)
	assert.Contains(t, out, "average")
}
