package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("QUOTA_REDIS_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("QUOTA_KEY_PREFIX", "")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func redisFlag(mr *miniredis.Miniredis) string {
	return "--redis-url=redis://" + mr.Addr()
}

func TestIssueExplicitKey(t *testing.T) {
	mr := miniredis.RunT(t)

	stdout, _, err := executeCLI(t, "issue", "ABC123", "--uses", "3", redisFlag(mr))
	require.NoError(t, err)
	assert.Equal(t, "ABC123\t3\n", stdout)

	v, err := mr.Get("cardkey:ABC123")
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}

func TestIssueRefusesExistingKey(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("cardkey:ABC123", "1"))

	_, _, err := executeCLI(t, "issue", "ABC123", redisFlag(mr))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	v, _ := mr.Get("cardkey:ABC123")
	assert.Equal(t, "1", v)
}

func TestIssueGeneratedKeys(t *testing.T) {
	mr := miniredis.RunT(t)

	stdout, _, err := executeCLI(t, "issue", "--count", "3", "--uses", "5", redisFlag(mr))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		parts := strings.Split(line, "\t")
		require.Len(t, parts, 2)
		assert.Len(t, parts[0], 26)
		v, err := mr.Get("cardkey:" + parts[0])
		require.NoError(t, err)
		assert.Equal(t, "5", v)
	}
}

func TestIssueRejectsNonPositiveUses(t *testing.T) {
	mr := miniredis.RunT(t)

	_, _, err := executeCLI(t, "issue", "ABC123", "--uses", "0", redisFlag(mr))
	require.Error(t, err)
	assert.False(t, mr.Exists("cardkey:ABC123"))
}

func TestShow(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("cardkey:ABC123", "4"))
	require.NoError(t, mr.Set("cardkey:EMPTY", "0"))

	stdout, _, err := executeCLI(t, "show", "ABC123", redisFlag(mr))
	require.NoError(t, err)
	assert.Contains(t, stdout, "remaining: 4")
	assert.Contains(t, stdout, "state: active")

	stdout, _, err = executeCLI(t, "show", "EMPTY", redisFlag(mr))
	require.NoError(t, err)
	assert.Contains(t, stdout, "state: exhausted")

	_, _, err = executeCLI(t, "show", "NOPE", redisFlag(mr))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTopUpReactivatesExhaustedKey(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("cardkey:EMPTY", "0"))

	stdout, _, err := executeCLI(t, "topup", "EMPTY", "--uses", "5", redisFlag(mr))
	require.NoError(t, err)
	assert.Contains(t, stdout, "remaining: 5")

	_, _, err = executeCLI(t, "topup", "NOPE", "--uses", "5", redisFlag(mr))
	require.Error(t, err)
	assert.False(t, mr.Exists("cardkey:NOPE"), "topup never creates keys")
}

func TestTopUpRequiresUses(t *testing.T) {
	mr := miniredis.RunT(t)

	_, _, err := executeCLI(t, "topup", "ABC123", redisFlag(mr))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "uses" not set`)
}

func TestRevoke(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("cardkey:ABC123", "4"))

	stdout, _, err := executeCLI(t, "revoke", "ABC123", redisFlag(mr))
	require.NoError(t, err)
	assert.Equal(t, "revoked ABC123\n", stdout)
	assert.False(t, mr.Exists("cardkey:ABC123"))

	_, _, err = executeCLI(t, "revoke", "ABC123", redisFlag(mr))
	require.Error(t, err)
}

func TestPrefixAndEnvironment(t *testing.T) {
	mr := miniredis.RunT(t)

	root := newRootCmd()
	t.Setenv("QUOTA_REDIS_URL", "redis://"+mr.Addr())
	t.Setenv("QUOTA_KEY_PREFIX", "")
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"issue", "ABC123", "--prefix", "names:"})
	require.NoError(t, root.Execute())

	assert.True(t, mr.Exists("names:ABC123"))
	assert.False(t, mr.Exists("cardkey:ABC123"))
}

func TestMissingRedisURL(t *testing.T) {
	_, _, err := executeCLI(t, "show", "ABC123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis URL is required")
}

func TestKeyArgumentsAreTrimmed(t *testing.T) {
	mr := miniredis.RunT(t)

	stdout, _, err := executeCLI(t, "issue", "  ABC123 ", "--uses", "2", redisFlag(mr))
	require.NoError(t, err)
	assert.Equal(t, "ABC123\t2\n", stdout)

	stdout, _, err = executeCLI(t, "show", " ABC123", redisFlag(mr))
	require.NoError(t, err)
	assert.Contains(t, stdout, "remaining: 2")

	stdout, _, err = executeCLI(t, "topup", "ABC123 ", "--uses", "3", redisFlag(mr))
	require.NoError(t, err)
	assert.Contains(t, stdout, "remaining: 5")

	stdout, _, err = executeCLI(t, "revoke", "\tABC123\n", redisFlag(mr))
	require.NoError(t, err)
	assert.Equal(t, "revoked ABC123\n", stdout)
	assert.False(t, mr.Exists("cardkey:ABC123"))
}

func TestBlankKeyIsRejected(t *testing.T) {
	mr := miniredis.RunT(t)

	for _, sub := range [][]string{
		{"issue", "   "},
		{"show", " "},
		{"topup", " ", "--uses", "1"},
		{"revoke", ""},
	} {
		t.Run(sub[0], func(t *testing.T) {
			_, _, err := executeCLI(t, append(sub, redisFlag(mr))...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "card key must not be empty")
		})
	}
	assert.False(t, mr.Exists("cardkey:"))
}
