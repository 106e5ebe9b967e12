package cmd

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sha2sum.org/sha2sum/errors"
)

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	abc := writeFile(t, dir, "abc.txt", "abc")
	empty := writeFile(t, dir, "empty.txt", "")
	list := writeFile(t, dir, "SHA256SUMS", fmt.Sprintf(
		"# generated\n%s %s\n\n%s  %s\n", digestABC, abc, digestEmpty, empty))

	out, errOut, err := execute(t, "", "--check", list)
	require.NoError(t, err)
	assert.Equal(t, abc+": OK\n"+empty+": OK\n", out)
	assert.Empty(t, errOut)
}

func TestCheckFromStdin(t *testing.T) {
	dir := t.TempDir()
	abc := writeFile(t, dir, "abc.txt", "abc")

	out, _, err := execute(t, digestABC+" *"+abc+"\n", "-c", "-")
	require.NoError(t, err)
	assert.Equal(t, abc+": OK\n", out)
}

func TestCheckOutputOfHash(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "hello world\n")
	b := writeFile(t, dir, "b.txt", "abc")

	sums, _, err := execute(t, "", a, b)
	require.NoError(t, err)
	list := writeFile(t, dir, "sums", sums)

	out, _, err := execute(t, "", "-c", list, "--workers", "1")
	require.NoError(t, err)
	assert.Equal(t, a+": OK\n"+b+": OK\n", out)
}

func TestCheckMismatch(t *testing.T) {
	dir := t.TempDir()
	abc := writeFile(t, dir, "abc.txt", "abc")
	other := writeFile(t, dir, "other.txt", "abd")
	list := writeFile(t, dir, "sums", fmt.Sprintf("%s %s\n%s %s\n", digestABC, other, digestABC, abc))

	out, errOut, err := execute(t, "", "-c", list)
	require.Error(t, err)
	assert.Equal(t, other+": FAILED\n"+abc+": OK\n", out, "mismatches do not stop the run")
	assert.Contains(t, errOut, "1 computed checksum(s) did NOT match")
	assert.Equal(t, uint32(apperrors.ErrChecksumMismatch), apperrors.Code(err))
	assert.Equal(t, 1, apperrors.ExitCode(err))
}

func TestCheckUnreadable(t *testing.T) {
	dir := t.TempDir()
	abc := writeFile(t, dir, "abc.txt", "abc")
	missing := filepath.Join(dir, "missing.txt")
	list := writeFile(t, dir, "sums", fmt.Sprintf("%s %s\n%s %s\n", digestABC, missing, digestABC, abc))

	out, _, err := execute(t, "", "-c", list)
	require.Error(t, err)
	assert.Equal(t, missing+": FAILED open or read\n", out)
	assert.Equal(t, uint32(apperrors.ErrOpenFile), apperrors.Code(err))

	out, errOut, err := execute(t, "", "-c", list, "--keep_going")
	require.Error(t, err)
	assert.Equal(t, missing+": FAILED open or read\n"+abc+": OK\n", out)
	assert.Contains(t, errOut, "1 listed file(s) could not be read")
	assert.Equal(t, uint32(apperrors.ErrOpenFile), apperrors.Code(err))
}

func TestCheckErrors(t *testing.T) {
	dir := t.TempDir()
	malformed := writeFile(t, dir, "malformed", "not a checksum line\n")

	tests := []struct {
		name string
		args []string
		code uint32
		exit int
	}{
		{"malformed list", []string{"-c", malformed}, apperrors.ErrChecksumFormat, 1},
		{"missing list", []string{"-c", filepath.Join(dir, "none")}, apperrors.ErrOpenFile, 1},
		{"empty list name", []string{"-c", ""}, apperrors.ErrUsage, 2},
		{"operands with check", []string{"-c", malformed, "extra.txt"}, apperrors.ErrUsage, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := execute(t, "", test.args...)
			require.Error(t, err)
			assert.Equal(t, test.code, apperrors.Code(err), "%v", err)
			assert.Equal(t, test.exit, apperrors.ExitCode(err))
		})
	}
}
