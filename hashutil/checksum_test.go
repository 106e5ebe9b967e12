package hashutil

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sha2sum.org/sha2sum/crypto/sha256"
	apperrors "sha2sum.org/sha2sum/errors"
)

const abcDigest = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

func TestParseChecksumLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		expect string
		code   uint32
	}{
		{name: "single space", line: abcDigest + " input-01.txt", expect: "input-01.txt"},
		{name: "two spaces", line: abcDigest + "  input-01.txt", expect: "input-01.txt"},
		{name: "binary marker", line: abcDigest + " *input-01.txt", expect: "input-01.txt"},
		{name: "crlf", line: abcDigest + " input-01.txt\r", expect: "input-01.txt"},
		{name: "name with spaces", line: abcDigest + " my file.txt", expect: "my file.txt"},
		{name: "no name", line: abcDigest + " ", code: apperrors.ErrChecksumFormat},
		{name: "missing separator", line: abcDigest + "input-01.txt", code: apperrors.ErrChecksumFormat},
		{name: "short digest", line: "ba7816bf input-01.txt", code: apperrors.ErrChecksumFormat},
		{name: "not hex", line: strings.Repeat("g", 64) + " input-01.txt", code: apperrors.ErrChecksumFormat},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			entry, err := ParseChecksumLine(test.line)
			if test.code != 0 {
				require.Error(t, err)
				assert.Equal(t, test.code, apperrors.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expect, entry.Name)
			assert.Equal(t, abcDigest, entry.Digest.String())
		})
	}
}

func TestFormatChecksumRoundTrip(t *testing.T) {
	d, err := sha256.DecodeDigest(abcDigest)
	require.NoError(t, err)
	line := FormatChecksum(d, "input-01.txt")
	assert.Equal(t, abcDigest+" input-01.txt", line)

	entry, err := ParseChecksumLine(line)
	require.NoError(t, err)
	assert.Equal(t, d, entry.Digest)
	assert.Equal(t, "input-01.txt", entry.Name)
}

func TestReadChecksums(t *testing.T) {
	list := "# generated by sha2sum\n" +
		abcDigest + " a.txt\n" +
		"\n" +
		abcDigest + "  b.txt\n"
	entries, err := ReadChecksums(strings.NewReader(list))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name)
	assert.Equal(t, 2, entries[0].Line)
	assert.Equal(t, "b.txt", entries[1].Name)
	assert.Equal(t, 4, entries[1].Line)

	_, err = ReadChecksums(strings.NewReader(abcDigest + " a.txt\nnot a checksum\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, uint32(apperrors.ErrChecksumFormat), apperrors.Code(err))
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", []byte("abc"))
	bad := writeFile(t, dir, "bad.txt", []byte("abd"))
	d, err := sha256.DecodeDigest(abcDigest)
	require.NoError(t, err)

	entries := []ChecksumEntry{
		{Digest: d, Name: good},
		{Digest: d, Name: bad},
		{Digest: d, Name: filepath.Join(dir, "missing.txt")},
	}
	var got []Verification
	err = newTestHasher(2, 0).Verify(context.Background(), entries, func(v Verification) error {
		got = append(got, v)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.True(t, got[0].OK())
	assert.False(t, got[1].OK())
	assert.NoError(t, got[1].Result.Err)
	assert.False(t, got[2].OK())
	assert.Error(t, got[2].Result.Err)
	for i, v := range got {
		assert.Equal(t, entries[i], v.Entry)
	}
}
