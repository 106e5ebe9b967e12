package hashutil

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"sha2sum.org/sha2sum/crypto/sha256"
	apperrors "sha2sum.org/sha2sum/errors"
)

// ChecksumEntry is one "<digest> <name>" line of a checksum list.
type ChecksumEntry struct {
	Digest sha256.Digest
	Name   string
	Line   int
}

// FormatChecksum renders the line printed for a hashed source.
func FormatChecksum(d sha256.Digest, name string) string {
	return fmt.Sprintf("%s %s", d, name)
}

// ParseChecksumLine parses "<64 hex> <name>". The two character separators
// "  " and " *" written by coreutils are accepted as well.
func ParseChecksumLine(line string) (ChecksumEntry, error) {
	line = strings.TrimRight(line, "\r\n")
	const hexLen = sha256.Size * 2
	if len(line) < hexLen+2 || line[hexLen] != ' ' {
		return ChecksumEntry{}, apperrors.New(apperrors.ErrChecksumFormat, nil)
	}

	d, err := sha256.DecodeDigest(line[:hexLen])
	if err != nil {
		return ChecksumEntry{}, apperrors.New(apperrors.ErrChecksumFormat, err)
	}

	name := line[hexLen+1:]
	if len(name) > 1 && (name[0] == ' ' || name[0] == '*') {
		name = name[1:]
	}
	return ChecksumEntry{Digest: d, Name: name}, nil
}

// ReadChecksums parses a checksum list. Blank lines and lines starting with
// '#' are skipped.
func ReadChecksums(r io.Reader) ([]ChecksumEntry, error) {
	var entries []ChecksumEntry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := ParseChecksumLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		entry.Line = lineNo
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.New(apperrors.ErrReadFile, err)
	}
	return entries, nil
}

// Verification is the outcome of checking one checksum entry.
type Verification struct {
	Entry  ChecksumEntry
	Result Result
}

// OK reports whether the source was hashed and matched the listed digest.
func (v Verification) OK() bool {
	return v.Result.Err == nil && v.Result.Digest == v.Entry.Digest
}

// Verify hashes the file named by every entry and calls fn with each
// verification in list order. Errors from fn stop the run.
func (h *Hasher) Verify(ctx context.Context, entries []ChecksumEntry, fn func(Verification) error) error {
	sources := make([]Source, len(entries))
	for i, entry := range entries {
		sources[i] = FileSource(entry.Name)
	}
	i := 0
	return h.Each(ctx, sources, func(r Result) error {
		v := Verification{Entry: entries[i], Result: r}
		i++
		return fn(v)
	})
}
