package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sha2sum.org/sha2sum/hashutil"
	"sha2sum.org/sha2sum/logging"
)

// sourcesFromArgs maps file operands to sources. No operands, or "-",
// reads from in. Only the first "-" reads in; it drains the stream, so
// later ones hash the empty message.
func sourcesFromArgs(args []string, in io.Reader) []hashutil.Source {
	if len(args) == 0 {
		return []hashutil.Source{hashutil.ReaderSource(hashutil.StdinName, in)}
	}
	sources := make([]hashutil.Source, len(args))
	stdinTaken := false
	for i, arg := range args {
		if arg != hashutil.StdinName {
			sources[i] = hashutil.FileSource(arg)
			continue
		}
		r := in
		if stdinTaken {
			r = strings.NewReader("")
		}
		stdinTaken = true
		sources[i] = hashutil.ReaderSource(hashutil.StdinName, r)
	}
	return sources
}

// runHash prints one checksum line per source in operand order. Without
// keep_going the first unreadable source ends the run.
func runHash(cmd *cobra.Command, opts *options, args []string) error {
	var (
		out      = cmd.OutOrStdout()
		hasher   = hashutil.NewHasher(opts.cfg.Hash)
		firstErr error
	)

	err := hasher.Each(cmd.Context(), sourcesFromArgs(args, cmd.InOrStdin()), func(r hashutil.Result) error {
		if r.Err != nil {
			logging.CPrint(logging.ERROR, "fail on hashing source", logging.LogFormat{"source": r.Name, "err": r.Err})
			if !opts.cfg.Hash.KeepGoing {
				return r.Err
			}
			if firstErr == nil {
				firstErr = r.Err
			}
			return nil
		}
		_, err := fmt.Fprintln(out, hashutil.FormatChecksum(r.Digest, r.Name))
		return err
	})
	if err != nil {
		return err
	}
	return firstErr
}
