package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	apperrors "sha2sum.org/sha2sum/errors"
	"sha2sum.org/sha2sum/hashutil"
	"sha2sum.org/sha2sum/logging"
)

func openChecksumList(name string, in io.Reader) (io.ReadCloser, error) {
	if name == hashutil.StdinName {
		return io.NopCloser(in), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(apperrors.New(apperrors.ErrOpenFile, err), "open %s", name)
	}
	return f, nil
}

// runCheck verifies every entry of the checksum list named by --check.
// Mismatches never stop the run; unreadable files do unless keep_going is set.
func runCheck(cmd *cobra.Command, opts *options, args []string) error {
	if opts.checkFile == "" {
		return apperrors.New(apperrors.ErrUsage, errors.New("--check requires a checksum file"))
	}
	if len(args) > 0 {
		return apperrors.New(apperrors.ErrUsage, errors.Errorf("unexpected operand %q with --check", args[0]))
	}

	list, err := openChecksumList(opts.checkFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer list.Close()

	entries, err := hashutil.ReadChecksums(list)
	if err != nil {
		return errors.Wrapf(err, "read checksum list %s", opts.checkFile)
	}

	var (
		out        = cmd.OutOrStdout()
		hasher     = hashutil.NewHasher(opts.cfg.Hash)
		mismatched int
		unreadable int
		firstErr   error
	)
	err = hasher.Verify(cmd.Context(), entries, func(v hashutil.Verification) error {
		name := v.Entry.Name
		switch {
		case v.Result.Err != nil:
			unreadable++
			logging.CPrint(logging.ERROR, "fail on hashing listed file", logging.LogFormat{
				"file": name,
				"line": v.Entry.Line,
				"err":  v.Result.Err,
			})
			if _, err := fmt.Fprintf(out, "%s: FAILED open or read\n", name); err != nil {
				return err
			}
			if !opts.cfg.Hash.KeepGoing {
				return v.Result.Err
			}
			if firstErr == nil {
				firstErr = v.Result.Err
			}
			return nil
		case !v.OK():
			mismatched++
			logging.CPrint(logging.WARN, "digest mismatch", logging.LogFormat{
				"file":   name,
				"expect": v.Entry.Digest,
				"actual": v.Result.Digest,
			})
			_, err := fmt.Fprintf(out, "%s: FAILED\n", name)
			return err
		default:
			_, err := fmt.Fprintf(out, "%s: OK\n", name)
			return err
		}
	})
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	if unreadable > 0 {
		fmt.Fprintf(errOut, "WARNING: %d listed file(s) could not be read\n", unreadable)
	}
	if mismatched > 0 {
		fmt.Fprintf(errOut, "WARNING: %d computed checksum(s) did NOT match\n", mismatched)
		return apperrors.New(apperrors.ErrChecksumMismatch,
			errors.Errorf("%d of %d computed checksums did not match", mismatched, len(entries)))
	}
	return firstErr
}
