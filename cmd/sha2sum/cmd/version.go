package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	apperrors "sha2sum.org/sha2sum/errors"
	"sha2sum.org/sha2sum/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of sha2sum",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return apperrors.New(apperrors.ErrUsage, errors.Errorf("unexpected argument %q", args[0]))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Detail())
			return err
		},
	}
}
