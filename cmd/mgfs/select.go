package main

import (
	"io"
	"os"

	"github.com/YuminosukeSato/mgfs/internal/dataset"
	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

func newSelectCmd(a *app) *cobra.Command {
	var (
		f          selectorFlags
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "select X.CSV [Y.CSV]",
		Short: "Write the top-k MGFS features of X.CSV as CSV",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSelector(cmd, &f)
			if err != nil {
				return err
			}
			X, err := fitFromArgs(s, args)
			if err != nil {
				return err
			}

			selected, err := s.Transform(X.X)
			if err != nil {
				return err
			}
			support, err := s.GetSupport()
			if err != nil {
				return err
			}
			names := dataset.Select(X.Names, support)

			if err := writeSelected(cmd.OutOrStdout(), outputPath, names, selected); err != nil {
				return err
			}
			a.logger.Info("Features selected", "selected", len(names), "total", len(X.Names))
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output CSV file (default stdout)")
	return cmd
}

// writeSelected writes the selected columns to path, or to stdout when path is
// empty. A failed close is reported since it can drop buffered rows.
func writeSelected(stdout io.Writer, path string, names []string, selected mat.Matrix) error {
	if path == "" {
		return dataset.WriteCSV(stdout, names, selected)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := dataset.WriteCSV(file, names, selected); err != nil {
		file.Close()
		return err
	}
	return errors.WithStack(file.Close())
}
