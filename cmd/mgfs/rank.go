package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/mgfs/internal/dataset"
	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"github.com/YuminosukeSato/mgfs/sklearn/feature_selection"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

func newRankCmd(a *app) *cobra.Command {
	var (
		f        selectorFlags
		plotPath string
		savePath string
	)

	cmd := &cobra.Command{
		Use:   "rank X.CSV [Y.CSV]",
		Short: "Print the features of X.CSV ordered by MGFS score",
		Long: `Print one line per feature of X.CSV in ranking order:

  rank  index  name  score

Y.CSV defaults to X.CSV and must have the same shape.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSelector(cmd, &f)
			if err != nil {
				return err
			}
			X, err := fitFromArgs(s, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			scores := s.Scores()
			for pos, idx := range s.Ranking() {
				fmt.Fprintf(out, "%d\t%d\t%s\t%.6g\n", pos+1, idx, X.Names[idx], scores.AtVec(idx))
			}

			if plotPath != "" {
				if err := writeScorePlot(s, X.Names, plotPath); err != nil {
					return err
				}
				a.logger.Info("Score chart written", "path", plotPath)
			}
			if savePath != "" {
				if err := saveSelector(s, savePath); err != nil {
					return err
				}
				a.logger.Info("Selector saved", "path", savePath)
			}
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&plotPath, "plot", "", "write a score chart (format from the extension: svg, png, pdf)")
	cmd.Flags().StringVar(&savePath, "save", "", "write the fitted selector (gob)")
	return cmd
}

// fitFromArgs loads X (and Y when given) and fits s. It returns X.
func fitFromArgs(s *feature_selection.MGFSSelector, args []string) (*dataset.Dataset, error) {
	X, err := dataset.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	Y := X
	if len(args) > 1 {
		if Y, err = dataset.ReadFile(args[1]); err != nil {
			return nil, err
		}
	}
	if err := s.Fit(X.X, Y.X); err != nil {
		return nil, err
	}
	return X, nil
}

func writeScorePlot(s *feature_selection.MGFSSelector, names []string, path string) error {
	p, err := s.Plot(names)
	if err != nil {
		return err
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return errors.NewValidationError("plot", "file name needs an extension", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := feature_selection.WritePlot(p, file, format, 6*vg.Inch, 4*vg.Inch); err != nil {
		file.Close()
		return err
	}
	return errors.WithStack(file.Close())
}

func saveSelector(s *feature_selection.MGFSSelector, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := s.Save(file); err != nil {
		file.Close()
		return err
	}
	return errors.WithStack(file.Close())
}
