package cli

import (
	"fmt"
	"io"

	"github.com/OFFIS-RIT/annograph/internal/util"
	"github.com/OFFIS-RIT/annograph/pkg/frames"
	"github.com/OFFIS-RIT/annograph/pkg/logger"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// RemoveMode selects the removal protocol applied before rendering.
type RemoveMode string

const (
	RemoveNone      RemoveMode = "none"
	RemoveRelations RemoveMode = "relations"
	RemoveAll       RemoveMode = "all"
)

// ParseRemoveMode validates a --remove flag value.
func ParseRemoveMode(s string) (RemoveMode, error) {
	switch m := RemoveMode(s); m {
	case RemoveNone, RemoveRelations, RemoveAll:
		return m, nil
	default:
		return "", fmt.Errorf("unknown remove mode %q (want none, relations or all)", s)
	}
}

func newRenderCmd() *cobra.Command {
	var remove string
	var parallel int

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Print the canonical rendering of one or more fixture documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := ParseRemoveMode(remove)
			if err != nil {
				return err
			}
			if parallel < 1 {
				parallel = 1
			}

			outputs := make([]string, len(args))
			var eg errgroup.Group
			eg.SetLimit(parallel)
			for i, path := range args {
				eg.Go(func() error {
					out, err := renderFile(path, mode)
					if err != nil {
						return err
					}
					outputs[i] = out
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, out := range outputs {
				if len(args) > 1 {
					if _, err := fmt.Fprintf(w, "# %s\n", args[i]); err != nil {
						return err
					}
				}
				if _, err := io.WriteString(w, out); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&remove, "remove", util.GetEnvString("REMOVE", string(RemoveNone)),
		"removal protocol applied before rendering: none, relations or all")
	cmd.Flags().IntVar(&parallel, "parallel", util.GetEnvInt("PARALLEL", 4),
		"number of documents loaded concurrently")
	return cmd
}

func renderFile(path string, mode RemoveMode) (string, error) {
	doc, err := frames.LoadFile(path)
	if err != nil {
		return "", err
	}
	g, v, err := doc.Build()
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	switch mode {
	case RemoveRelations:
		res := v.RemoveAllRelations()
		logger.Info("[Render] Removed relations", "file", path, "relations", res.Relations)
	case RemoveAll:
		res := v.RemoveAllConstituentsAndRelations()
		logger.Info("[Render] Removed constituents and relations",
			"file", path, "constituents", res.Constituents, "relations", res.Relations)
	}

	if err := g.CheckConsistency(); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("[Render] Rendered document",
		"file", path, "graph", g.ID(), "constituents", g.Len(), "relations", g.RelationCount())
	return v.String(), nil
}
