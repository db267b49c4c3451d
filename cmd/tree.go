package cmd

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/pkg/profiling"
	"github.com/grovetools/jsonview/pkg/tree"
	"github.com/grovetools/jsonview/tui/components/jsontree"
	"github.com/grovetools/jsonview/tui/theme"
)

type treeOptions struct {
	search         string
	regex          bool
	level          int
	all            bool
	selectPatterns []string
}

// nodeOutput is the --json form of one tree row.
type nodeOutput struct {
	Path     string `json:"path"`
	JSONPath string `json:"jsonPath"`
	Key      string `json:"key"`
	Type     string `json:"type"`
	Depth    int    `json:"depth"`
	Summary  string `json:"summary"`
	Expanded bool   `json:"expanded,omitempty"`
	Match    bool   `json:"match,omitempty"`
}

func toOutput(n *tree.Node) nodeOutput {
	return nodeOutput{
		Path:     n.Path().String(),
		JSONPath: n.JSONPath(),
		Key:      n.Key(),
		Type:     n.Kind().String(),
		Depth:    n.Depth(),
		Summary:  tree.Summary(n),
		Expanded: n.HasChildren() && n.Expanded(),
		Match:    n.MatchesFilter(),
	}
}

// NewTreeCmd prints the document the way the viewer draws it.
func NewTreeCmd() *cobra.Command {
	var opts treeOptions

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print a JSON document as a tree",
		Long: `Print a JSON document as a tree.

By default the root and its direct children are expanded. A search hides
every branch without a match; --select limits the output to the subtrees
whose slash-separated path matches one of the patterns.

Examples:
  jsonview tree package.json --level 1
  cat data.json | jsonview tree --search "error" --all
  jsonview tree users.json --select "users/*/name" --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Only show branches matching this text")
	cmd.Flags().BoolVarP(&opts.regex, "regex", "r", false, "Treat the search as a regular expression")
	cmd.Flags().IntVarP(&opts.level, "level", "l", -1, "Expand nodes shallower than this depth")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Expand every node")
	cmd.Flags().StringSliceVar(&opts.selectPatterns, "select", nil, "Path patterns such as users/*/name or **/id")

	return cmd
}

func runTree(cmd *cobra.Command, args []string, opts treeOptions) error {
	logger := cli.GetLogger(cmd)

	doc, name, err := readDocument(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	level := opts.level
	if !cmd.Flags().Changed("level") {
		level = cfg.InitialLevel()
	}
	regex := opts.regex || (!cmd.Flags().Changed("regex") && cfg.Search.Regex)

	span := profiling.Start("build")
	root := tree.Build(doc)
	switch {
	case opts.all:
		root = tree.ExpandAll(root)
	case level >= 0:
		root = tree.ExpandToLevel(root, level)
	}
	span.Stop()

	span = profiling.Start("filter")
	root = tree.Filter(root, opts.search, regex)
	span.Stop()

	roots := []*tree.Node{root}
	if len(opts.selectPatterns) > 0 {
		if roots, err = tree.Select(root, opts.selectPatterns...); err != nil {
			return err
		}
	}
	logger.WithField("file", name).WithField("roots", len(roots)).Debug("tree built")

	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		var rows []nodeOutput
		for _, r := range roots {
			for _, n := range tree.Visible(r) {
				rows = append(rows, toOutput(n))
			}
		}
		data, err := gojson.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, r := range roots {
		if rendered := jsontree.Render(theme.DefaultTheme, r); rendered != "" {
			fmt.Fprintln(out, rendered)
		}
	}
	return nil
}
