package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route <src-row> <src-col> <dst-row> <dst-col>",
	Short: "Find the shortest path between two cells",
	Long: `Find the shortest path between two cells and print it, the map with the
route drawn on it, and the verification verdict.

Examples:
  grid-planner route 0 0 14 19
  grid-planner route --map maps/warehouse.yaml --color 3 4 10 2`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		coords, err := parseCoords(args)
		if err != nil {
			return err
		}
		src := Cell{Row: coords[0], Col: coords[1]}
		dst := Cell{Row: coords[2], Col: coords[3]}

		planner := NewPlanner(grid, cfg.PlannerOptions()...)
		result, err := planner.Route(src, dst)
		if err != nil && !errors.Is(err, ErrInconsistentVerification) {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Found {
			fmt.Fprint(out, FormatPath(*result.Path))
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, RenderRoute(grid, result, cfg.Color))
		fmt.Fprintln(out)
		fmt.Fprintln(out, Summary(result))
		return err
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Answer queries read from standard input",
	Long: `Print the map, then read "src-row src-col dst-row dst-col" lines until EOF
and answer each one with the path, the map and the verification verdict.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		planner := NewPlanner(grid, cfg.PlannerOptions()...)
		return runRepl(cmd.InOrStdin(), cmd.OutOrStdout(), planner, cfg.Color)
	},
}

// runRepl is the interactive query loop. Bad lines are reported and skipped;
// only I/O errors end it early.
func runRepl(in io.Reader, out io.Writer, planner *Planner, styled bool) error {
	g := planner.Grid()
	fmt.Fprint(out, RenderMap(g, styled))
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		coords, err := parseCoords(strings.Fields(line))
		if err != nil {
			fmt.Fprintln(out, "invalid input!")
			continue
		}
		src := Cell{Row: coords[0], Col: coords[1]}
		dst := Cell{Row: coords[2], Col: coords[3]}
		if !g.InBounds(src) || !g.InBounds(dst) {
			fmt.Fprintln(out, "invalid input!")
			continue
		}

		result, err := planner.Route(src, dst)
		if err != nil && !errors.Is(err, ErrInconsistentVerification) {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		if !result.Found {
			fmt.Fprintf(out, "(%d, %d) cannot reach (%d, %d)\n", src.Row, src.Col, dst.Row, dst.Col)
			continue
		}

		fmt.Fprint(out, FormatPath(*result.Path))
		fmt.Fprintf(out, "shortest number of steps from (%d, %d) to (%d, %d): %d\n",
			src.Row, src.Col, dst.Row, dst.Col, result.Path.Steps)
		fmt.Fprint(out, RenderRoute(g, result, styled))
		fmt.Fprintln(out)
		switch {
		case result.Verification == nil:
		case result.Verification.Passed:
			fmt.Fprintln(out, "correct")
		default:
			fmt.Fprintln(out, "wrong")
		}
	}
	return scanner.Err()
}

var (
	showAdjacency bool
	heuristicTo   []int
	depthFrom     []int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the map and its derived tables",
	Long: `Print the map. Optionally print the adjacency masks, the heuristic table
towards a destination, or the breadth-first depth table from a source.

Examples:
  grid-planner inspect --adjacency
  grid-planner inspect --heuristic 14,19 --depth 0,0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, RenderMap(grid, cfg.Color))
		fmt.Fprintf(out, "\n%dx%d, %d obstacles, %d edges\n", grid.Height(), grid.Width(), grid.ObstacleCount(), len(grid.Edges()))

		if showAdjacency {
			fmt.Fprintln(out, "\nadjacency:")
			fmt.Fprint(out, RenderAdjacency(grid))
		}

		if len(heuristicTo) > 0 {
			dst, err := cellFromFlag("heuristic", heuristicTo)
			if err != nil {
				return err
			}
			l := NewLedger(grid)
			l.Reset(dst, dst)
			fmt.Fprintf(out, "\nheuristic to (%d, %d):\n", dst.Row, dst.Col)
			fmt.Fprint(out, RenderHeuristic(l))
		}

		if len(depthFrom) > 0 {
			src, err := cellFromFlag("depth", depthFrom)
			if err != nil {
				return err
			}
			l := NewLedger(grid)
			if _, err := BreadthFirst(l, src, src, WithQueueCapacity(cfg.QueueCapacity)); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nbreadth-first depth from (%d, %d):\n", src.Row, src.Col)
			fmt.Fprint(out, RenderDepth(l))
		}
		return nil
	},
}

func cellFromFlag(name string, values []int) (Cell, error) {
	if len(values) != 2 {
		return Cell{}, fmt.Errorf("--%s expects row,col", name)
	}
	c := Cell{Row: values[0], Col: values[1]}
	return c, grid.Validate(c)
}

func parseCoords(fields []string) ([4]int, error) {
	var coords [4]int
	if len(fields) != 4 {
		return coords, fmt.Errorf("expected 4 coordinates, got %d", len(fields))
	}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return coords, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		coords[i] = n
	}
	return coords, nil
}

func init() {
	inspectCmd.Flags().BoolVar(&showAdjacency, "adjacency", false, "print adjacency masks in hex")
	inspectCmd.Flags().IntSliceVar(&heuristicTo, "heuristic", nil, "print the heuristic table towards row,col")
	inspectCmd.Flags().IntSliceVar(&depthFrom, "depth", nil, "print breadth-first depths from row,col")

	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(inspectCmd)
}
