package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/launchdash/launchdash/server/internal/render"
)

var renderFlags struct {
	selectionFlags
	out    string
	format string
	width  int
	height int
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the pie and scatter charts to image files",
	RunE:  runRender,
}

func init() {
	f := renderCmd.Flags()
	renderFlags.register(f)
	f.StringVar(&renderFlags.out, "out", ".", "Output directory")
	f.StringVar(&renderFlags.format, "format", string(render.PNG), "Image format: png|svg")
	f.IntVar(&renderFlags.width, "width", render.DefaultWidth, "Chart width in pixels")
	f.IntVar(&renderFlags.height, "height", render.DefaultHeight, "Chart height in pixels")
}

func runRender(cmd *cobra.Command, _ []string) error {
	fm, err := render.ParseFormat(renderFlags.format)
	if err != nil {
		return err
	}
	v, err := loadView()
	if err != nil {
		return err
	}
	sel, err := renderFlags.resolve(cmd, v.Dataset())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(renderFlags.out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	o := render.Options{Width: renderFlags.width, Height: renderFlags.height, Format: fm}

	pie, err := v.PieData(sel.Site)
	if err != nil {
		return fmt.Errorf("pie: %w", err)
	}
	scatter, err := v.ScatterData(sel.Site, sel.PayloadRange)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}

	pieFile := filepath.Join(renderFlags.out, "pie."+fm.Ext())
	scatterFile := filepath.Join(renderFlags.out, "scatter."+fm.Ext())

	var g errgroup.Group
	g.Go(func() error {
		var buf bytes.Buffer
		if err := render.Pie(&buf, pie, o); err != nil {
			return fmt.Errorf("render pie: %w", err)
		}
		return os.WriteFile(pieFile, buf.Bytes(), 0o644)
	})
	g.Go(func() error {
		var buf bytes.Buffer
		if err := render.Scatter(&buf, scatter, o); err != nil {
			return fmt.Errorf("render scatter: %w", err)
		}
		return os.WriteFile(scatterFile, buf.Bytes(), 0o644)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "wrote %s\n", pieFile)
	fmt.Fprintf(out, "wrote %s\n", scatterFile)
	return nil
}
