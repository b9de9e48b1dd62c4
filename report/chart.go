package report

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/weiihann/skipbench/harness"
	"github.com/weiihann/skipbench/sweep"
)

func variantColor(v harness.Variant) color.Color {
	if v == harness.VariantAtomic {
		return color.RGBA{R: 255, G: 127, B: 14, A: 255} // orange
	}

	return color.RGBA{R: 31, G: 119, B: 180, A: 255} // blue
}

// RenderThroughputCharts writes a single PNG holding the read and write
// throughput charts side by side: x is the reader count, y is ops/sec,
// one line per variant.
func RenderThroughputCharts(table *sweep.Table, path string) error {
	readPlot, err := throughputPlot(table,
		"Read Throughput vs Number of Readers",
		"Read Throughput (ops/sec)",
		func(r harness.BenchmarkResult) float64 { return r.ReadThroughput },
	)
	if err != nil {
		return err
	}

	writePlot, err := throughputPlot(table,
		"Write Throughput vs Number of Readers",
		"Write Throughput (ops/sec)",
		func(r harness.BenchmarkResult) float64 { return r.WriteThroughput },
	)
	if err != nil {
		return err
	}

	img := vgimg.New(15*vg.Inch, 6*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter * 5}

	canvases := plot.Align(
		[][]*plot.Plot{{readPlot, writePlot}}, tiles, dc,
	)
	readPlot.Draw(canvases[0][0])
	writePlot.Draw(canvases[0][1])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()

		return fmt.Errorf("write chart %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}

func throughputPlot(
	table *sweep.Table,
	title, yLabel string,
	metric func(harness.BenchmarkResult) float64,
) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Number of Readers"
	p.Y.Label.Text = yLabel

	for _, v := range harness.Variants() {
		pts := make(plotter.XYs, len(table.Rows))
		for i, row := range table.Rows {
			pts[i].X = float64(row.Readers)
			pts[i].Y = metric(row.Result(v))
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("plot %s series: %w", v, err)
		}

		line.Color = variantColor(v)
		line.Width = vg.Points(2)

		p.Add(line)
		p.Legend.Add(v.String(), line)
	}

	p.Legend.Top = true

	return p, nil
}
