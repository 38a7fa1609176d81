//go:build !nochart

package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/weiihann/zkstat/bench"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	figureWidth  = 14 * vg.Inch
	figureHeight = 10 * vg.Inch
	defaultDPI   = 300
)

var (
	blue   = color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	red    = color.NRGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	faded  = color.NRGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0x99}
	green  = color.NRGBA{R: 0x16, G: 0xa3, B: 0x4a, A: 0xff}
	purple = color.NRGBA{R: 0x93, G: 0x33, B: 0xea, A: 0xff}

	// 30% opacity.
	gridColor = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0x4d}
	// 50% opacity.
	refColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}
)

// Available reports whether this build can render charts.
func Available() bool {
	return true
}

// Render draws the benchmark figure for records into dir and returns the
// path of the written image. An existing image is replaced.
func Render(dir string, records bench.Set) (string, error) {
	return render(dir, records, defaultDPI)
}

type series struct {
	label  string
	ys     []float64
	color  color.Color
	glyph  draw.GlyphDrawer
	dashes []vg.Length
}

type panel struct {
	title      string
	yLabel     string
	series     []series
	commaTicks bool
	zeroLine   bool
}

func render(dir string, records bench.Set, dpi int) (path string, err error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}

	sorted := records.Sorted()
	n := len(sorted)

	var (
		participants = make([]float64, n)
		userCycles   = make([]float64, n)
		totalCycles  = make([]float64, n)
		segments     = make([]float64, n)
		seconds      = make([]float64, n)
		overhead     = make([]float64, n)
	)

	for i, r := range sorted {
		participants[i] = float64(r.ParticipantCount)
		userCycles[i] = float64(r.UserCycles)
		totalCycles[i] = float64(r.TotalCycles)
		segments[i] = float64(r.SessionSegments)
		seconds[i] = float64(r.TotalTimeMs) / 1000
		overhead[i] = r.OverheadPercent()
	}

	dash := []vg.Length{vg.Points(6), vg.Points(3)}

	panels := [][]panel{
		{
			{
				title:  "Computational Cost (User vs Total Cycles)",
				yLabel: "Cycles",
				series: []series{
					{"User Cycles", userCycles, blue, draw.CircleGlyph{}, nil},
					{"Total Cycles (padded)", totalCycles, faded, draw.BoxGlyph{}, dash},
				},
				commaTicks: true,
			},
			{
				title:  "Proof Segments",
				yLabel: "Number of Segments",
				series: []series{
					{"Segments", segments, red, draw.CircleGlyph{}, nil},
				},
			},
		},
		{
			{
				title:  "Execution Time",
				yLabel: "Total Time (seconds)",
				series: []series{
					{"Total Time", seconds, green, draw.CircleGlyph{}, nil},
				},
			},
			{
				title:  "Cycle Overhead (Power-of-2 Padding)",
				yLabel: "Overhead (%)",
				series: []series{
					{"Overhead", overhead, purple, draw.CircleGlyph{}, nil},
				},
				zeroLine: true,
			},
		},
	}

	plots := make([][]*plot.Plot, len(panels))
	for j, row := range panels {
		plots[j] = make([]*plot.Plot, len(row))

		for i, pn := range row {
			p, err := newPlot(pn, participants)
			if err != nil {
				return "", fmt.Errorf("panel %q: %w", pn.title, err)
			}

			plots[j][i] = p
		}
	}

	img := vgimg.NewWith(
		vgimg.UseWH(figureWidth, figureHeight),
		vgimg.UseDPI(dpi),
	)
	dc := draw.New(img)

	pad := vg.Points(8)

	titleStyle := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, vg.Points(16)),
		XAlign:  draw.XCenter,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
	titleStyle.Font.Weight = xfont.WeightBold

	dc.FillText(titleStyle, vg.Point{
		X: (dc.Min.X + dc.Max.X) / 2,
		Y: dc.Max.Y - pad,
	}, Title)

	body := draw.Crop(dc, 0, 0, 0, -(titleStyle.Height(Title) + 2*pad))

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Points(24),
		PadY:      vg.Points(24),
		PadTop:    pad,
		PadBottom: pad,
		PadLeft:   pad,
		PadRight:  pad,
	}

	canvases := plot.Align(plots, tiles, body)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	path = filepath.Join(dir, FileName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", path, cerr))
		}
	}()

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}

	return path, nil
}

func newPlot(pn panel, xs []float64) (*plot.Plot, error) {
	p := plot.New()

	p.Title.Text = pn.title
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.X.Label.Text = "Number of Participants"
	p.X.Label.TextStyle.Font.Size = vg.Points(11)
	p.Y.Label.Text = pn.yLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(11)

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	for _, s := range pn.series {
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = xs[i]
			pts[i].Y = s.ys[i]
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.label, err)
		}

		line.Color = s.color
		line.Width = vg.Points(2)
		line.Dashes = s.dashes
		points.GlyphStyle.Shape = s.glyph
		points.GlyphStyle.Color = s.color
		points.GlyphStyle.Radius = vg.Points(3)

		p.Add(line, points)

		if len(pn.series) > 1 {
			p.Legend.Add(s.label, line, points)
		}
	}

	if pn.zeroLine {
		zero := plotter.NewFunction(func(float64) float64 { return 0 })
		zero.Color = refColor
		zero.Width = vg.Points(1)
		zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(zero)

		// Keep the reference line inside the visible range.
		p.Y.Min = math.Min(p.Y.Min, 0)
		p.Y.Max = math.Max(p.Y.Max, 0)
	}

	if pn.commaTicks {
		p.Y.Tick.Marker = plot.TickerFunc(func(lo, hi float64) []plot.Tick {
			ticks := plot.DefaultTicks{}.Ticks(lo, hi)
			for i := range ticks {
				if ticks[i].Label != "" {
					ticks[i].Label = humanize.Comma(int64(math.Round(ticks[i].Value)))
				}
			}

			return ticks
		})
	}

	p.Legend.Top = true
	p.Legend.Left = true

	return p, nil
}
