// Command gaitplot draws the swing height of each foot through two cycles of a
// gait, one row per foot, to check that the gait looks like it should before
// putting it on the robot.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexwalker/hexapod/components/legs"
	"github.com/hexwalker/hexapod/components/legs/gait"
	"github.com/hexwalker/hexapod/config"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var (
	gaitName   = flag.String("gait", "tripod", "gait to plot")
	configPath = flag.String("config", "", "path to a JSON config file (optional)")
	out        = flag.String("out", "gait.png", "output file")
	samples    = flag.Int("samples", 200, "samples per cycle")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Printf("error loading config: %s\n", err)
			os.Exit(1)
		}
	}

	gt, ok := findGait(*gaitName)
	if !ok {
		fmt.Printf("unknown gait: %s\n", *gaitName)
		os.Exit(1)
	}

	p, err := draw(gt.Info(), cfg)
	if err != nil {
		fmt.Printf("error drawing: %s\n", err)
		os.Exit(1)
	}

	p.Title.Text = fmt.Sprintf("%s gait", gt)
	err = p.Save(10*vg.Inch, 6*vg.Inch, *out)
	if err != nil {
		fmt.Printf("error saving: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", *out)
}

func findGait(name string) (gait.Type, bool) {
	for _, t := range gait.Types() {
		if t.String() == name {
			return t, true
		}
	}

	return 0, false
}

func draw(info gait.Info, cfg *config.Config) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Phase"
	p.Y.Label.Text = "Foot"

	n := *samples * 2
	for _, f := range legs.All() {
		pts := make(plotter.XYs, 0, n+1)
		for i := 0; i <= n; i++ {
			phase := info.Duration * 2 * float64(i) / float64(n)
			_, height := info.FootPhase(int(f), phase, cfg.FootHeight)

			// One row per foot, so they don't overlap.
			pts = append(pts, plotter.XY{X: phase, Y: float64(f) + height*0.8})
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}

		line.Width = vg.Points(1)
		line.Color = plotutil.Color(int(f))
		p.Add(line)
		p.Legend.Add(f.String(), line)
	}

	return p, nil
}
