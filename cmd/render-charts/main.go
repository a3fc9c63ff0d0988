package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"go-inventory-dashboard/internal/chart"
	"go-inventory-dashboard/internal/config"
	"go-inventory-dashboard/internal/datasource"
	applog "go-inventory-dashboard/internal/logger"
	"go-inventory-dashboard/internal/model"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// render-charts writes the three dashboard charts as SVG files.
func main() {
	cfg := config.Load()
	dir := flag.String("data", cfg.DataDir, "directory holding inventory-data.json")
	out := flag.String("out", ".", "output directory")
	selected := flag.String("select", "", "pre-select a series (inStock, inTransit, outOfStock, suggested)")
	flag.Parse()

	applog.InitLogger(cfg.Stage, cfg.LogLevel)
	defer applog.Sync()

	sel := chart.NoSelection()
	if *selected != "" {
		key, ok := model.ParseSeriesKey(*selected)
		if !ok {
			applog.Fatal("unknown series", zap.String("select", *selected))
		}
		sel = chart.Select(key)
	}

	d := datasource.NewLoader(datasource.NewFileSource(*dir)).LoadDashboard(context.Background())
	props := chart.Props{Selected: sel}
	views := []chart.View{
		chart.NewBarChart(d.BarData, props),
		chart.NewPieChart(d.PieData, props),
		chart.NewLineChart(d.LineData, props),
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		applog.Fatal("failed to create output directory", zap.Error(err))
	}
	for _, v := range views {
		path := filepath.Join(*out, string(v.Kind())+".svg")
		if err := writeSVG(path, v); err != nil {
			applog.Fatal("failed to render chart", zap.String("chart", string(v.Kind())), zap.Error(err))
		}
		applog.Info("chart written", zap.String("path", path))
	}
}

func writeSVG(path string, v chart.View) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create file")
	}
	if err := v.RenderSVG(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close file")
}
