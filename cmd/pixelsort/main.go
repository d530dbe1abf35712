package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/menta2k/pixelsort"
	"github.com/menta2k/pixelsort/internal/config"
	"github.com/menta2k/pixelsort/internal/utils"
	"github.com/menta2k/pixelsort/pkg/imageio"
	"github.com/menta2k/pixelsort/pkg/preview"
)

func main() {
	defaults := config.Default()

	var configPath string
	flag.StringVar(&configPath, "config", "", "JSON preset file with default flag values")

	low := flag.Float64("low", defaults.Low, "low mask threshold (0-1)")
	high := flag.Float64("high", defaults.High, "high mask threshold (0-1)")
	channel := flag.String("channel", defaults.Channel, "mask channel: luminance|hsl_h|hsl_s|hsl_l")
	invert := flag.Bool("invert", defaults.Invert, "invert the mask")
	randomOffset := flag.Float64("random_offset", defaults.RandomOffset, "per-line threshold jitter (>= 0)")
	vertical := flag.Bool("vertical", defaults.Vertical, "sort columns instead of rows")
	metricName := flag.String("metric", defaults.Metric, "sort metric: luminance|r|g|b|hsl_h|hsl_s|hsl_l")
	reverse := flag.Bool("reverse", defaults.Reverse, "sort descending instead of ascending")
	gammaVal := flag.Float64("gamma", defaults.Gamma, "gamma correction applied around the sort (> 0)")
	seed := flag.Int64("seed", defaults.Seed, "random seed for the jitter, -1 derives one from the clock")
	workers := flag.Int("workers", defaults.Workers, "worker goroutines, 0 uses all CPUs")
	quality := flag.Int("quality", defaults.Quality, "JPEG/WebP output quality (1-100)")
	lossless := flag.Bool("lossless", defaults.Lossless, "WebP lossless output")
	show := flag.Bool("show", false, "open a before/after preview after writing the output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input output\n\nOptions:\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	cfg := defaults
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	// Flags given explicitly on the command line win over the preset file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "low":
			cfg.Low = *low
		case "high":
			cfg.High = *high
		case "channel":
			cfg.Channel = *channel
		case "invert":
			cfg.Invert = *invert
		case "random_offset":
			cfg.RandomOffset = *randomOffset
		case "vertical":
			cfg.Vertical = *vertical
		case "metric":
			cfg.Metric = *metricName
		case "reverse":
			cfg.Reverse = *reverse
		case "gamma":
			cfg.Gamma = *gammaVal
		case "seed":
			cfg.Seed = *seed
		case "workers":
			cfg.Workers = *workers
		case "quality":
			cfg.Quality = *quality
		case "lossless":
			cfg.Lossless = *lossless
		}
	})

	// Every configuration error surfaces before the input file is read.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if !utils.IsImageFile(output) {
		log.Fatalf("config: unsupported output format for %s", output)
	}
	pcfg, err := cfg.Pipeline()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if pcfg.Seed < 0 {
		pcfg.Seed = time.Now().UnixNano()
	}

	if !utils.FileExists(input) {
		log.Fatalf("input file %s does not exist", input)
	}
	before, err := imageio.LoadImage(input)
	if err != nil {
		log.Fatal(err)
	}

	after, err := pixelsort.New().Sort(before, pcfg)
	if err != nil {
		log.Fatalf("pixel sort failed: %v", err)
	}

	if err := utils.EnsureDir(filepath.Dir(output)); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	opts := imageio.Options{Quality: cfg.Quality, Lossless: cfg.Lossless}
	if err := imageio.SaveImage(after, output, opts); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", output)

	if *show {
		if err := preview.Show(before, after); err != nil {
			log.Printf("preview failed: %v", err)
		}
	}
}
