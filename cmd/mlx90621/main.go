package main

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/garciaolais/mlx90621"
	"github.com/garciaolais/mlx90621/internal/gobotbus"
	"github.com/garciaolais/mlx90621/internal/render"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

func main() {
	bus := flag.String("bus", "", "I2C bus name (periph) or device path (gobot)")
	backend := flag.String("backend", "periph", "I2C backend: periph or gobot")
	rate := flag.Int("rate", int(mlx90621.DefaultRefreshRate), "Refresh rate in Hz (0 for 0.5Hz)")
	interval := flag.Duration("interval", time.Second, "Interval between frames")
	format := flag.String("format", render.ModeHeatmap, "Output: heatmap, values, table or json")
	attempts := flag.Int("attempts", mlx90621.DefaultOpts.MaxAttempts, "Calibration attempts before giving up")
	count := flag.Int("count", 0, "Number of frames to read, 0 for no limit")
	verbose := flag.Bool("verbose", false, "Debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logrus.WithFields(logrus.Fields{"bus": *bus, "backend": *backend})

	opts := mlx90621.DefaultOpts
	opts.MaxAttempts = *attempts
	opts.Logger = logrus.StandardLogger()

	dev, closeBus, err := open(*backend, *bus, &opts)
	if err != nil {
		log.WithError(err).Fatal("open device")
	}
	defer closeBus()

	if err := dev.Initialize(mlx90621.RefreshRate(*rate)); err != nil {
		log.WithError(err).Fatal("initialize")
	}
	log.WithFields(logrus.Fields{
		"ambient":    dev.AmbientCelsius(),
		"resolution": dev.Resolution(),
		"rate":       dev.RefreshRate().Frequency(),
	}).Info("sensor ready")

	enc := json.NewEncoder(os.Stdout)
	var f mlx90621.Frame
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for n := 0; *count == 0 || n < *count; n++ {
		if n > 0 {
			<-ticker.C
		}
		if err := dev.ReadFrame(&f); err != nil {
			log.WithError(err).Fatal("read frame")
		}

		switch *format {
		case "json":
			if err := encodeFrame(enc, time.Now(), dev.AmbientCelsius(), &f); err != nil {
				log.WithError(err).Fatal("encode frame")
			}
		case "table":
			if err := render.Table(&f); err != nil {
				log.WithError(err).Fatal("render table")
			}
		default:
			pterm.Print("\033[H\033[2J")
			render.RenderFrame(&f, dev.AmbientCelsius(), *format)
		}
	}
}

// open returns the device and a function releasing its bus.
func open(backend, bus string, opts *mlx90621.Opts) (*mlx90621.Dev, func() error, error) {
	if backend != "gobot" {
		dev, err := mlx90621.Open(bus, opts)
		if err != nil {
			return nil, nil, err
		}
		return dev, dev.Halt, nil
	}
	if bus == "" {
		bus = "/dev/i2c-1"
	}
	b, err := gobotbus.Open(bus)
	if err != nil {
		return nil, nil, err
	}
	return mlx90621.New(b, opts), b.Close, nil
}

func encodeFrame(enc *json.Encoder, when time.Time, ambient float64, f *mlx90621.Frame) error {
	return enc.Encode(map[string]interface{}{
		"when":      when,
		"ambient_c": ambient,
		"tenths":    f.Tenths,
		"celsius":   f.Celsius,
	})
}
