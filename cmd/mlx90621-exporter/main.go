package main

import (
	"flag"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/garciaolais/mlx90621"
	"github.com/garciaolais/mlx90621/internal/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	bus := flag.String("bus", "", "I2C bus name")
	promaddr := flag.String("prometheus", ":9121", "Prometheus exporter address")
	rate := flag.Int("rate", int(mlx90621.Rate4Hz), "Refresh rate in Hz (0 for 0.5Hz)")
	interval := flag.Duration("interval", 2*time.Second, "Interval between frames")
	pixels := flag.Bool("pixels", true, "Export per pixel temperatures")
	flag.Parse()

	log := logrus.WithField("bus", *bus)

	dev, err := mlx90621.Open(*bus, &mlx90621.Opts{Logger: logrus.StandardLogger()})
	if err != nil {
		log.WithError(err).Fatal("open device")
	}
	defer dev.Halt()

	if err := dev.Initialize(mlx90621.RefreshRate(*rate)); err != nil {
		log.WithError(err).Fatal("initialize")
	}

	e := newExporter(dev, *pixels)
	go e.run(*interval, log)

	http.Handle("/metrics", promhttp.Handler())
	log.WithField("addr", *promaddr).Info("serving metrics")
	log.Fatal(http.ListenAndServe(*promaddr, nil))
}

type frameReader interface {
	ReadFrame(f *mlx90621.Frame) error
	AmbientCelsius() float64
}

// exporter owns the device; the scrape handlers only see the last frame.
type exporter struct {
	dev     frameReader
	mut     sync.Mutex
	frame   mlx90621.Frame
	ambient float64
	errors  prometheus.Counter
	frames  prometheus.Counter
	pixel   *prometheus.GaugeVec
}

func newExporter(dev frameReader, pixels bool) *exporter {
	return newExporterWith(prometheus.DefaultRegisterer, dev, pixels)
}

func newExporterWith(reg prometheus.Registerer, dev frameReader, pixels bool) *exporter {
	factory := promauto.With(reg)
	e := &exporter{
		dev: dev,
		errors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "sensors",
			Subsystem: "mlx90621",
			Name:      "read_errors_total",
		}),
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "sensors",
			Subsystem: "mlx90621",
			Name:      "frames_total",
		}),
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "mlx90621",
		Name:      "ambient_temperature_celsius",
	}, func() float64 {
		e.mut.Lock()
		defer e.mut.Unlock()
		return e.ambient
	})

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "mlx90621",
		Name:      "min_temperature_celsius",
	}, func() float64 {
		min, _ := e.rng()
		return min
	})

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "mlx90621",
		Name:      "max_temperature_celsius",
	}, func() float64 {
		_, max := e.rng()
		return max
	})

	if pixels {
		e.pixel = factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sensors",
			Subsystem: "mlx90621",
			Name:      "pixel_temperature_celsius",
		}, []string{"row", "column"})
	}

	return e
}

func (e *exporter) rng() (float64, float64) {
	e.mut.Lock()
	defer e.mut.Unlock()
	return render.Range(&e.frame)
}

func (e *exporter) update() error {
	var f mlx90621.Frame
	if err := e.dev.ReadFrame(&f); err != nil {
		e.errors.Inc()
		return err
	}
	e.frames.Inc()

	e.mut.Lock()
	e.frame = f
	e.ambient = e.dev.AmbientCelsius()
	e.mut.Unlock()

	if e.pixel != nil {
		for row := 0; row < mlx90621.Rows; row++ {
			for col := 0; col < mlx90621.Columns; col++ {
				e.pixel.WithLabelValues(strconv.Itoa(row), strconv.Itoa(col)).Set(f.Celsius[row][col])
			}
		}
	}
	return nil
}

func (e *exporter) run(interval time.Duration, log logrus.FieldLogger) {
	for range time.NewTicker(interval).C {
		if err := e.update(); err != nil {
			log.WithError(err).Warn("read frame")
		}
	}
}
