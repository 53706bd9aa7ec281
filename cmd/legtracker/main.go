// Command legtracker replays a synthetic walking-person scan sequence
// through the tracking core and prints the final scan's leg records. It
// exists to exercise the library end to end, the way the teacher's
// examples/simple demonstrates norfair-go against synthetic detections.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
	"gopkg.in/ini.v1"

	legtracker "github.com/nmichlo/legtracker"
)

func main() {
	configPath := flag.String("config", "", "path to an ini file overriding tracker defaults")
	scans := flag.Int("scans", 200, "number of synthetic scans to replay")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	cfg := legtracker.DefaultConfig()
	cfg.Logger = &logger
	if *configPath != "" {
		if err := applyIniOverrides(cfg, *configPath); err != nil {
			logger.Fatal().Err(err).Msg("failed to load config")
		}
	}

	tracker, err := legtracker.NewTracker(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create tracker")
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	bar := progressbar.NewOptions(*scans,
		progressbar.OptionSetDescription("replaying scans"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("scans"),
		progressbar.OptionSetWidth(width/4),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	ctx := context.Background()
	var lastResult *legtracker.Result
	for i := 0; i < *scans; i++ {
		scan := syntheticScan(i, cfg.Frequency)
		result, err := tracker.Update(ctx, scan)
		if err != nil {
			logger.Warn().Err(err).Int("scan", i).Msg("scan failed")
			continue
		}
		lastResult = result
		_ = bar.Add(1)
	}
	fmt.Println()

	if lastResult == nil {
		return
	}
	for _, rec := range lastResult.LegRecords {
		fmt.Printf("leg=%d people=%d pos=(%.2f,%.2f) vel=(%.2f,%.2f) conf=%.2f\n",
			rec.LegID, rec.PeopleID, rec.PosX, rec.PosY, rec.VelX, rec.VelY, rec.Confidence)
	}
	for _, p := range lastResult.People {
		fmt.Printf("person=%d centroid=(%.2f,%.2f) left=%d right=%d\n",
			p.PeopleID, p.Centroid.X, p.Centroid.Y, p.LeftLegID, p.RightLegID)
	}
}

// applyIniOverrides reads a [tracker] section and overrides the matching
// TrackerConfig fields, mirroring the teacher's seqinfo.ini MustInt/
// MustFloat64 loading idiom.
func applyIniOverrides(cfg *legtracker.TrackerConfig, path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("load ini: %w", err)
	}
	sec := f.Section("tracker")

	cfg.Frequency = sec.Key("frequency").MustFloat64(cfg.Frequency)
	cfg.XLowerLimit = sec.Key("x_lower_limit").MustFloat64(cfg.XLowerLimit)
	cfg.XUpperLimit = sec.Key("x_upper_limit").MustFloat64(cfg.XUpperLimit)
	cfg.YLowerLimit = sec.Key("y_lower_limit").MustFloat64(cfg.YLowerLimit)
	cfg.YUpperLimit = sec.Key("y_upper_limit").MustFloat64(cfg.YUpperLimit)
	cfg.LegRadius = sec.Key("leg_radius").MustFloat64(cfg.LegRadius)
	cfg.MaxDistBtwLegs = sec.Key("max_dist_btw_legs").MustFloat64(cfg.MaxDistBtwLegs)
	cfg.MinObservations = sec.Key("min_observations").MustInt(cfg.MinObservations)

	// NewTracker's applyDefaults derives Policy from these flags, so
	// setting the flag alone is enough here.
	switch sec.Key("policy").MustString("gnn") {
	case "single_person":
		cfg.IsOnePersonToTrack = true
	case "zone":
		cfg.IsBoundingBoxTracking = true
	}
	return nil
}

// syntheticScan generates one planar laser scan containing two returns
// that trace out a pair of legs walking a small circle, for demo
// purposes only.
func syntheticScan(i int, dt float64) *legtracker.LaserScan {
	t := float64(i) * dt
	const (
		radius   = 0.6
		angSpeed = 0.5
		legGap   = 0.12
	)
	cx, cy := radius*math.Cos(angSpeed*t), radius*math.Sin(angSpeed*t)

	ranges := make([]float64, 360)
	for i := range ranges {
		ranges[i] = math.Inf(1)
	}
	place := func(x, y float64) {
		r := math.Hypot(x, y)
		a := math.Atan2(y, x)
		idx := int(math.Round((a + math.Pi) / (2 * math.Pi) * 359))
		if idx >= 0 && idx < len(ranges) {
			ranges[idx] = r
		}
	}
	place(cx-legGap*math.Sin(angSpeed*t), cy+legGap*math.Cos(angSpeed*t))
	place(cx+legGap*math.Sin(angSpeed*t), cy-legGap*math.Cos(angSpeed*t))

	return &legtracker.LaserScan{
		Frame:        "odom",
		TimestampSec: t,
		AngleMin:     -math.Pi,
		AngleMax:     math.Pi,
		AngleInc:     2 * math.Pi / 359,
		Ranges:       ranges,
	}
}
