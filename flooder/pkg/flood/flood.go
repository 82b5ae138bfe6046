package flood

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/nodemetrics/statsd-go/statsd"
	"github.com/nodemetrics/statsd-go/statsd/reporter"
)

const bucket = 10 * time.Second

type client struct {
	client              statsd.ClientInterface
	pointsPer10Seconds  int
	sampleRate          float64
	sendAtStartOfBucket bool
	reportRuntime       bool
	period              time.Duration
	runHash             uint64
}

// AddFlags declares the flags of the flood command.
func AddFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "YAML file holding the statsd configuration, flags override it")
	flags.StringP("host", "", statsd.DefaultHost, "Host of the statsd server")
	flags.Uint16P("port", "", statsd.DefaultPort, "Port of the statsd server")
	flags.StringP("node-tag", "", "", "Value replacing {HOSTNAME} in metric keys")
	flags.StringP("namespace", "", "", "Prefix of every metric key")
	flags.IntP("points-per-10seconds", "", 100000, "Set points per 10 seconds")
	flags.Float64P("sample-rate", "", 1, "Sample rate of the flood counter")
	flags.BoolP("send-at-start-of-bucket", "", false, "Send all the points at the start of the 10 sec time bucket.")
	flags.BoolP("report-runtime", "", false, "Report runtime metrics every configured period")
	flags.BoolP("dry-run", "", false, "Print the datagrams on stdout instead of sending them")
	flags.BoolP("verbose", "", false, "Enable verbose mode")
}

// loadConfig reads the statsd configuration from the YAML file named by
// --config, then applies the flags set on the command line.
func loadConfig(flags *pflag.FlagSet) (statsd.Config, error) {
	cfg := statsd.DefaultConfig()
	cfg.Enable = true

	path, err := flags.GetString("config")
	if err != nil {
		return cfg, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if flags.Changed("host") || path == "" {
		if cfg.Host, err = flags.GetString("host"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("port") || path == "" {
		if cfg.Port, err = flags.GetUint16("port"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("node-tag") {
		if cfg.NodeTag, err = flags.GetString("node-tag"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("namespace") {
		if cfg.Namespace, err = flags.GetString("namespace"); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

func initClient(flags *pflag.FlagSet, logger *slog.Logger) (*client, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	pointsPer10Seconds, err := flags.GetInt("points-per-10seconds")
	if err != nil {
		return nil, err
	}
	if pointsPer10Seconds <= 0 {
		return nil, fmt.Errorf("points-per-10seconds must be positive, got %d", pointsPer10Seconds)
	}
	sampleRate, err := flags.GetFloat64("sample-rate")
	if err != nil {
		return nil, err
	}
	sendAtStart, err := flags.GetBool("send-at-start-of-bucket")
	if err != nil {
		return nil, err
	}
	reportRuntime, err := flags.GetBool("report-runtime")
	if err != nil {
		return nil, err
	}
	dryRun, err := flags.GetBool("dry-run")
	if err != nil {
		return nil, err
	}

	settings := []string{
		"host:" + cfg.Host,
		"port:" + strconv.Itoa(int(cfg.Port)),
		"node-tag:" + cfg.NodeTag,
		"namespace:" + cfg.Namespace,
		"points-per-10seconds:" + strconv.Itoa(pointsPer10Seconds),
		"sample-rate:" + strconv.FormatFloat(sampleRate, 'f', -1, 64),
		"send-at-start-of-bucket:" + strconv.FormatBool(sendAtStart),
	}
	h := hash(settings)
	logger.Info("Flooder configured.", "settings", settings, "hash", fmt.Sprintf("%x", h))

	var c *statsd.Client
	if dryRun {
		c, err = statsd.NewWithWriter(statsd.NewStdoutWriter(os.Stdout, ""), cfg, statsd.WithLogger(logger))
	} else {
		c, err = statsd.New(cfg, statsd.WithLogger(logger))
	}
	if err != nil {
		return nil, err
	}
	if !c.Initialized() {
		c.Close()
		return nil, fmt.Errorf("statsd client for %s:%d is %s", cfg.Host, cfg.Port, c.State())
	}

	return &client{
		client:              c,
		pointsPer10Seconds:  pointsPer10Seconds,
		sampleRate:          sampleRate,
		sendAtStartOfBucket: sendAtStart,
		reportRuntime:       reportRuntime,
		period:              cfg.Period(),
		runHash:             h,
	}, nil
}

func hash(s []string) uint64 {
	d := xxhash.New()
	for _, e := range s {
		d.WriteString(e)
	}
	return d.Sum64()
}

func newLogger(flags *pflag.FlagSet) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := flags.GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Flood sends points until interrupted.
func Flood(command *cobra.Command, args []string) error {
	logger := newLogger(command.Flags())

	c, err := initClient(command.Flags(), logger)
	if err != nil {
		return err
	}
	defer c.client.Close()

	ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt)
	defer stop()

	if c.reportRuntime {
		r := reporter.New(c.client, c.period, reporter.NewRuntimeCollector())
		r.Logger = logger
		go r.Run(ctx)
	}

	logger.Info("Flooding.", "points_per_10s", c.pointsPer10Seconds)
	c.run(ctx, logger, bucket)
	return nil
}

// run sends pointsPer10Seconds increments then the expected count, once per
// bucket, until ctx is done.
func (c *client) run(ctx context.Context, logger *slog.Logger, bucket time.Duration) {
	runKey := strconv.FormatUint(c.runHash, 16)
	countKey := "flood.{HOSTNAME}." + runKey + ".count"
	expectedKey := "flood.{HOSTNAME}." + runKey + ".expected"
	spacing := (bucket * 8 / 10) / time.Duration(c.pointsPer10Seconds)

	for ctx.Err() == nil {
		t1 := time.Now()

		for sent := 0; sent < c.pointsPer10Seconds && ctx.Err() == nil; sent++ {
			if err := c.client.Inc(countKey, c.sampleRate); err != nil {
				logger.Debug("Send failed.", "err", err)
			}
			if !c.sendAtStartOfBucket {
				time.Sleep(spacing)
			}
		}
		if err := c.client.Count(expectedKey, int64(c.pointsPer10Seconds), 1); err != nil {
			logger.Debug("Send failed.", "err", err)
		}

		s := bucket - time.Since(t1)
		if s <= 0 {
			logger.Warn("Falling behind.", "seconds", -s.Seconds())
			continue
		}
		// Sleep until the next bucket
		logger.Debug("Sleeping.", "seconds", s.Seconds())
		select {
		case <-ctx.Done():
		case <-time.After(s):
		}
	}
}
