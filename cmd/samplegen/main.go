// Command samplegen writes a placeholder weather sequence as indented JSON.
//
// Usage:
//
//	go run ./cmd/samplegen -start 2024-04-26 -days 7 -seed 42
//	go run ./cmd/samplegen -reference -out internal/weather/testdata/reference.json
//	go run ./cmd/samplegen -remote http://localhost:8080 -start 2024-04-26 -days 3
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/i474232898/weather-placeholder/internal/client"
	"github.com/i474232898/weather-placeholder/internal/weather"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		slog.Error("samplegen failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	start     string
	days      int
	seed      string
	reference bool
	remote    string
	out       string
	timeout   time.Duration
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("samplegen", flag.ContinueOnError)
	fs.StringVar(&o.start, "start", time.Now().UTC().Format("2006-01-02"), "first day, YYYY-MM-DD")
	fs.IntVar(&o.days, "days", 10, "number of days to generate")
	fs.StringVar(&o.seed, "seed", "", "32-bit seed; empty for non-deterministic output")
	fs.BoolVar(&o.reference, "reference", false, "write the reference sequence (ignores -start, -days, -seed)")
	fs.StringVar(&o.remote, "remote", "", "fetch from a running server at this base URL instead of generating locally")
	fs.StringVar(&o.out, "out", "", "output file; stdout when empty")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "overall timeout for remote requests")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	start := weather.ReferenceStart
	days := weather.ReferenceDays
	seed := weather.ReferenceSeed
	seedPtr := &seed
	if !o.reference {
		if start, err = weather.ParseDate(o.start); err != nil {
			return err
		}
		days = o.days
		seedPtr = nil
		if o.seed != "" {
			n, err := strconv.ParseInt(o.seed, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid -seed: %w", err)
			}
			seed = int32(n)
			seedPtr = &seed
		}
	}

	var result []weather.DayWeather
	if o.remote != "" {
		result, err = fetchRemote(ctx, o, start, days, seedPtr)
	} else {
		result, err = generateLocal(start, days, seedPtr)
	}
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if o.out == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(o.out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(o.out, data, 0o600); err != nil {
		return err
	}
	slog.Info("wrote samples", "path", o.out, "days", len(result))
	return nil
}

func generateLocal(start weather.Date, days int, seed *int32) ([]weather.DayWeather, error) {
	var src weather.Source
	if seed != nil {
		src = weather.NewSeededSource(*seed)
	} else {
		src = weather.NewRandomSource()
	}
	return weather.Generate(start, days, src)
}

func fetchRemote(ctx context.Context, o options, start weather.Date, days int, seed *int32) ([]weather.DayWeather, error) {
	if days < 0 {
		return nil, errors.New("-days must not be negative")
	}
	c, err := client.New(o.remote, client.Options{})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var set weather.SampleSet
	if o.reference {
		set, err = c.Reference(ctx)
	} else {
		set, err = c.Samples(ctx, start, days, seed)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", o.remote, err)
	}
	return set.Days, nil
}
