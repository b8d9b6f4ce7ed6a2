// Command feedprobe fetches both live feeds once, reconciles them, and
// prints the per-station readings and the resulting snapshot. Useful for
// checking feed health and reconciliation behaviour against the real API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/heatwatch/wetbulb-advisory/internal/adapter/nea"
	"github.com/heatwatch/wetbulb-advisory/internal/domain"
)

func main() {
	baseURL := flag.String("base-url", nea.DefaultBaseURL, "feed API base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	maxSkew := flag.Duration("max-skew", domain.DefaultMaxSkew, "max timestamp skew between paired readings")
	verbose := flag.Bool("v", false, "print every station reading")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client := nea.NewClient(*baseURL, *timeout, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*(*timeout)+10*time.Second)
	defer cancel()

	temps, err := client.FetchTemperatures(ctx)
	if err != nil {
		fatalf("air-temperature fetch: %v", err)
	}
	humidities, err := client.FetchHumidities(ctx)
	if err != nil {
		fatalf("relative-humidity fetch: %v", err)
	}
	fmt.Printf("air-temperature: %d stations, relative-humidity: %d stations\n", len(temps), len(humidities))

	samples, drops, err := domain.Reconcile(temps, humidities, domain.ReconcileOptions{MaxSkew: *maxSkew})
	if err != nil {
		fatalf("reconcile: %v (dropped %d)", err, drops.Total())
	}
	fmt.Printf("paired: %d stations (dropped: %d unmatched, %d skew, %d stale, %d out-of-range)\n",
		len(samples), drops.Unmatched, drops.SkewExceeded, drops.Stale, drops.OutOfRange)

	estimates := make([]domain.StationEstimate, 0, len(samples))
	for _, s := range samples {
		e := domain.EstimateWetBulb(s)
		estimates = append(estimates, e)
		if *verbose {
			fmt.Printf("  %-8s T=%5.1f°C RH=%5.1f%% WBT=%5.1f°C (%s)\n",
				s.StationID, s.Temperature, s.Humidity, e.WetBulb, s.MeasuredAt.Format(time.RFC3339))
		}
	}

	means, err := domain.Aggregate(estimates, samples)
	if err != nil {
		fatalf("aggregate: %v", err)
	}

	snap := domain.AreaSnapshot{
		Timestamp:       time.Now().UTC(),
		MeanTemperature: means.MeanTemperature,
		MeanHumidity:    means.MeanHumidity,
		MeanWetBulb:     means.MeanWetBulb,
		Advisory:        domain.Classify(means.MeanWetBulb),
		StationCount:    means.StationCount,
	}
	out, _ := json.MarshalIndent(snap, "", "  ")
	fmt.Println(string(out))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
