package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/cetmentor/cetmentor/internal/scrape"
)

func main() {
	outFile := os.Getenv("DATA_FILE")
	if outFile == "" {
		outFile = "mht_cet_data.json"
	}

	registry, err := scrape.LoadRegistry("internal/scrape/config/sources.yaml")
	if err != nil {
		log.Fatalf("Failed to load source registry: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pipeline := scrape.NewPipeline(scrape.NewCollyFetcher(), registry, outFile)
	result, err := pipeline.Run(ctx)
	if err != nil {
		log.Fatalf("Scrape run failed: %v", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Source", "Found", "Error", "Duration"})
	for _, s := range result.Stats {
		errText := ""
		if s.Err != nil {
			errText = s.Err.Error()
		}
		t.AppendRow(table.Row{s.Name, s.Found, errText, s.Duration.Round(time.Millisecond).String()})
	}
	note := ""
	if result.Fallback {
		note = "fallback: mock data"
	}
	t.AppendFooter(table.Row{"saved", len(result.Records), note, ""})
	t.Render()

	log.Printf("Run %s complete: %d unique records written to %s", result.RunID, len(result.Records), result.OutputFile)
}
