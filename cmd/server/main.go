package main

import (
	"log"
	"os"
	"strconv"

	"github.com/cetmentor/cetmentor/internal/advisor"
	"github.com/cetmentor/cetmentor/internal/ai"
	"github.com/cetmentor/cetmentor/internal/api"
	"github.com/cetmentor/cetmentor/internal/dataset"
	"github.com/cetmentor/cetmentor/internal/feedback"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "mht_cet_data.json"
	}

	records, err := dataset.LoadFile(dataFile)
	if err != nil {
		// The API still serves chat and feedback without a dataset;
		// suggest/predict return 503 until a reload.
		log.Printf("Failed to load %s: %v. Run the scraper first.", dataFile, err)
	} else {
		log.Printf("Loaded %d college records from %s", len(records), dataFile)
	}
	table := dataset.NewTable(records)

	poolSize := 0
	if raw := os.Getenv("CET_POOL_SIZE"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			poolSize = v
		} else {
			log.Printf("Ignoring invalid CET_POOL_SIZE %q", raw)
		}
	}
	adv := advisor.New(table, poolSize, 0)

	var aiClient *ai.Client
	if apiKey := os.Getenv("OPENROUTER_API_KEY"); apiKey != "" {
		aiClient = ai.NewClient(apiKey, os.Getenv("OPENROUTER_MODEL"))
	} else {
		log.Print("OPENROUTER_API_KEY not set; chat endpoint will report an error")
	}

	feedbackFile := os.Getenv("FEEDBACK_FILE")
	if feedbackFile == "" {
		feedbackFile = "feedback_log.csv"
	}
	fb := feedback.NewLogger(feedbackFile)

	srv := api.NewServer(table, adv, aiClient, fb, dataFile)
	log.Printf("Server starting on port %s...", port)
	if err := srv.Start(port); err != nil {
		log.Fatal(err)
	}
}
