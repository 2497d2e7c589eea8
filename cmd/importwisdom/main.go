// Command main imports wisdom entries from a JSON file into the database.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"wisdomwell/internal/config"
	"wisdomwell/internal/database"
	"wisdomwell/internal/seed"
)

// rawEntry matches the export format: [{"id": 1, "text": "... - Author"}]
type rawEntry struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

func main() {
	file := flag.String("file", "wisdom.json", "Path to the wisdom JSON file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	var entries []rawEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatalf("Failed to parse %s: %v", *file, err)
	}

	imported := 0
	for _, raw := range entries {
		entry := seed.ParseEntry(raw.Text)
		if entry.Text == "" {
			log.Printf("Skipping empty entry %d", raw.ID)
			continue
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("Error inserting wisdom %d: %v", raw.ID, err)
			continue
		}
		imported++
	}

	log.Printf("Import complete: %d of %d entries inserted", imported, len(entries))
}
