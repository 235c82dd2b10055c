package main

import (
	"coursestore/config"
	"coursestore/database"
	courseModels "coursestore/models/course"
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("Courses.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%100 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		course := courseModels.Course{
			Title:        getField(row, headerIndex, "title"),
			Description:  getField(row, headerIndex, "description"),
			Author:       getField(row, headerIndex, "author"),
			Price:        parseInt64(getField(row, headerIndex, "price")), // minor currency units
			ThumbnailURL: getField(row, headerIndex, "thumbnailUrl"),
			IsPublished:  parseBool(getField(row, headerIndex, "published")),
			IsDeleted:    false,
		}

		// Skip if no title
		if course.Title == "" {
			skipped++
			continue
		}

		// Check if course exists by title and author
		var existing courseModels.Course
		result := database.Database.Db.Where("title = ? AND author = ? AND is_deleted = ?", course.Title, course.Author, false).First(&existing)

		if result.Error != nil {
			// Insert new course
			if err := database.Database.Db.Create(&course).Error; err != nil {
				log.Printf("Error inserting course %s: %v", course.Title, err)
				continue
			}
			inserted++
		} else {
			// Update existing course
			existing.Description = course.Description
			existing.Price = course.Price
			existing.ThumbnailURL = course.ThumbnailURL
			existing.IsPublished = course.IsPublished

			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating course %s: %v", course.Title, err)
				continue
			}
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
	log.Printf("Total processed: %d", inserted+updated+skipped)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseInt64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	return strings.EqualFold(s, "true") || s == "1" || strings.EqualFold(s, "yes")
}
