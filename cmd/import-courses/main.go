package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/marinedeck/maritime-api/internal/config"
	"github.com/marinedeck/maritime-api/internal/database"
	"github.com/marinedeck/maritime-api/internal/models"
)

// Bulk course importer. Reads a CSV export of an institute's catalogue and
// upserts courses by (instid, title). Run with the same environment as the
// API server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("MARITIME_DATABASE_URL must be set for the importer")
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	path := os.Getenv("MARITIME_IMPORT_FILE")
	if path == "" {
		for _, candidate := range []string{"courses.csv", "data/courses.csv", "import/courses.csv"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		log.Fatal("No course CSV found; set MARITIME_IMPORT_FILE or place courses.csv in the working directory")
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%500 == 0 && i > 0 {
			log.Printf("Processing row %d...", i+1)
		}

		course := models.Course{
			InstID:           getField(row, headerIndex, "instid"),
			Title:            getField(row, headerIndex, "title"),
			Type:             normalizeType(getField(row, headerIndex, "type")),
			Duration:         getField(row, headerIndex, "duration"),
			Mode:             normalizeMode(getField(row, headerIndex, "mode")),
			Fees:             parseFloat(getField(row, headerIndex, "fees")),
			Description:      getField(row, headerIndex, "description"),
			ValidityMonths:   parseInt(getField(row, headerIndex, "validity_months")),
			AccreditationRef: getField(row, headerIndex, "accreditation_ref"),
			Status:           models.CourseStatusActive,
		}

		if course.InstID == "" || course.Title == "" {
			skipped++
			continue
		}

		var institute models.Institute
		if err := db.Where("instid = ?", course.InstID).First(&institute).Error; err != nil {
			log.Printf("Error on row %d: institute %s not found, skipping %q", i+2, course.InstID, course.Title)
			skipped++
			continue
		}

		var existing models.Course
		result := db.Where("instid = ? AND title = ?", course.InstID, course.Title).First(&existing)

		if result.Error != nil {
			course.CourseID = models.NewID("course")
			if err := db.Create(&course).Error; err != nil {
				log.Printf("Error inserting course %q (instid=%s): %v", course.Title, course.InstID, err)
				continue
			}
			inserted++
		} else {
			existing.Type = course.Type
			existing.Duration = course.Duration
			existing.Mode = course.Mode
			existing.Fees = course.Fees
			existing.Description = course.Description
			existing.ValidityMonths = course.ValidityMonths
			existing.AccreditationRef = course.AccreditationRef

			if err := db.Save(&existing).Error; err != nil {
				log.Printf("Error updating course %q (instid=%s): %v", course.Title, course.InstID, err)
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

// headerAliases lists accepted column names per field; exports rarely agree
// on headers, so each field is resolved through its alias list in order.
var headerAliases = map[string][]string{
	"instid":            {"instid", "institute_id", "institute"},
	"title":             {"title", "course_title", "course_name", "name"},
	"type":              {"type", "course_type", "category"},
	"duration":          {"duration", "course_duration"},
	"mode":              {"mode", "delivery_mode", "delivery"},
	"fees":              {"fees", "fee", "price", "cost"},
	"description":       {"description", "details", "summary"},
	"validity_months":   {"validity_months", "validity", "valid_months"},
	"accreditation_ref": {"accreditation_ref", "accreditation", "dgs_ref"},
}

// getField gets a field from the row, trying each header alias in order.
func getField(row []string, headerIndex map[string]int, field string) string {
	for _, alias := range headerAliases[field] {
		if idx, ok := headerIndex[alias]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
	}
	return ""
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return val
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val
}

func normalizeType(raw string) string {
	switch strings.ToLower(raw) {
	case "stcw":
		return models.CourseTypeSTCW
	case "refresher":
		return models.CourseTypeRefresher
	case "technical":
		return models.CourseTypeTechnical
	default:
		return models.CourseTypeOther
	}
}

func normalizeMode(raw string) string {
	switch strings.ToLower(raw) {
	case "online":
		return models.CourseModeOnline
	case "hybrid":
		return models.CourseModeHybrid
	default:
		return models.CourseModeOffline
	}
}
