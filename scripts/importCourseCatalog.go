package main

import (
	"elearn/config"
	"elearn/database"
	courseModels "elearn/models/course"
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"
)

// Bulk-imports courses and modules from CourseCatalog.csv. Each row is one
// module; courses are matched by title and created on first sight. Imported
// courses stay in DRAFT until published through the admin API.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("CourseCatalog.csv")
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
		headerIndex[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		idx, ok := headerIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	db := database.Database.Db
	coursesCreated := 0
	modulesCreated := 0
	skipped := 0

	// Courses already seen in this run, keyed by title
	courseIDs := make(map[string]uint)

	for i, row := range records[1:] {
		title := field(row, "course_title")
		moduleTitle := field(row, "module_title")
		videoKey := field(row, "video_key")
		orderStr := field(row, "order_index")

		if title == "" || moduleTitle == "" || videoKey == "" {
			log.Printf("Row %d: missing required fields, skipping", i+2)
			skipped++
			continue
		}

		orderIndex, err := strconv.Atoi(orderStr)
		if err != nil || orderIndex < 1 {
			log.Printf("Row %d: invalid order_index %q, skipping", i+2, orderStr)
			skipped++
			continue
		}

		courseID, ok := courseIDs[title]
		if !ok {
			var course courseModels.Course
			err := db.Where("title = ? AND is_deleted = ?", title, false).First(&course).Error
			if err != nil {
				course = courseModels.Course{
					Title:       title,
					Description: field(row, "course_description"),
					Author:      field(row, "course_author"),
					Status:      "DRAFT",
				}
				if err := db.Create(&course).Error; err != nil {
					log.Printf("Row %d: failed to create course %q: %v", i+2, title, err)
					skipped++
					continue
				}
				coursesCreated++
			}
			courseID = course.ID
			courseIDs[title] = courseID
		}

		// Order index must stay unique within the course
		var existing courseModels.Module
		if err := db.Where("course_id = ? AND order_index = ? AND is_deleted = ?",
			courseID, orderIndex, false).First(&existing).Error; err == nil {
			log.Printf("Row %d: course %q already has a module at order %d, skipping", i+2, title, orderIndex)
			skipped++
			continue
		}

		module := courseModels.Module{
			CourseID:    courseID,
			Title:       moduleTitle,
			Description: field(row, "module_description"),
			VideoKey:    videoKey,
			OrderIndex:  orderIndex,
		}
		if err := db.Create(&module).Error; err != nil {
			log.Printf("Row %d: failed to create module %q: %v", i+2, moduleTitle, err)
			skipped++
			continue
		}
		modulesCreated++
	}

	log.Printf("Import complete: %d courses, %d modules created, %d rows skipped", coursesCreated, modulesCreated, skipped)
}
