// Command loadteachers bulk-provisions teacher accounts from a JSON file and
// prints the generated initial passwords, one line per teacher.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"taqyim/internal/db"
	"taqyim/internal/domain/teacher"
	"taqyim/internal/platform/config"
	"taqyim/internal/transport/http/shared"
)

type teacherRecord struct {
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	JoinDate   string `json:"joinDate"`
	BirthDate  string `json:"birthDate"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Bio        string `json:"bio"`
}

func main() {
	file := flag.String("file", "", "path to a JSON array of teacher records")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	var records []teacherRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatalf("parse %s: %v", *file, err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	service := teacher.NewService(teacher.NewStore(pool))

	failures := 0
	for _, record := range records {
		profile, err := toProfile(record)
		if err != nil {
			log.Printf("skip %s: %v", record.Email, err)
			failures++
			continue
		}

		id, password, err := service.Provision(ctx, profile)
		if err != nil {
			log.Printf("provision %s failed: %v", record.Email, err)
			failures++
			continue
		}
		fmt.Printf("%s\t%s\t%s\n", id, record.Email, password)
	}

	if failures > 0 {
		log.Fatalf("%d of %d records failed", failures, len(records))
	}
}

func toProfile(record teacherRecord) (teacher.Teacher, error) {
	if record.Name == "" || record.Email == "" {
		return teacher.Teacher{}, fmt.Errorf("name and email are required")
	}
	joinDate, err := shared.ParseDate(record.JoinDate)
	if err != nil || joinDate.IsZero() {
		return teacher.Teacher{}, fmt.Errorf("invalid joinDate %q", record.JoinDate)
	}
	birthDate, err := shared.ParseDate(record.BirthDate)
	if err != nil || birthDate.IsZero() {
		return teacher.Teacher{}, fmt.Errorf("invalid birthDate %q", record.BirthDate)
	}
	return teacher.Teacher{
		Name:       record.Name,
		Subject:    record.Subject,
		Department: record.Department,
		Email:      record.Email,
		Phone:      record.Phone,
		JoinDate:   joinDate,
		BirthDate:  birthDate,
		Experience: record.Experience,
		Education:  record.Education,
		Bio:        record.Bio,
	}, nil
}
