package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/2beens/straviz/internal/activity"
	"github.com/2beens/straviz/internal/db"

	log "github.com/sirupsen/logrus"
)

// imports a strava activities JSON export (an array of activity objects,
// as returned by the strava API) into the activities table
func main() {
	inputPath := flag.String("input", "", "path to the activities JSON export file")
	dbHost := flag.String("db-host", "localhost", "postgres host")
	dbPort := flag.String("db-port", "5432", "postgres port")
	dbName := flag.String("db-name", "straviz_db", "postgres database name")
	dryRun := flag.Bool("dry-run", false, "parse and report only, do not write to the db")
	flag.Parse()

	log.SetLevel(log.InfoLevel)

	if *inputPath == "" {
		fmt.Println("input file not provided, use -input")
		os.Exit(1)
	}

	rawJson, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input file: %s", err)
	}

	var activities []activity.Activity
	if err := json.Unmarshal(rawJson, &activities); err != nil {
		log.Fatalf("unmarshal activities: %s", err)
	}
	log.Infof("parsed %d activities from %s", len(activities), *inputPath)

	if *dryRun {
		for _, a := range activities {
			log.Infof(" - [%d] %s, %s, %.1fm", a.ID, a.StartDate.Format(time.DateOnly), a.Type, a.Distance)
		}
		log.Info("dry run, not writing to the db")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: *dbHost,
		DBPort: *dbPort,
		DBName: *dbName,
	})
	if err != nil {
		log.Fatalf("create db pool: %s", err)
	}
	defer dbPool.Close()

	repo := activity.NewRepo(dbPool)

	imported := 0
	for _, a := range activities {
		if err := repo.Upsert(ctx, a); err != nil {
			log.Errorf("upsert activity %d [%s]: %s", a.ID, a.Name, err)
			continue
		}
		imported++
	}

	log.Infof("done, imported %d/%d activities", imported, len(activities))
}
