// migrate applies the SQL files under migrations/ in lexical order.
//
// Usage: go run ./cmd/migrate [migrations-dir]
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sale-ops-pipeline/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("read migrations dir: %v", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Fatalf("no .sql files in %s", dir)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, "")
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Fatalf("read %s: %v", name, err)
		}
		log.Printf("applying %s...", name)
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			log.Fatalf("apply %s: %v", name, err)
		}
	}
	log.Printf("applied %d migration(s)", len(files))
}
