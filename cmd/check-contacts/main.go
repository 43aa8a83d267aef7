package main

import (
	"flag"
	"fmt"
	"log"

	"outreach-data/internal/config"
	"outreach-data/pkg/database"

	_ "github.com/lib/pq"
)

// 运维小工具：联系人/签到行数概览 + 归一化号码重复检查
// 号码查找只在归一化号码全局唯一时才有确定结果，重复要人工修数据
func main() {
	var showDupes = flag.Bool("dupes", true, "Report contacts sharing a normalized phone number")
	var limit = flag.Int("limit", 50, "Max duplicate groups to print")
	flag.Parse()

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"contacts", "events", "attendance", "tasks", "users"} {
		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			log.Fatalf("Failed to count %s: %v", table, err)
		}
		fmt.Printf("%-12s %d rows\n", table, count)
	}

	if !*showDupes {
		return
	}

	rows, err := db.Query(`
		SELECT regexp_replace(COALESCE(phone, ''), '[^0-9]', '', 'g') AS normalized,
		       COUNT(*) AS n,
		       array_to_string(array_agg(contact_id ORDER BY contact_id), ',') AS ids
		FROM contacts
		WHERE COALESCE(phone, '') <> ''
		GROUP BY 1
		HAVING COUNT(*) > 1
		ORDER BY n DESC
		LIMIT $1`, *limit)
	if err != nil {
		log.Fatalf("Failed to query duplicates: %v", err)
	}
	defer rows.Close()

	fmt.Println("\nDuplicate normalized phones:")
	found := false
	for rows.Next() {
		var normalized, ids string
		var n int
		if err := rows.Scan(&normalized, &n, &ids); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}
		found = true
		fmt.Printf("  %s x%d contacts=%s\n", normalized, n, ids)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to read rows: %v", err)
	}
	if !found {
		fmt.Println("  (none)")
	}
}
