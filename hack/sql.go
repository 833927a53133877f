package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/glebarez/go-sqlite"

	"audio-notes-service/internal/dao"
)

// 初始化本地 SQLite 数据库：go run hack/sql.go -db ./db.sqlite3
func main() {
	path := flag.String("db", "./db.sqlite3", "sqlite database file")
	flag.Parse()

	db, err := sql.Open("sqlite", *path)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	for _, stmt := range dao.JobSchema {
		if _, err = db.Exec(stmt); err != nil {
			log.Fatal(err)
		}
	}

	var version string
	if err = db.QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		log.Fatal(err)
	}
	log.Printf("schema ready in %s (sqlite %s)", *path, version)
}
