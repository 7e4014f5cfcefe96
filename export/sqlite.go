package export

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang/glog"

	"github.com/sigmaps/heatwave/survey"
)

const (
	sqliteSampleCountInfo = 1000

	sqliteCreateTableTmpl = `CREATE TABLE IF NOT EXISTS survey (
		"ID"          INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		"Identifier"  TEXT NOT NULL,
		"Source"      TEXT NOT NULL,
		"X"           REAL,
		"Y"           REAL,
		"SSID"        TEXT,
		"BSSID"       TEXT,
		"Channel"     INTEGER,
		"SignalDbm"   INTEGER,
		"Quality"     INTEGER,
		"Time"        INTEGER
	);`
	sqliteInsertSampleTmpl = `INSERT INTO survey (
		Identifier,
		Source,
		X,
		Y,
		SSID,
		BSSID,
		Channel,
		SignalDbm,
		Quality,
		Time
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
)

type SQLite struct {
	DB *sql.DB
}

func (s *SQLite) Write(ctx context.Context, samples <-chan survey.Sample) error {
	if err := sqliteCreateTableIfNotExists(s.DB); err != nil {
		return fmt.Errorf("unable to create table: %s", err)
	}

	counts := map[string]int{
		"error":   0,
		"success": 0,
		"total":   0,
	}
	for sample := range samples {
		counts["total"] += 1
		if err := sqliteInsertSample(s.DB, sample); err != nil {
			counts["error"] += 1
			glog.Warningf("error storing in sqlite DB: %s\n", err)
			continue
		}
		counts["success"] += 1
		if counts["total"]%sqliteSampleCountInfo == 0 {
			glog.Infof("Sample export counts: %+v\n", counts)
		}
	}

	return nil
}

func sqliteCreateTableIfNotExists(db *sql.DB) error {
	statement, err := db.Prepare(sqliteCreateTableTmpl)
	if err != nil {
		return err
	}
	if _, err := statement.Exec(); err != nil {
		return err
	}

	return nil
}

func sqliteInsertSample(db *sql.DB, s survey.Sample) error {
	statement, err := db.Prepare(sqliteInsertSampleTmpl)
	if err != nil {
		return err
	}
	if _, err := statement.Exec(s.Identifier, s.Source, s.X, s.Y, s.SSID, s.BSSID, s.Channel, s.SignalDbm, s.Quality, s.Time.UnixMilli()); err != nil {
		return err
	}

	return nil
}
