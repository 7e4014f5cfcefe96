package export

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang/glog"

	"github.com/sigmaps/heatwave/survey"
)

const (
	mysqlSampleCountInfo = 1000

	mysqlCreateTableTmpl = `CREATE TABLE IF NOT EXISTS survey (
		ID          INTEGER NOT NULL PRIMARY KEY AUTO_INCREMENT,
		Identifier  TEXT NOT NULL,
		Source      TEXT NOT NULL,
		X           DOUBLE,
		Y           DOUBLE,
		SSID        TEXT,
		BSSID       TEXT,
		Channel     INTEGER,
		SignalDbm   INTEGER,
		Quality     INTEGER,
		Time        BIGINT
	);`
	mysqlInsertSampleTmpl = `INSERT INTO survey (
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

type MySQL struct {
	DB *sql.DB
}

func (m *MySQL) Write(ctx context.Context, samples <-chan survey.Sample) error {
	if err := mysqlCreateTableIfNotExists(m.DB); err != nil {
		return fmt.Errorf("unable to create table: %s", err)
	}

	counts := map[string]int{
		"error":   0,
		"success": 0,
		"total":   0,
	}
	for sample := range samples {
		counts["total"] += 1
		if err := mysqlInsertSample(m.DB, sample); err != nil {
			counts["error"] += 1
			glog.Warningf("error storing in MySQL DB: %s\n", err)
			continue
		}
		counts["success"] += 1
		if counts["total"]%mysqlSampleCountInfo == 0 {
			glog.Infof("Sample export counts: %+v\n", counts)
		}
	}

	return nil
}

func mysqlCreateTableIfNotExists(db *sql.DB) error {
	statement, err := db.Prepare(mysqlCreateTableTmpl)
	if err != nil {
		return err
	}
	if _, err := statement.Exec(); err != nil {
		return err
	}

	return nil
}

func mysqlInsertSample(db *sql.DB, s survey.Sample) error {
	statement, err := db.Prepare(mysqlInsertSampleTmpl)
	if err != nil {
		return err
	}
	if _, err := statement.Exec(s.Identifier, s.Source, s.X, s.Y, s.SSID, s.BSSID, s.Channel, s.SignalDbm, s.Quality, s.Time.UnixMilli()); err != nil {
		return err
	}

	return nil
}
