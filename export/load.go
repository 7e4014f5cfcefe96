package export

import (
	"database/sql"
	"time"

	"github.com/golang/glog"

	"github.com/sigmaps/heatwave/survey"
)

const loadSamplesTmpl = `SELECT
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
	FROM
		survey
	WHERE
		SSID LIKE ?
	ORDER BY
		Time ASC;`

// LoadSamples reads a stored survey back out of a SQL store for rendering and
// statistics. An empty ssid loads every network.
func LoadSamples(db *sql.DB, ssid string) ([]survey.Sample, error) {
	if ssid == "" {
		ssid = "%"
	}
	statement, err := db.Prepare(loadSamplesTmpl)
	if err != nil {
		return nil, err
	}
	rows, err := statement.Query(ssid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []survey.Sample
	for rows.Next() {
		var s survey.Sample
		var timeMilli int64
		if err := rows.Scan(&s.Identifier, &s.Source, &s.X, &s.Y, &s.SSID, &s.BSSID, &s.Channel, &s.SignalDbm, &s.Quality, &timeMilli); err != nil {
			glog.Warningf("unable to read sample from DB: %s\n", err)
			continue
		}
		s.Time = time.Unix(0, timeMilli*int64(time.Millisecond))
		samples = append(samples, s)
	}

	return samples, rows.Err()
}
