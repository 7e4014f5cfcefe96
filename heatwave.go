package main

import (
	"context"
	"database/sql"
	"flag"
	"io/ioutil"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/sigmaps/heatwave/export"
	"github.com/sigmaps/heatwave/filter"
	"github.com/sigmaps/heatwave/scan/airport"
	"github.com/sigmaps/heatwave/scan/iw"
	"github.com/sigmaps/heatwave/survey"

	// Blind import support for sqlite3 used by sqlite.go.
	_ "github.com/mattn/go-sqlite3"
)

// Flags
var (
	identifier  = flag.String("id", "", "unique identifier of this survey run (defaults to a random UUID)")
	iface       = flag.String("iface", "wlan0", "wireless interface to scan on")
	posX        = flag.Float64("x", 0.5, "normalized X position on the floor plan, [0,1]")
	posY        = flag.Float64("y", 0.5, "normalized Y position on the floor plan, [0,1]")
	passes      = flag.Int("passes", 1, "number of scan passes to run at this position")
	interval    = flag.Duration("interval", 5*time.Second, "pause between scan passes")
	scannerType = flag.String("scanner", "", "scanner to use (one of: iw, airport)")
	output      = flag.String("output", "", "export mechanism to use (one of: csv, sqlite, mysql, server)")
	ssidOnly    = flag.String("ssid", "", "only keep samples of this SSID (empty keeps all networks)")
	minSignal   = flag.Int("minSignal", 0, "drop samples weaker than this dBm (0 keeps all)")

	// SQLite
	sqliteFile = flag.String("sqliteFile", "/tmp/heatwave", "File path of the sqlite DB file to use.")

	// MySQL
	mysqlServer       = flag.String("mysqlServer", "127.0.0.1:3306", "MySQL TCP server endpoint to connect to (IP/DNS and port).")
	mysqlUser         = flag.String("mysqlUser", "", "MySQL DB user.")
	mysqlPasswordFile = flag.String("mysqlPasswordFile", "", "Path to the file containing the password for the MySQL user.")
	mysqlDBName       = flag.String("mysqlDBName", "heatwave", "Name of the DB to use.")

	// Heatwave Server
	serverAddr    = flag.String("server", "https://localhost:8443", "URL scheme, address and port of the heatwave server.")
	serverSamples = flag.Int("serverSamples", 0, "Defines how many samples should be sent to the server at once.")
)

func main() {
	ctx := context.Background()
	// Set defaults for glog flags. Can be overridden via cmdline.
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "WARNING")
	flag.Set("v", "1")
	// Parse flags globally.
	flag.Parse()

	if *identifier == "" {
		*identifier = uuid.NewString()
	}

	// Scanner setup
	var scanner survey.Scanner
	switch strings.ToLower(*scannerType) {
	case iw.SourceName:
		scanner = &iw.Scanner{
			Identifier: *identifier,
		}
	case airport.SourceName:
		scanner = &airport.Scanner{
			Identifier: *identifier,
		}
	default:
		glog.Exitf("%q is not a supported scanner type, pick one of: iw, airport", *scannerType)
	}
	opts := &survey.Options{
		Interface: *iface,
		X:         *posX,
		Y:         *posY,
		Passes:    *passes,
		Interval:  *interval,
	}

	// Exporter setup
	var exporter export.Exporter
	switch strings.ToLower(*output) {
	case "csv":
		exporter = &export.CSV{}
	case "sqlite":
		db, err := sql.Open("sqlite3", *sqliteFile)
		if err != nil {
			glog.Exitf("unable to open sqlite DB %q: %s", *sqliteFile, err)
		}
		exporter = &export.SQLite{
			DB: db,
		}
	case "mysql":
		pass, err := ioutil.ReadFile(*mysqlPasswordFile)
		if err != nil {
			glog.Exitf("unable to read MySQL password file %q: %s\n", *mysqlPasswordFile, err)
		}
		cfg := mysql.Config{
			User:   *mysqlUser,
			Passwd: strings.TrimSpace(string(pass)),
			Net:    "tcp",
			Addr:   *mysqlServer,
			DBName: *mysqlDBName,
		}
		db, err := sql.Open("mysql", cfg.FormatDSN())
		if err != nil {
			glog.Exitf("unable to open MySQL DB %q: %s", *mysqlServer, err)
		}
		exporter = &export.MySQL{
			DB: db,
		}
	case "server":
		exporter = &export.Server{
			Server:            *serverAddr,
			SendSamplesAmount: *serverSamples,
		}
	default:
		glog.Exitf("%q is not a supported export method, pick one of: csv, sqlite, mysql, server", *output)
	}

	// Filter setup
	var filters []filter.Filterer
	if *ssidOnly != "" {
		filters = append(filters, &filter.FilterSSID{SSID: *ssidOnly})
	}
	if *minSignal != 0 {
		filters = append(filters, &filter.FilterFloor{MinSignalDbm: *minSignal})
	}

	// Run
	samples := make(chan survey.Sample)
	filtered := make(chan survey.Sample)
	go func() {
		if err := scanner.Scan(opts, samples); err != nil {
			glog.Fatal(err)
		}
		close(samples)
	}()
	go func() {
		if err := filter.Filter(samples, filtered, filters); err != nil {
			glog.Fatal(err)
		}
		close(filtered)
	}()

	if err := exporter.Write(ctx, filtered); err != nil {
		glog.Fatal(err)
	}

	glog.Flush()
}
