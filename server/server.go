package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"image"
	"image/png"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/golang/glog"

	"github.com/sigmaps/heatwave/export"
	"github.com/sigmaps/heatwave/heatmap"
	"github.com/sigmaps/heatwave/survey"

	// Blind import support for sqlite3 used by sqlite.go.
	_ "github.com/mattn/go-sqlite3"
)

var (
	listen   = flag.String("listen", ":8443", "")
	certFile = flag.String("certFile", "", "Path of the file containing the certificate (including the chained intermediates and root) for the TLS connection.")
	keyFile  = flag.String("keyFile", "", "Path of the file containing the key for the TLS connection.")
	output   = flag.String("output", "sqlite", "Sample store to use (one of: sqlite, mysql)")

	// SQLite
	sqliteFile = flag.String("sqliteFile", "/tmp/heatwave", "File path of the sqlite DB file to use.")

	// MySQL
	mysqlServer       = flag.String("mysqlServer", "127.0.0.1:3306", "MySQL TCP server endpoint to connect to (IP/DNS and port).")
	mysqlUser         = flag.String("mysqlUser", "", "MySQL DB user.")
	mysqlPasswordFile = flag.String("mysqlPasswordFile", "", "Path to the file containing the password for the MySQL user.")
	mysqlDBName       = flag.String("mysqlDBName", "heatwave", "Name of the DB to use.")
)

type heatwaveServer struct {
	db      *sql.DB
	samples chan survey.Sample
}

func (s *heatwaveServer) collectHandler(c *gin.Context) {
	samples := []survey.Sample{}
	if err := c.ShouldBindJSON(&samples); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, sample := range samples {
		s.samples <- sample
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"sampleCount": len(samples),
	})
}

// renderConfig reads the optional rendering overrides from the query string.
func renderConfig(c *gin.Context) heatmap.Config {
	cfg := heatmap.DefaultConfig()
	if v, err := strconv.ParseFloat(c.Query("radius"), 64); err == nil && v > 0 {
		cfg.RadiusPx = v
	}
	if v, err := strconv.ParseFloat(c.Query("smoothing"), 64); err == nil && v >= 0 && v <= 1 {
		cfg.Smoothing = v
	}
	if v, err := strconv.Atoi(c.Query("opacity")); err == nil && v >= 0 && v <= 255 {
		cfg.Opacity = uint8(v)
	}
	return cfg
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

func (s *heatwaveServer) heatmapHandler(c *gin.Context) {
	width := intQuery(c, "width", 800)
	height := intQuery(c, "height", 600)
	cfg := renderConfig(c)

	samples, err := export.LoadSamples(s.db, c.Query("ssid"))
	if err != nil {
		glog.Warningf("unable to load survey: %s\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load survey"})
		return
	}

	var img *image.RGBA
	if scale := intQuery(c, "preview", 0); scale > 1 {
		img = heatmap.GeneratePreview(width, height, samples, scale, cfg)
	} else {
		img = heatmap.Generate(width, height, samples, cfg)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		glog.Warningf("unable to encode heatmap: %s\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to encode heatmap"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *heatwaveServer) legendHandler(c *gin.Context) {
	width := intQuery(c, "width", 300)
	height := intQuery(c, "height", 60)

	var buf bytes.Buffer
	if err := png.Encode(&buf, heatmap.Legend(width, height)); err != nil {
		glog.Warningf("unable to encode legend: %s\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to encode legend"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *heatwaveServer) statsHandler(c *gin.Context) {
	samples, err := export.LoadSamples(s.db, c.Query("ssid"))
	if err != nil {
		glog.Warningf("unable to load survey: %s\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load survey"})
		return
	}

	st := heatmap.Statistics(samples, c.Query("ssid"))
	coverage := map[string]float64{}
	for b := heatmap.Excellent; b <= heatmap.Poor; b++ {
		coverage[b.String()] = st.CoveragePercent(b)
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":           st,
		"coveragePercent": coverage,
	})
}

func main() {
	ctx := context.Background()
	// Set defaults for glog flags. Can be overridden via cmdline.
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "WARNING")
	flag.Set("v", "1")
	// Parse flags globally.
	flag.Parse()

	// Store setup: the same DB backs the ingest exporter and the render
	// and stats queries.
	var db *sql.DB
	var exporter export.Exporter
	switch strings.ToLower(*output) {
	case "sqlite":
		var err error
		db, err = sql.Open("sqlite3", *sqliteFile)
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
		db, err = sql.Open("mysql", cfg.FormatDSN())
		if err != nil {
			glog.Exitf("unable to open MySQL DB %q: %s", *mysqlServer, err)
		}
		exporter = &export.MySQL{
			DB: db,
		}
	default:
		glog.Exitf("%q is not a supported store, pick one of: sqlite, mysql", *output)
	}

	// Export samples.
	samples := make(chan survey.Sample, 1000)
	go func() {
		if err := exporter.Write(ctx, samples); err != nil {
			glog.Fatal(err)
		}
	}()

	// Configure and run webserver.
	s := &heatwaveServer{
		db:      db,
		samples: samples,
	}
	router := gin.Default()
	router.POST("/api/v1/collect", s.collectHandler)
	router.GET("/api/v1/heatmap", s.heatmapHandler)
	router.GET("/api/v1/legend", s.legendHandler)
	router.GET("/api/v1/stats", s.statsHandler)

	if *certFile != "" || *keyFile != "" {
		glog.Fatal(router.RunTLS(*listen, *certFile, *keyFile))
	} else {
		glog.Infoln("Resorting to serving HTTP because there was no certificate and key defined.")
		glog.Fatal(router.Run(*listen))
	}

	glog.Flush()
}
