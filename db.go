package main

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// visitorRetention is how long page views are kept.
const visitorRetention = 365 * 24 * time.Hour

// VisitorMetric is one tracked page view. The raw IP is never stored.
type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type VisitorStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

// visitorLog records privacy-conscious page views in SQLite.
type visitorLog struct {
	db   *sql.DB
	salt string
	log  *zap.Logger
}

func openVisitorLog(path string, log *zap.Logger) (*visitorLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One writer keeps ":memory:" databases to a single connection too.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		timestamp INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create visitors table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create visitors index: %w", err)
	}

	return &visitorLog{db: db, salt: randomToken(), log: log}, nil
}

func (v *visitorLog) Close() error {
	return v.db.Close()
}

// hashIP is stable for the life of the process only; the salt is per boot.
func (v *visitorLog) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + v.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (v *visitorLog) track(ip, userAgent, path string, at time.Time) error {
	_, err := v.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, v.hashIP(ip), userAgent, path, at.Unix())
	return err
}

func shouldTrack(path, dnt string) bool {
	if dnt == "1" {
		return false
	}
	for _, prefix := range []string{"/static/", "/images/", "/admin/", "/favicon", "/privacy", "/healthz", "/contact"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// middleware records page views in the background.
func (v *visitorLog) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method == "GET" && shouldTrack(path, c.GetHeader("DNT")) {
			ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
			go func() {
				if err := v.track(ip, ua, path, time.Now()); err != nil {
					v.log.Warn("recording visitor failed", zap.Error(err))
				}
			}()
		}
		c.Next()
	}
}

// cleanup removes views older than the retention window.
func (v *visitorLog) cleanup(now time.Time) (int64, error) {
	res, err := v.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, now.Add(-visitorRetention).Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (v *visitorLog) stats(now time.Time, recent int) (*VisitorStats, error) {
	stats := &VisitorStats{}

	err := v.db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT hashed_ip) FROM visitors`).
		Scan(&stats.TotalVisitors, &stats.UniqueVisitors)
	if err != nil {
		return nil, err
	}

	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	err = v.db.QueryRow(`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, midnight.Unix()).
		Scan(&stats.VisitorsToday)
	if err != nil {
		return nil, err
	}
	err = v.db.QueryRow(`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, now.Add(-7*24*time.Hour).Unix()).
		Scan(&stats.VisitorsThisWeek)
	if err != nil {
		return nil, err
	}

	rows, err := v.db.Query(`
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, recent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var vm VisitorMetric
		var ts int64
		if err := rows.Scan(&vm.ID, &vm.HashedIP, &vm.UserAgent, &vm.Path, &ts); err != nil {
			return nil, err
		}
		vm.Timestamp = time.Unix(ts, 0)
		stats.RecentVisitors = append(stats.RecentVisitors, vm)
	}
	return stats, rows.Err()
}

func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("generate token: %v", err))
	}
	return hex.EncodeToString(b)
}
