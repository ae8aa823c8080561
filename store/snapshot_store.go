// api/store/snapshot_store.go
package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"funnelboard/api/database"
	"funnelboard/api/models"

	"github.com/google/uuid"
)

// SourceKind selects where the snapshot is read from.
type SourceKind string

const (
	SourceCSV        SourceKind = "csv"
	SourceClickHouse SourceKind = "clickhouse"
	SourcePostgres   SourceKind = "postgres"
)

// Source identifies one snapshot origin. Path is the CSV file path for
// SourceCSV and the table name for the database kinds (defaulting to
// user_behavior).
type Source struct {
	Kind SourceKind
	Path string
}

// Key is the cache identity of the source.
func (s Source) Key() string {
	return string(s.Kind) + ":" + s.Path
}

// SourceFromEnv builds the configured snapshot source.
func SourceFromEnv() Source {
	kind := SourceKind(os.Getenv("SNAPSHOT_SOURCE"))
	if kind == "" {
		kind = SourceCSV
	}
	path := os.Getenv("SNAPSHOT_PATH")
	if path == "" {
		switch kind {
		case SourceCSV:
			path = "data/user_behavior.csv"
		default:
			path = "user_behavior"
		}
	}
	return Source{Kind: kind, Path: path}
}

// Snapshot is one loaded, immutable event table. Derived tables are
// built per request; the Events slice itself is never written after
// load, so concurrent renders can share it freely.
type Snapshot struct {
	ID       string
	Source   string
	LoadedAt time.Time
	Events   []models.Event
	MinDate  time.Time
	MaxDate  time.Time
	Dropped  int // rows discarded for unparseable timestamps or malformed fields
}

// SnapshotStore loads snapshots and memoizes them by source identity
// for the lifetime of the process.
type SnapshotStore struct {
	CH *database.ClickHouseClient
	PG *database.DBClient

	mu    sync.RWMutex
	cache map[string]*Snapshot
}

func NewSnapshotStore(ch *database.ClickHouseClient, pg *database.DBClient) *SnapshotStore {
	return &SnapshotStore{
		CH:    ch,
		PG:    pg,
		cache: make(map[string]*Snapshot),
	}
}

// Load returns the memoized snapshot for src, reading it on first use.
func (s *SnapshotStore) Load(ctx context.Context, src Source) (*Snapshot, error) {
	key := src.Key()

	s.mu.RLock()
	snap, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return snap, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap, ok := s.cache[key]; ok {
		return snap, nil
	}

	var (
		events  []models.Event
		dropped int
		err     error
	)
	switch src.Kind {
	case SourceCSV:
		events, dropped, err = loadCSV(src.Path)
	case SourceClickHouse:
		events, dropped, err = s.loadClickHouse(ctx, src.Path)
	case SourcePostgres:
		events, dropped, err = s.loadPostgres(ctx, src.Path)
	default:
		err = fmt.Errorf("unknown snapshot source kind %q", src.Kind)
	}
	if err != nil {
		return nil, err
	}

	snap = &Snapshot{
		ID:       uuid.New().String(),
		Source:   key,
		LoadedAt: time.Now().UTC(),
		Events:   events,
		Dropped:  dropped,
	}
	for _, e := range events {
		if snap.MinDate.IsZero() || e.Timestamp.Before(snap.MinDate) {
			snap.MinDate = e.Timestamp
		}
		if e.Timestamp.After(snap.MaxDate) {
			snap.MaxDate = e.Timestamp
		}
	}
	s.cache[key] = snap

	log.Printf("Loaded snapshot %s from %s: %d events (%d rows dropped).", snap.ID, key, len(events), dropped)
	return snap, nil
}

// timestampPrefix strips the numeric row-id prefix some CSV exports
// carry in front of the timestamp ("123456 2017-11-25 13:01:02").
var timestampPrefix = regexp.MustCompile(`\d{4}-\d{2}-\d{2}.+`)

// parseTimestamp coerces the raw timestamp column. It accepts RFC3339,
// "2006-01-02 15:04:05", a bare date, unix seconds, or any of those
// behind a row-id prefix. Unparseable values report ok=false and the
// row is dropped — time-based metrics must never see them, and a bad
// row must never crash the load.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), true
	}

	candidate := raw
	if m := timestampPrefix.FindString(raw); m != "" {
		candidate = m
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// loadCSV reads a snapshot file with the header
// UserID,ItemID,CategoryID,BehaviorType,Timestamp (any column order).
// Malformed rows are skipped and counted, never fatal.
func loadCSV(path string) ([]models.Event, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read snapshot header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"userid", "itemid", "categoryid", "behaviortype", "timestamp"} {
		if _, ok := col[required]; !ok {
			return nil, 0, fmt.Errorf("snapshot header missing column %q", required)
		}
	}

	var events []models.Event
	dropped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			dropped++
			continue
		}

		field := func(name string) string {
			i := col[name]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		userID, err1 := strconv.ParseInt(field("userid"), 10, 64)
		itemID, err2 := strconv.ParseInt(field("itemid"), 10, 64)
		categoryID, err3 := strconv.ParseInt(field("categoryid"), 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			dropped++
			continue
		}
		ts, ok := parseTimestamp(field("timestamp"))
		if !ok {
			dropped++
			continue
		}

		events = append(events, models.Event{
			UserID:     userID,
			ItemID:     itemID,
			CategoryID: categoryID,
			Behavior:   models.BehaviorType(field("behaviortype")),
			Timestamp:  ts,
		})
	}
	return events, dropped, nil
}

func (s *SnapshotStore) loadClickHouse(ctx context.Context, table string) ([]models.Event, int, error) {
	if s.CH == nil {
		return nil, 0, fmt.Errorf("clickhouse snapshot source is not configured")
	}

	query := fmt.Sprintf(`
		SELECT toInt64(user_id), toInt64(item_id), toInt64(category_id), behavior_type, timestamp
		FROM %s
		ORDER BY timestamp
	`, table)

	rows, err := s.CH.Conn.Query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query clickhouse snapshot: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	dropped := 0
	for rows.Next() {
		var (
			userID, itemID, categoryID int64
			behavior                   string
			ts                         time.Time
		)
		if err := rows.Scan(&userID, &itemID, &categoryID, &behavior, &ts); err != nil {
			log.Printf("Error scanning clickhouse snapshot row: %v", err)
			dropped++
			continue
		}
		if ts.IsZero() {
			dropped++
			continue
		}
		events = append(events, models.Event{
			UserID:     userID,
			ItemID:     itemID,
			CategoryID: categoryID,
			Behavior:   models.BehaviorType(behavior),
			Timestamp:  ts.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row error during clickhouse snapshot query: %w", err)
	}
	return events, dropped, nil
}

func (s *SnapshotStore) loadPostgres(ctx context.Context, table string) ([]models.Event, int, error) {
	if s.PG == nil {
		return nil, 0, fmt.Errorf("postgres snapshot source is not configured")
	}

	query := fmt.Sprintf(`
		SELECT user_id, item_id, category_id, behavior_type, timestamp
		FROM %s
		ORDER BY timestamp
	`, table)

	rows, err := s.PG.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query postgres snapshot: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	dropped := 0
	for rows.Next() {
		var (
			userID, itemID, categoryID int64
			behavior                   string
			ts                         time.Time
		)
		if err := rows.Scan(&userID, &itemID, &categoryID, &behavior, &ts); err != nil {
			log.Printf("Error scanning postgres snapshot row: %v", err)
			dropped++
			continue
		}
		if ts.IsZero() {
			dropped++
			continue
		}
		events = append(events, models.Event{
			UserID:     userID,
			ItemID:     itemID,
			CategoryID: categoryID,
			Behavior:   models.BehaviorType(behavior),
			Timestamp:  ts.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row error during postgres snapshot query: %w", err)
	}
	return events, dropped, nil
}
