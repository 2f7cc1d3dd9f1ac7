package db

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"testing"
)

// captureHandler keeps the attributes of every record it sees.
type captureHandler struct {
	mu      sync.Mutex
	records []map[string]slog.Value
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := map[string]slog.Value{"msg": slog.StringValue(r.Message)}
	r.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value
		return true
	})
	h.records = append(h.records, m)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) last(t *testing.T) map[string]slog.Value {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.records) - 1; i >= 0; i-- {
		if h.records[i]["msg"].String() == "sql" {
			return h.records[i]
		}
	}
	t.Fatal("no sql record logged")
	return nil
}

func openLogged(t *testing.T) (*sql.DB, *captureHandler) {
	t.Helper()
	h := &captureHandler{}
	connector, err := NewLoggingConnector(":memory:", slog.New(h))
	if err != nil {
		t.Fatalf("NewLoggingConnector: %v", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db, h
}

func TestNewLoggingConnector_nilLoggerUsesDefault(t *testing.T) {
	conn, err := NewLoggingConnector(":memory:", nil)
	if err != nil {
		t.Fatalf("NewLoggingConnector: %v", err)
	}
	if conn.(*loggingConnector).logger == nil {
		t.Fatal("logger is nil; want slog.Default()")
	}
}

func TestLoggingConnector_ExecLogsStatementAndArgs(t *testing.T) {
	db, h := openLogged(t)

	if _, err := db.Exec(`CREATE TABLE kv_store (key TEXT PRIMARY KEY, value TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv_store (key, value) VALUES (?, ?)`, "shorecrew_stats", []byte(`{"crews":4}`)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got := h.last(t)
	if got["op"].String() != "exec" {
		t.Errorf("op = %q; want exec", got["op"].String())
	}
	if got["sql"].String() != `INSERT INTO kv_store (key, value) VALUES (?, ?)` {
		t.Errorf("sql = %q", got["sql"].String())
	}
	args, ok := got["args"].Any().([]string)
	if !ok || len(args) != 2 || args[0] != "shorecrew_stats" || args[1] != `{"crews":4}` {
		t.Errorf("args = %#v; want [shorecrew_stats {\"crews\":4}]", got["args"].Any())
	}
}

func TestLoggingConnector_QueryLogged(t *testing.T) {
	db, h := openLogged(t)

	var one int
	if err := db.QueryRow(`SELECT 1`).Scan(&one); err != nil {
		t.Fatalf("query row: %v", err)
	}
	got := h.last(t)
	if got["op"].String() != "query" || got["sql"].String() != `SELECT 1` {
		t.Errorf("record = op %q sql %q; want query SELECT 1", got["op"].String(), got["sql"].String())
	}
}

func TestLoggingConnector_Transaction(t *testing.T) {
	db, _ := openLogged(t)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tx.Exec(`CREATE TABLE t (id INTEGER)`); err != nil {
		t.Fatalf("exec in tx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestLoggingDriver_OpenRejected(t *testing.T) {
	if _, err := (loggingDriver{}).Open(":memory:"); err == nil {
		t.Fatal("loggingDriver.Open() = nil error; want error")
	}
}

func TestFormatArg(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{in: nil, want: "NULL"},
		{in: []byte("abc"), want: "abc"},
		{in: int64(7), want: "7"},
	}
	for _, tt := range tests {
		if got := formatArg(tt.in); got != tt.want {
			t.Errorf("formatArg(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
