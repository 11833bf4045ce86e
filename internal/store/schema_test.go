package store

import (
	"slices"
	"testing"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

func columnNames(t *schema.Table) []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func indexNames(t *schema.Table) []string {
	names := make([]string, len(t.Indexes))
	for i, ix := range t.Indexes {
		names[i] = ix.Name
	}
	return names
}

func column(t *testing.T, tbl *schema.Table, name string) *schema.Column {
	t.Helper()
	c, ok := tbl.Column(name)
	if !ok {
		t.Fatalf("%s has no column %q", tbl.Name, name)
	}
	return c
}

func TestLLMEventsTableFromEntSchema(t *testing.T) {
	tbl := llmEventsSchema
	if tbl.Name != llmEventsTable {
		t.Fatalf("table name = %q", tbl.Name)
	}
	want := []string{
		"id", "sequence", "timestamp", "provider", "model", "purpose",
		"input_tokens", "output_tokens", "latency_ms", "success",
		"error_message", "request_body", "response_body",
	}
	if got := columnNames(tbl); !slices.Equal(got, want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}

	if len(tbl.PrimaryKey) != 1 || tbl.PrimaryKey[0].Name != "id" || !tbl.PrimaryKey[0].Increment {
		t.Errorf("expected auto-increment id primary key, got %+v", tbl.PrimaryKey)
	}
	if seq := column(t, tbl, "sequence"); !seq.Unique || seq.Type != field.TypeInt64 {
		t.Errorf("sequence: unique=%v type=%v", seq.Unique, seq.Type)
	}
	if ts := column(t, tbl, "timestamp"); ts.Default != nil {
		t.Errorf("timestamp default = %v, want none", ts.Default)
	}
	if tok := column(t, tbl, "input_tokens"); tok.Default != 0 {
		t.Errorf("input_tokens default = %v, want 0", tok.Default)
	}
	body := column(t, tbl, "request_body")
	if body.Type != field.TypeString || body.Default != "" || body.Size < 1<<16 {
		t.Errorf("request_body: type=%v default=%q size=%d", body.Type, body.Default, body.Size)
	}

	wantIdx := []string{"llmrequestevent_timestamp", "llmrequestevent_purpose", "llmrequestevent_success"}
	if got := indexNames(tbl); !slices.Equal(got, wantIdx) {
		t.Errorf("indexes = %v, want %v", got, wantIdx)
	}
	for _, ix := range tbl.Indexes {
		if len(ix.Columns) != 1 {
			t.Errorf("index %s covers %d columns", ix.Name, len(ix.Columns))
		}
	}
}

func TestNotebookTableFromEntSchema(t *testing.T) {
	tbl := notebookSchema
	want := []string{"id", "sequence", "timestamp", "session_id", "filename", "item_count", "data"}
	if got := columnNames(tbl); !slices.Equal(got, want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	if got := indexNames(tbl); !slices.Equal(got, []string{"notebooksnapshot_timestamp"}) {
		t.Errorf("indexes = %v", got)
	}
	if data := column(t, tbl, "data"); data.Default != nil {
		t.Errorf("data default = %v, want none", data.Default)
	}
}
