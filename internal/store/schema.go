package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entdef "github.com/abhisek/drillpad/ent/schema"
)

const (
	llmEventsTable = "llm_request_events"
	notebookTable  = "notebook_snapshots"
)

// Tables are derived from the ent schema definitions; there is no
// generated client, the store writes SQL through the dialect builder.
var (
	llmEventsSchema = tableFor(llmEventsTable, "LLMRequestEvent", entdef.LLMRequestEvent{})
	notebookSchema  = tableFor(notebookTable, "NotebookSnapshot", entdef.NotebookSnapshot{})
)

// definition is the part of an ent schema a table is built from.
type definition interface {
	Fields() []ent.Field
	Indexes() []ent.Index
	Mixin() []ent.Mixin
}

// tableFor lays out an auto-increment id followed by the mixin fields and
// then the schema's own fields. Index names follow ent's
// "<lowercased type>_<fields>" convention.
func tableFor(name, typeName string, def definition) *schema.Table {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range def.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, def.Fields()...)
	indexes = append(indexes, def.Indexes()...)

	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			panic(fmt.Sprintf("store: field %s.%s: %v", typeName, d.Name, d.Err))
		}
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Size:     int64(d.Size),
		}
		// Function defaults (time.Now) are applied by the writer.
		switch v := d.Default.(type) {
		case int, int64, string, bool:
			c.Default = v
		}
		t.AddColumn(c)
	}
	for _, ix := range indexes {
		d := ix.Descriptor()
		for _, col := range d.Fields {
			if !t.HasColumn(col) {
				panic(fmt.Sprintf("store: index on %s.%s: no such field", typeName, col))
			}
		}
		t.AddIndex(strings.ToLower(typeName)+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t
}

// migrate creates or updates the tables above.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, llmEventsSchema, notebookSchema)
}

// builder returns a SQLite statement builder.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
