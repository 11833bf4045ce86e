package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// NotebookSnapshot keeps the exact bytes of every notebook export.
type NotebookSnapshot struct {
	ent.Schema
}

func (NotebookSnapshot) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (NotebookSnapshot) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Default("").
			Comment("Session that made the export"),
		field.String("filename").
			Comment("File name offered to the user"),
		field.Int("item_count").
			Default(0),
		field.Text("data").
			Comment("Snapshot JSON as exported"),
	}
}
