package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// HighScore holds the best score reached in one subject.
type HighScore struct {
	ent.Schema
}

func (HighScore) Fields() []ent.Field {
	return []ent.Field{
		field.String("subject").
			NotEmpty().
			Unique().
			Comment("Subject name, e.g. MATH"),
		field.Int("score").
			NonNegative(),
		field.Time("updated_at").
			Default(time.Now).
			Comment("UTC wall-clock time of the last improvement"),
	}
}
