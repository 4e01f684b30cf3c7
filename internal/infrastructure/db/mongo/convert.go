package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/favourami/eventplanner/internal/core/ports"
)

const idField = "_id"

// toDocument converts a raw result into a ports.Document. Stored dates are
// returned as UTC time.Time values.
func toDocument(raw bson.M) (ports.Document, error) {
	id, ok := raw[idField].(string)
	if !ok {
		return ports.Document{}, fmt.Errorf("document id has type %T, want string", raw[idField])
	}
	fields := make(ports.Fields, len(raw)-1)
	for k, v := range raw {
		if k == idField {
			continue
		}
		fields[k] = fromBSON(v)
	}
	return ports.Document{ID: id, Fields: fields}, nil
}

func fromBSON(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case int32:
		return int64(t)
	default:
		return v
	}
}

// toBSON prepares fields for storage under id. An empty id leaves _id out.
func toBSON(id string, fields ports.Fields) bson.M {
	out := make(bson.M, len(fields)+1)
	for k, v := range fields {
		if k == idField {
			continue
		}
		if t, ok := v.(time.Time); ok {
			v = primitive.NewDateTimeFromTime(t)
		}
		out[k] = v
	}
	if id != "" {
		out[idField] = id
	}
	return out
}
