package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/favourami/eventplanner/internal/core/ports"
)

func TestToDocument_ConvertsDates(t *testing.T) {
	when := time.Date(2026, time.March, 14, 18, 30, 0, 0, time.UTC)
	raw := bson.M{
		"_id":       "e1",
		"name":      "Birthday",
		"occurs_at": primitive.NewDateTimeFromTime(when),
		"count":     int32(3),
	}

	d, err := toDocument(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != "e1" {
		t.Errorf("expected id e1, got %q", d.ID)
	}
	if _, ok := d.Fields["_id"]; ok {
		t.Error("expected _id to be stripped from fields")
	}
	if got := d.Time("occurs_at"); !got.Equal(when) {
		t.Errorf("expected %v, got %v", when, got)
	}
	if got := d.Fields["count"]; got != int64(3) {
		t.Errorf("expected int64(3), got %#v", got)
	}
}

func TestToDocument_RejectsNonStringID(t *testing.T) {
	_, err := toDocument(bson.M{"_id": primitive.NewObjectID()})
	if err == nil {
		t.Fatal("expected error for ObjectID _id")
	}
}

func TestToBSON(t *testing.T) {
	when := time.Date(2026, time.March, 14, 18, 30, 0, 0, time.UTC)
	out := toBSON("e1", ports.Fields{"name": "Birthday", "occurs_at": when, "_id": "ignored"})

	if out["_id"] != "e1" {
		t.Errorf("expected _id e1, got %v", out["_id"])
	}
	dt, ok := out["occurs_at"].(primitive.DateTime)
	if !ok {
		t.Fatalf("expected primitive.DateTime, got %T", out["occurs_at"])
	}
	if !dt.Time().Equal(when) {
		t.Errorf("expected %v, got %v", when, dt.Time())
	}

	partial := toBSON("", ports.Fields{"name": "x"})
	if _, ok := partial["_id"]; ok {
		t.Error("expected no _id for partial update")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := normalizeEmail("  Jo@Example.COM "); got != "jo@example.com" {
		t.Errorf("got %q", got)
	}
}
