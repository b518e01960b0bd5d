package store

import (
	"testing"

	"folio/internal/models"
)

// TestHomeStoreSingleton drives two saves that both carry a zero id, the
// shape a seed record or a stale fallback copy arrives in. The second
// save must update the row the first one created, never add another.
func TestHomeStoreSingleton(t *testing.T) {
	db := testDB(t)
	s := NewHomeStore(db)

	original, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	t.Cleanup(func() {
		if original != nil {
			s.Save(original)
		} else {
			db.Exec("DELETE FROM home_content")
		}
	})

	first := models.HomeContent{HeroTitle: "First save"}
	if err := s.Save(&first); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second := models.HomeContent{HeroTitle: "Second save"}
	if err := s.Save(&second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM home_content").Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("home_content rows = %d, want exactly 1", count)
	}

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get after saves: %v", err)
	}
	if got == nil || got.HeroTitle != "Second save" {
		t.Errorf("Get = %+v, want the latest save", got)
	}
	if got.ID != second.ID {
		t.Errorf("save did not adopt the existing row id: %s != %s", second.ID, got.ID)
	}
}
