package attendance

import (
	"testing"
)

func TestStoreCheckInNotifiesOnChange(t *testing.T) {
	changes := 0

	store := NewStore(csiga(t))
	store.OnChange = func() { changes++ }

	for _, student := range []string{"Anna", "Anna", "Cili", "Zoltan"} {
		if _, err := store.CheckIn("Csiga", today, student); err != nil {
			t.Fatalf("Unexpected error checking in %v (%v)", student, err)
		}
	}

	if changes != 1 {
		t.Errorf("Incorrect number of change notifications - expected:%v, got:%v", 1, changes)
	}
}

func TestStoreGroups(t *testing.T) {
	store := NewStore(makeWorkbook(t, map[string][][]any{
		"Csiga": {{"Name"}},
	}))

	groups, err := store.Groups()
	if err != nil {
		t.Fatalf("Unexpected error returned from Groups (%v)", err)
	}

	if len(groups) != 1 || groups[0] != "Csiga" {
		t.Errorf("Incorrect groups - expected:%v, got:%v", []string{"Csiga"}, groups)
	}
}
