package attendance

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoadGroups(t *testing.T) {
	expected := []Group{
		{"Csiga", "🐌"},
		{"Katica halado", "🐞"},
		{"Sas", ""},
	}

	tsv := "Icon\tGroup\n🐌\tCsiga\n\t\n🐞\tKatica halado\n\tSas\n"

	groups, err := LoadGroups(strings.NewReader(tsv))
	if err != nil {
		t.Fatalf("Unexpected error returned from LoadGroups (%v)", err)
	}

	if !reflect.DeepEqual(groups, expected) {
		t.Errorf("Incorrect groups\n   expected: %v\n   got:      %v\n", expected, groups)
	}
}

func TestLoadGroupsWithMissingIconColumn(t *testing.T) {
	if _, err := LoadGroups(strings.NewReader("Group\nCsiga\n")); err == nil {
		t.Errorf("Expected error for missing 'icon' column, got %v", err)
	}
}

func TestLoadGroupsWithDuplicateColumn(t *testing.T) {
	if _, err := LoadGroups(strings.NewReader("Group\tIcon\tgroup\n")); err == nil {
		t.Errorf("Expected error for duplicate column, got %v", err)
	}
}

func TestIcon(t *testing.T) {
	if icon := Icon(DefaultGroups, "Baglyok"); icon != "🦉" {
		t.Errorf("Incorrect icon - expected:%v, got:%v", "🦉", icon)
	}

	if icon := Icon(DefaultGroups, "Unknown"); icon != "" {
		t.Errorf("Incorrect icon - expected:%q, got:%q", "", icon)
	}
}
