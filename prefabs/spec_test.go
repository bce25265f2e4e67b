package prefabs

import (
	"testing"
)

func TestLoadTemplates(t *testing.T) {
	templates, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	// One of each data file, to catch a broken embed.
	for _, name := range []string{"cop", "pistol", "ghetto_bg", "dept_locker", "level_switch"} {
		if _, ok := templates[name]; !ok {
			t.Errorf("template %q missing", name)
		}
	}

	cop := templates["cop"]
	player, err := DecodeComponentSpec[PlayerSpec](cop.Components["player"])
	if err != nil {
		t.Fatalf("decode player spec: %v", err)
	}
	if player.ID != "cop_1" {
		t.Errorf("player id = %q", player.ID)
	}
	if len(player.Hands) != 2 {
		t.Errorf("player hands = %v", player.Hands)
	}

	pistol := templates["pistol"]
	item, err := DecodeComponentSpec[ItemSpec](pistol.Components["item"])
	if err != nil {
		t.Fatalf("decode item spec: %v", err)
	}
	if !item.Handheld {
		t.Error("pistol not handheld")
	}
}

func TestDecodeComponentSpecRejectsGarbage(t *testing.T) {
	if _, err := DecodeComponentSpec[SizeSpec]("not a mapping"); err == nil {
		t.Error("scalar decoded as a component spec")
	}
}

func TestLoadUnknownFile(t *testing.T) {
	if _, err := Load("no_such_file.yaml"); err == nil {
		t.Error("missing prefab file accepted")
	}
}

func TestIsDataFile(t *testing.T) {
	cases := map[string]bool{
		"characters.yaml": true,
		"items.yml":       true,
		"notes.txt":       false,
		"backup.yaml~":    false,
	}
	for path, want := range cases {
		if got := isDataFile(path); got != want {
			t.Errorf("isDataFile(%q) = %v, want %v", path, got, want)
		}
	}
}
