package render

import "testing"

func TestTUIThemeByName(t *testing.T) {
	for _, name := range TUIThemeNames() {
		theme, ok := TUIThemeByName(name)
		if !ok {
			t.Errorf("theme %q not found", name)
			continue
		}
		if theme.Primary == "" || theme.Text == "" || theme.Error == "" {
			t.Errorf("theme %q has empty colors", name)
		}
	}

	if _, ok := TUIThemeByName("nope"); ok {
		t.Error("unknown theme should not be found")
	}
}

func TestSetTUITheme(t *testing.T) {
	defer SetTUITheme(TokyoNightTheme.Name)

	if !SetTUITheme("nord") {
		t.Fatal("SetTUITheme(nord) returned false")
	}
	if GetTUITheme().Name != "nord" {
		t.Errorf("active theme = %q", GetTUITheme().Name)
	}

	if SetTUITheme("missing") {
		t.Error("SetTUITheme(missing) should return false")
	}
	if GetTUITheme().Name != "nord" {
		t.Error("unknown theme must not change the active theme")
	}
}
