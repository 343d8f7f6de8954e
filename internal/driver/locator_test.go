package driver

import "testing"

// These tests exercise the pure, browser-free pieces of the locator layer
// (key-name lookup) — anything that touches a real page belongs in an
// end-to-end suite run against an actual Chrome, outside this package.
func TestNamedKeysCoversCommonControlKeys(t *testing.T) {
	for _, k := range []string{"Enter", "Tab", "Escape", "ArrowDown", "ArrowUp"} {
		if _, ok := namedKeys[k]; !ok {
			t.Errorf("expected namedKeys to contain %q", k)
		}
	}
}
