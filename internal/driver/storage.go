package driver

import (
	"encoding/json"
	"os"

	"github.com/go-rod/rod"
)

// storageState is the on-disk shape saved/loaded by SaveStorageState/
// SetStorageState, a minimal cookie-jar-plus-web-storage snapshot in the
// spirit of Playwright's storageState.json, grounded on SessionManager.
// ForkSession's cookie-and-storage round trip.
type storageState struct {
	Cookies        []storageCookie   `json:"cookies,omitempty"`
	LocalStorage   map[string]string `json:"localStorage,omitempty"`
	SessionStorage map[string]string `json:"sessionStorage,omitempty"`
}

type storageCookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
}

func loadStorageState(path string) (storageState, error) {
	var state storageState
	data, err := os.ReadFile(path)
	if err != nil {
		return state, err
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, err
	}
	return state, nil
}

func saveStorageState(path string, state storageState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// snapshotStorage reads every key of the named Web Storage object (
// "localStorage" or "sessionStorage") into a map, grounded on
// SessionManager.snapshotStorage's JS eval shape.
func snapshotStorage(page *rod.Page, store string) map[string]string {
	jsFunc := `(storeName) => {
		try {
			const obj = window[storeName];
			const out = {};
			for (const key of Object.keys(obj)) {
				out[key] = obj.getItem(key);
			}
			return out;
		} catch (e) {
			return {};
		}
	}`

	res, err := page.Evaluate(&rod.EvalOptions{
		JS:           jsFunc,
		JSArgs:       []interface{}{store},
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil || res == nil || res.Value.Nil() {
		return nil
	}

	var out map[string]string
	if err := res.Value.Unmarshal(&out); err != nil {
		return nil
	}
	return out
}

// restoreStorage writes back localStorage/sessionStorage entries captured
// by snapshotStorage, grounded on SessionManager.restoreStorage.
func restoreStorage(page *rod.Page, local, session map[string]string) {
	_, _ = page.Evaluate(&rod.EvalOptions{
		JS: `
		(local, session) => {
			try {
				Object.entries(local || {}).forEach(([k, v]) => localStorage.setItem(k, v));
			} catch (e) {}
			try {
				Object.entries(session || {}).forEach(([k, v]) => sessionStorage.setItem(k, v));
			} catch (e) {}
		}
		`,
		JSArgs:       []interface{}{local, session},
		ByValue:      true,
		AwaitPromise: true,
	})
}
