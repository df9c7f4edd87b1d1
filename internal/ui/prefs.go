package ui

import "github.com/td0m/stuff/pkg/persist"

// Prefs are rendering preferences. The engine round-trips them through the
// snapshot port but never interprets them.
type Prefs struct {
	Theme           string `json:"theme"`
	DefaultView     string `json:"defaultView"`
	CompletionSound bool   `json:"completionSound"`
	ConfirmDialogs  bool   `json:"showConfirmDialogs"`
	TaskCounts      bool   `json:"showTaskCounts"`
	TimeFormat      string `json:"timeFormat"`
}

func DefaultPrefs() Prefs {
	return Prefs{
		Theme:           "light",
		DefaultView:     "inbox",
		CompletionSound: true,
		ConfirmDialogs:  true,
		TaskCounts:      true,
		TimeFormat:      "12h",
	}
}

func LoadPrefs(kv persist.KV) (Prefs, error) {
	p := DefaultPrefs()
	if _, err := kv.Load(persist.KeyPrefs, &p); err != nil {
		return p, err
	}
	return p, nil
}

func SavePrefs(kv persist.KV, p Prefs) error {
	return kv.Save(persist.KeyPrefs, p)
}
