package persist

import (
	"github.com/td0m/stuff/pkg/task"
)

// KV is the snapshot port the engine persists through: one structured value
// per key. Load reports whether the key existed; an absent key is not an
// error. Values round-trip through JSON, so timestamps come back as RFC 3339
// strings and nil pointers survive as nulls.
type KV interface {
	Save(key string, v any) error
	Load(key string, v any) (bool, error)
}

// one key per top-level collection or marker
const (
	KeyTasks       = "stuff-tasks"
	KeyProjects    = "stuff-projects"
	KeyTags        = "stuff-tags"
	KeyFocus       = "stuff-focus"
	KeyLastPlanned = "stuff-lastPlanningDate"
	KeyView        = "stuff-selectedView"
	KeyPrefs       = "stuff-prefs"
)

// SaveStore writes every collection of the store under its own key.
func SaveStore(kv KV, s *task.Store) error {
	if err := kv.Save(KeyTasks, s.Tasks); err != nil {
		return err
	}
	if err := kv.Save(KeyProjects, s.Projects); err != nil {
		return err
	}
	if err := kv.Save(KeyTags, s.Tags); err != nil {
		return err
	}
	if err := kv.Save(KeyFocus, s.Focus); err != nil {
		return err
	}
	return kv.Save(KeyLastPlanned, s.LastPlanned)
}

// LoadStore fills a store from a snapshot. Keys that were never saved leave
// their collection empty.
func LoadStore(kv KV, s *task.Store) error {
	if _, err := kv.Load(KeyTasks, &s.Tasks); err != nil {
		return err
	}
	if _, err := kv.Load(KeyProjects, &s.Projects); err != nil {
		return err
	}
	if _, err := kv.Load(KeyTags, &s.Tags); err != nil {
		return err
	}
	if _, err := kv.Load(KeyFocus, &s.Focus); err != nil {
		return err
	}
	if _, err := kv.Load(KeyLastPlanned, &s.LastPlanned); err != nil {
		return err
	}
	s.Reindex()
	return nil
}
