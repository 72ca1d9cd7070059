// SPDX-License-Identifier: MPL-2.0

// Package inherit resolves workspace-level task inheritance. The
// workspace contributes configuration through layers: a wildcard layer
// at .strata/tasks.cue applying to every project, plus scoped layers
// under .strata/tasks/ selected by a project's platform, language,
// type, and tags.
package inherit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"strata-cli/pkg/project"
	"strata-cli/pkg/projfile"
	"strata-cli/pkg/types"
)

const (
	// wildcardLayer applies to every project.
	wildcardLayer = "*"

	// tasksFileName is the wildcard layer file inside the workspace
	// configuration directory.
	tasksFileName = "tasks.cue"

	// tasksDirName holds the scoped layer files, one per layer name.
	tasksDirName = "tasks"
)

// ConfigDirName is the workspace configuration directory at the
// workspace root.
const ConfigDirName = ".strata"

// Manager loads the workspace inheritance layers once and serves merged
// snapshots for project resolution. After construction it is read-only
// apart from its internal snapshot cache, so concurrent resolution of
// independent projects may share one Manager.
type Manager struct {
	layers map[string]*projfile.InheritedTasksConfig

	mu    sync.Mutex
	cache map[string]*project.InheritedSnapshot
}

// NewManager loads every inheritance layer under workspaceRoot's
// configuration directory. A missing wildcard file or layer directory
// contributes nothing; malformed layer files fail construction.
func NewManager(workspaceRoot types.FilesystemPath) (*Manager, error) {
	m := &Manager{
		layers: map[string]*projfile.InheritedTasksConfig{},
		cache:  map[string]*project.InheritedSnapshot{},
	}

	configDir := filepath.Join(string(workspaceRoot), ConfigDirName)

	if err := m.loadLayer(wildcardLayer, filepath.Join(configDir, tasksFileName)); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(configDir, tasksDirName))
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("failed to read inheritance layer directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".cue") {
			continue
		}
		layer := strings.TrimSuffix(name, ".cue")
		if err := m.loadLayer(layer, filepath.Join(configDir, tasksDirName, name)); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Manager) loadLayer(layer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read inheritance layer %s: %w", layer, err)
	}

	cfg, err := projfile.ParseInheritedTasksBytes(data, filepath.ToSlash(filepath.Join(ConfigDirName, filepath.Base(filepath.Dir(path)), filepath.Base(path))))
	if err != nil {
		return err
	}

	m.layers[layer] = cfg
	return nil
}

// LayerNames returns every loaded layer name, sorted, the wildcard
// first. Intended for workspace introspection commands.
func (m *Manager) LayerNames() []string {
	names := make([]string, 0, len(m.layers))
	for name := range m.layers {
		if name != wildcardLayer {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if _, ok := m.layers[wildcardLayer]; ok {
		names = append([]string{wildcardLayer}, names...)
	}
	return names
}

// GetInheritedConfig returns the merged configuration applying to a
// project with the given traits, along with the ordered list of layers
// that contributed. Layers apply most generic first; when two layers
// declare the same task or file group id, the later layer wins
// wholesale. Results are cached per trait combination.
func (m *Manager) GetInheritedConfig(
	platform projfile.PlatformType,
	language projfile.LanguageType,
	projectType projfile.ProjectType,
	tags []types.Tag,
) (*project.InheritedSnapshot, error) {
	lookup := lookupOrder(platform, language, projectType, tags)
	key := strings.Join(lookup, "|")

	m.mu.Lock()
	defer m.mu.Unlock()

	if snap, ok := m.cache[key]; ok {
		return snap, nil
	}

	snap := &project.InheritedSnapshot{
		Config: projfile.InheritedTasksConfig{
			FileGroups: projfile.FileGroupsMap{},
			Tasks:      projfile.TasksMap{},
		},
	}

	for _, layer := range lookup {
		cfg, ok := m.layers[layer]
		if !ok {
			continue
		}
		snap.Order = append(snap.Order, layer)

		for id, patterns := range cfg.FileGroups {
			snap.Config.FileGroups[id] = patterns
		}
		for id, task := range cfg.Tasks {
			snap.Config.Tasks[id] = task
		}
	}

	m.cache[key] = snap
	return snap, nil
}

// lookupOrder lists the layer names applying to the given traits, most
// generic first. Unset traits contribute no entries.
func lookupOrder(
	platform projfile.PlatformType,
	language projfile.LanguageType,
	projectType projfile.ProjectType,
	tags []types.Tag,
) []string {
	order := []string{wildcardLayer}

	if platform.IsSet() && platform != projfile.PlatformUnknown {
		order = append(order, platform.String())
	}
	if lang := language.OrUnknown(); lang != projfile.LanguageUnknown {
		order = append(order, lang.String())
		if platform.IsSet() && platform != projfile.PlatformUnknown {
			order = append(order, lang.String()+"-"+platform.String())
		}
	}
	if pt := projectType.OrUnknown(); pt != projfile.ProjectTypeUnknown {
		order = append(order, pt.String())
	}
	for _, tag := range tags {
		order = append(order, "tag-"+tag.String())
	}

	return order
}
