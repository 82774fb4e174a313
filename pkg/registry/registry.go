// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Save writes the registry as indented JSON, creating the directory if needed.
func Save(reg *ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Merge replaces activities in reg with those in generated, matched by ID,
// and appends new ones. Hand-set implementation statuses survive. The result
// is sorted by ID.
func Merge(reg *ActivityRegistry, generated []Activity, now time.Time) {
	status := make(map[string]string, len(reg.Activities))
	index := make(map[string]int, len(reg.Activities))
	for i, a := range reg.Activities {
		status[a.ID] = a.ImplementationStatus
		index[a.ID] = i
	}

	for _, a := range generated {
		if s := status[a.ID]; s != "" {
			a.ImplementationStatus = s
		}
		if i, ok := index[a.ID]; ok {
			reg.Activities[i] = a
			continue
		}
		index[a.ID] = len(reg.Activities)
		reg.Activities = append(reg.Activities, a)
	}

	sort.Slice(reg.Activities, func(i, j int) bool {
		return reg.Activities[i].ID < reg.Activities[j].ID
	})
	reg.LastUpdated = now.UTC().Format(time.RFC3339)
}

// Validate checks that every activity is identifiable and unique.
func Validate(reg *ActivityRegistry) error {
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for _, activity := range reg.Activities {
		if activity.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[activity.ID] {
			return fmt.Errorf("duplicate activity ID: %s", activity.ID)
		}
		ids[activity.ID] = true

		if activity.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", activity.ID)
		}
		if activity.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: TaskType", activity.ID)
		}
		if taskTypes[activity.TaskType] {
			return fmt.Errorf("task type %s registered twice", activity.TaskType)
		}
		taskTypes[activity.TaskType] = true

		if activity.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", activity.ID)
		}
	}
	return nil
}
