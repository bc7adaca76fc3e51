// Package serde implements the JSON round-trip over a registry's
// components: one file per entity, an object keyed by registered
// component name. Each component value either delegates to the struct's
// own json tags or, when the type registered serialize/deserialize
// services on its metadata, to those.
package serde

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/barhaim/arkgo/internal/corelog"
	"github.com/barhaim/arkgo/internal/ecs"
	"github.com/barhaim/arkgo/internal/ecs/meta"
)

// entityDoc is the on-disk shape: { "components": { "<Name>": {...}, ... } }.
type entityDoc struct {
	Components map[string]json.RawMessage `json:"components"`
}

// SerializeFunc is the signature convention behind the reserved
// meta.ServiceSerialize name: given a pointer to the stored component
// value, produce its JSON body. A type registers one to take over its own
// wire shape; types without one marshal through encoding/json.
type SerializeFunc func(value interface{}) (json.RawMessage, error)

// DeserializeFunc is the signature convention behind
// meta.ServiceDeserialize: given the owning entity, the component's raw
// JSON body and a pointer to the freshly added component, populate it.
type DeserializeFunc func(e ecs.Entity, raw json.RawMessage, value interface{}) error

// EntityFilePath returns the conventional on-disk path for an entity file:
// <resourcesRoot>/entities/<name>.json.
func EntityFilePath(resourcesRoot, name string) string {
	return filepath.Join(resourcesRoot, "entities", name+".json")
}

// Serialize encodes every component e owns into an entityDoc and returns
// its JSON bytes. A component whose type registered a serialize service
// is encoded by that service; every other component value is marshaled by
// encoding/json directly, so its own json tags (and any MarshalJSON it
// defines, e.g. for enums or Duration) drive its wire shape.
func Serialize(r *ecs.Registry, e ecs.Entity) ([]byte, error) {
	doc := entityDoc{Components: make(map[string]json.RawMessage)}

	var marshalErr error
	r.EachComponent(e, func(info *meta.Info, value interface{}) {
		if marshalErr != nil {
			return
		}
		raw, err := marshalComponent(info, value)
		if err != nil {
			marshalErr = fmt.Errorf("serialize component %s: %w", info.Name, err)
			return
		}
		doc.Components[info.Name] = raw
	})
	if marshalErr != nil {
		return nil, marshalErr
	}

	return json.MarshalIndent(doc, "", "  ")
}

// marshalComponent encodes one component, honoring the type's serialize
// service when it registered one.
func marshalComponent(info *meta.Info, value interface{}) (json.RawMessage, error) {
	if svc, ok := info.Service(meta.ServiceSerialize); ok {
		return svc.(SerializeFunc)(value)
	}
	return json.Marshal(value)
}

// Deserialize allocates a fresh entity in r and, one component at a time,
// adds each component named in data via the registry's runtime-typed Add
// and immediately unmarshals its JSON body into it. There is no separate
// second pass: a deserialize service can run before the entity's other
// listed components have been added. A component name with no registered type
// is logged and skipped. A member present in the type but absent from the
// JSON body keeps its default (zero) value and is logged by name; extra
// JSON keys are silently ignored, matching encoding/json's own behavior.
func Deserialize(r *ecs.Registry, data []byte) (ecs.Entity, error) {
	var doc entityDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return ecs.Entity{}, fmt.Errorf("decode entity document: %w", err)
	}

	e := r.Create()

	for name, raw := range doc.Components {
		info, ok := r.Meta().ByName(name)
		if !ok {
			corelog.Warnf(corelog.CategorySerde, "entity %d: unknown component %q, skipped", e.ID(), name)
			continue
		}

		boxed := r.AddUntyped(e, info.ID, ecs.Entity{})
		warnMissingMembers(e.ID(), info, raw)

		if svc, ok := info.Service(meta.ServiceDeserialize); ok {
			if err := svc.(DeserializeFunc)(e, raw, boxed); err != nil {
				corelog.Warnf(corelog.CategorySerde, "entity %d: component %s: %v, keeping defaults", e.ID(), name, err)
			}
			continue
		}

		if err := json.Unmarshal(raw, boxed); err != nil {
			corelog.Warnf(corelog.CategorySerde, "entity %d: component %s: %v, keeping defaults", e.ID(), name, err)
		}
	}

	return e, nil
}

// warnMissingMembers walks info's struct fields and logs, one line per
// field, any json-tagged member that raw's top-level object doesn't
// contain; the member keeps whatever value the default constructor gave
// it.
func warnMissingMembers(id ecs.EntityID, info *meta.Info, raw json.RawMessage) {
	if info.RType == nil || info.RType.Kind() != reflect.Struct {
		return
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return
	}

	for i := 0; i < info.RType.NumField(); i++ {
		field := info.RType.Field(i)
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name == "" {
			name = field.Name
		}
		if _, ok := present[name]; !ok {
			corelog.Warnf(corelog.CategorySerde, "entity %d: component %s: member %q missing, using default", id, info.Name, name)
		}
	}
}

// LoadEntityFile reads and deserializes the entity file at path into r.
func LoadEntityFile(r *ecs.Registry, path string) (ecs.Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("read entity file %s: %w", path, err)
	}
	return Deserialize(r, data)
}

// SaveEntityFile serializes e and writes it to path, creating parent
// directories as needed.
func SaveEntityFile(r *ecs.Registry, e ecs.Entity, path string) error {
	data, err := Serialize(r, e)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create entity directory for %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
