package serde_test

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barhaim/arkgo/internal/components"
	"github.com/barhaim/arkgo/internal/ecs"
	"github.com/barhaim/arkgo/internal/ecs/meta"
	"github.com/barhaim/arkgo/internal/serde"
)

func newRegistry() *ecs.Registry { return ecs.NewRegistry(meta.NewRegistry()) }

func TestSerde_RoundTrip(t *testing.T) {
	r := newRegistry()
	e := r.Create()

	transform := components.NewTransform()
	transform.Position = components.Vector2{X: 10, Y: 20}
	transform.Rotation = 45
	transform.Scale = components.Vector2{X: 2, Y: 2}
	ecs.Add(r, e, transform)
	ecs.Add(r, e, components.Tag{Name: "hero"})

	data, err := serde.Serialize(r, e)
	require.NoError(t, err)

	dst := newRegistry()
	// A real boot sequence registers every component type it knows about
	// before loading any save file; mirror that here instead of relying on
	// dst having already Add-ed these types itself.
	meta.RegisterType[components.Transform](dst.Meta())
	meta.RegisterType[components.Tag](dst.Meta())

	got, err := serde.Deserialize(dst, data)
	require.NoError(t, err)

	gotTransform := ecs.Get[components.Transform](dst, got)
	assert.Equal(t, transform.Position, gotTransform.Position)
	assert.Equal(t, transform.Rotation, gotTransform.Rotation)
	assert.Equal(t, transform.Scale, gotTransform.Scale)

	gotTag := ecs.Get[components.Tag](dst, got)
	assert.Equal(t, "hero", gotTag.Name)
}

func TestSerde_UnknownComponentNameIsSkipped(t *testing.T) {
	r := newRegistry()
	doc := []byte(`{"components":{"NoSuchComponent":{"x":1}}}`)

	e, err := serde.Deserialize(r, doc)
	require.NoError(t, err)
	assert.True(t, e.Valid())
}

func TestSerde_MissingMembersKeepDefaults(t *testing.T) {
	r := newRegistry()
	ecs.Add(r, r.Create(), components.Tag{}) // register Tag's type id

	doc := []byte(`{"components":{"Tag":{}}}`)
	e, err := serde.Deserialize(r, doc)
	require.NoError(t, err)

	tag := ecs.Get[components.Tag](r, e)
	assert.Equal(t, "", tag.Name)
}

func TestSerde_SaveAndLoadEntityFile(t *testing.T) {
	r := newRegistry()
	e := r.Create()
	ecs.Add(r, e, components.Tag{Name: "rook"})

	dir := t.TempDir()
	path := filepath.Join(dir, "entities", "rook.json")
	require.NoError(t, serde.SaveEntityFile(r, e, path))

	dst := newRegistry()
	meta.RegisterType[components.Tag](dst.Meta())

	got, err := serde.LoadEntityFile(dst, path)
	require.NoError(t, err)

	assert.Equal(t, "rook", ecs.Get[components.Tag](dst, got).Name)
}

func TestSerde_CloneSerializesIdenticallyToOriginal(t *testing.T) {
	r := newRegistry()
	e := r.Create()

	transform := components.NewTransform()
	transform.Position = components.Vector2{X: 1, Y: 2}
	ecs.Add(r, e, transform)
	ecs.Add(r, e, components.Tag{Name: "pawn"})

	twice := r.Clone(r.Clone(e))

	want, err := serde.Serialize(r, e)
	require.NoError(t, err)
	got, err := serde.Serialize(r, twice)
	require.NoError(t, err)

	assert.JSONEq(t, string(want), string(got))
}

// inches is a component whose wire shape is owned by a registered
// serialize/deserialize service pair instead of its struct tags.
type inches struct {
	Value float64 `json:"value"`
}

func TestSerde_ServiceOverridesWireShape(t *testing.T) {
	r := newRegistry()
	info := meta.RegisterType[inches](r.Meta())
	info.SetService(meta.ServiceSerialize, serde.SerializeFunc(func(value interface{}) (json.RawMessage, error) {
		return json.RawMessage(fmt.Sprintf(`{"cm":%g}`, value.(*inches).Value*2.54)), nil
	}))
	info.SetService(meta.ServiceDeserialize, serde.DeserializeFunc(func(_ ecs.Entity, raw json.RawMessage, value interface{}) error {
		var body struct {
			CM float64 `json:"cm"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return err
		}
		value.(*inches).Value = body.CM / 2.54
		return nil
	}))

	e := r.Create()
	ecs.Add(r, e, inches{Value: 10})

	data, err := serde.Serialize(r, e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cm"`)

	got, err := serde.Deserialize(r, data)
	require.NoError(t, err)
	assert.InDelta(t, 10, ecs.Get[inches](r, got).Value, 1e-9)
}

func TestEntityFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("res", "entities", "hero.json"), serde.EntityFilePath("res", "hero"))
}
