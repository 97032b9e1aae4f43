package debugui

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bitecs/ecs"
)

// editableFields maps a struct type to the indices of its exported fields.
var editableFields sync.Map

func exportedFields(t reflect.Type) []int {
	if cached, ok := editableFields.Load(t); ok {
		return cached.([]int)
	}

	var indices []int
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			if t.Field(i).IsExported() {
				indices = append(indices, i)
			}
		}
	}

	actual, _ := editableFields.LoadOrStore(t, indices)
	return actual.([]int)
}

func NewComponentInspectorWindow() ComponentInspectorWindow {
	return ComponentInspectorWindow{selectedEntityId: NoEntity}
}

func (ci *ComponentInspectorWindow) Render(in ecs.Inspector, selectedEntityId ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == NoEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !in.IsAlive(ci.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %d is not alive", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d", ci.selectedEntityId))
	imgui.Text(fmt.Sprintf("Mask: %b", in.ComponentBits(ci.selectedEntityId)))
	imgui.Text(fmt.Sprintf("Flags: %b", in.FlagBits(ci.selectedEntityId)))
	imgui.Separator()

	for id := range in.ComponentCount() {
		component, ok := in.Component(ci.selectedEntityId, ecs.ComponentID(id))
		if !ok {
			continue
		}

		if imgui.TreeNodeStr(in.ComponentName(ecs.ComponentID(id))) {
			ci.renderComponent(in, component)
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderComponent draws the exported fields of component. Components are
// stored by value, so an edit is made on an addressable copy which is then
// written back through the Inspector.
func (ci *ComponentInspectorWindow) renderComponent(in ecs.Inspector, component any) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			imgui.Text("nil")
			return
		}
		ci.renderFields(val.Elem(), nil, func() {})
		return
	}

	editable := reflect.New(val.Type()).Elem()
	editable.Set(val)

	ci.renderFields(editable, nil, func() {
		in.SetComponentAny(ci.selectedEntityId, editable.Interface())
	})
}

func (ci *ComponentInspectorWindow) renderFields(val reflect.Value, path []int, commit func()) {
	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%v", val.Interface()))
		return
	}

	typ := val.Type()
	for _, i := range exportedFields(typ) {
		name := typ.Field(i).Name
		fieldVal := val.Field(i)
		if fieldVal.Kind() == reflect.Ptr {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(name, fieldVal, append(path[:len(path):len(path)], i), commit)
	}
}

func (ci *ComponentInspectorWindow) renderField(name string, val reflect.Value, path []int, commit func()) {
	id := fmt.Sprintf("##%s%v", name, path)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && val.CanSet() && !val.OverflowInt(int64(v)) {
			val.SetInt(int64(v))
			commit()
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 && val.CanSet() && !val.OverflowUint(uint64(v)) {
			val.SetUint(uint64(v))
			commit()
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
			commit()
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
			commit()
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
			commit()
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderFields(val, path, commit)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
