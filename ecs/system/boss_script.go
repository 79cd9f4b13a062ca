package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/prefabs"
)

const volleyDispatchScript = `
if __phase == "volley" {
	volley(__engine)
}
`

type volleyScript struct {
	path     string
	compiled *tengo.Compiled
	fired    []float64
}

func loadVolleyScript(path string) (*volleyScript, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}

	scriptBytes, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + volleyDispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	return &volleyScript{path: path, compiled: compiled}, nil
}

// volley runs the script's volley function and returns the offsets it fired.
func (vs *volleyScript) volley(engine map[string]tengo.Object) ([]float64, error) {
	vs.fired = vs.fired[:0]

	values := make(map[string]tengo.Object, len(engine)+1)
	for k, v := range engine {
		values[k] = v
	}
	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		off, ok := objectAsFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		vs.fired = append(vs.fired, off)
		return tengo.TrueValue, nil
	}}

	if err := vs.compiled.Set("__phase", "volley"); err != nil {
		return nil, err
	}
	if err := vs.compiled.Set("__engine", &tengo.ImmutableMap{Value: values}); err != nil {
		return nil, err
	}
	if err := vs.compiled.Run(); err != nil {
		return nil, err
	}

	out := make([]float64, len(vs.fired))
	copy(out, vs.fired)
	return out, nil
}

func buildVolleyEngine(w *ecs.World, e ecs.Entity, bearing float64, muzzle, target cp.Vector) map[string]tengo.Object {
	values := map[string]tengo.Object{}

	values["bearing"] = &tengo.UserFunction{Name: "bearing", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: bearing}, nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
		if !ok {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(h.Current)}, nil
	}}

	values["max_health"] = &tengo.UserFunction{Name: "max_health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
		if !ok {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(h.Max)}, nil
	}}

	values["volleys"] = &tengo.UserFunction{Name: "volleys", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt, ok := ecs.Get(w, e, component.BossRuntimeComponent.Kind())
		if !ok {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(rt.Volleys)}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(muzzle), nil
	}}

	values["target_position"] = &tengo.UserFunction{Name: "target_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(target), nil
	}}

	return values
}

func vectorObject(v cp.Vector) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}
