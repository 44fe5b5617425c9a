package scenefile

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// table returns the sub-table key of doc, or an empty table.
func table(doc map[string]any, key string) map[string]any {
	if t, ok := doc[key].(map[string]any); ok {
		return t
	}
	return map[string]any{}
}

func number(v any) (float32, bool) {
	switch n := v.(type) {
	case int64:
		return float32(n), true
	case float64:
		return float32(n), true
	}
	return 0, false
}

func (p *parser) floatValue(key string, v any) (float32, bool) {
	if v == nil {
		return 0, false
	}
	f, ok := number(v)
	if !ok {
		p.log.Warn("expected a number, using default", zap.String("key", key), zap.Any("value", v))
	}
	return f, ok
}

func (p *parser) intValue(key string, v any) (int64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	p.log.Warn("expected an integer, using default", zap.String("key", key), zap.Any("value", v))
	return 0, false
}

func (p *parser) boolValue(key string, v any) (bool, bool) {
	if v == nil {
		return false, false
	}
	b, ok := v.(bool)
	if !ok {
		p.log.Warn("expected a boolean, using default", zap.String("key", key), zap.Any("value", v))
	}
	return b, ok
}

func (p *parser) stringValue(key string, v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		p.log.Warn("expected a string, using default", zap.String("key", key), zap.Any("value", v))
	}
	return s, ok
}

// vec3 reads up to three numbers. Non-numeric elements are skipped and
// missing components stay zero.
func (p *parser) vec3(key string, v any) mgl32.Vec3 {
	var out mgl32.Vec3
	arr, ok := v.([]any)
	if !ok {
		p.log.Warn("expected an array of 3 numbers", zap.String("key", key), zap.Any("value", v))
		return out
	}
	n := 0
	for i, e := range arr {
		f, ok := number(e)
		if !ok {
			p.log.Warn("skipping non-numeric element", zap.String("key", key), zap.Int("index", i), zap.Any("value", e))
			continue
		}
		if n == len(out) {
			p.log.Warn("ignoring extra vector components", zap.String("key", key), zap.Int("length", len(arr)))
			break
		}
		out[n] = f
		n++
	}
	return out
}

func (p *parser) list(key string, v any) []any {
	if v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		p.log.Warn("expected an array", zap.String("key", key), zap.Any("value", v))
		return nil
	}
	return arr
}

// vec3ListOr keeps indices aligned: malformed vectors become fallback.
func (p *parser) vec3ListOr(key string, v any, fallback mgl32.Vec3) []mgl32.Vec3 {
	arr := p.list(key, v)
	out := make([]mgl32.Vec3, len(arr))
	for i, e := range arr {
		if _, ok := e.([]any); !ok {
			p.log.Warn("malformed vector, using default", zap.String("key", key), zap.Int("index", i), zap.Any("value", e))
			out[i] = fallback
			continue
		}
		out[i] = p.vec3(key, e)
	}
	return out
}

// boolList keeps indices aligned: malformed elements become false.
func (p *parser) boolList(key string, v any) []bool {
	arr := p.list(key, v)
	out := make([]bool, len(arr))
	for i, e := range arr {
		b, ok := e.(bool)
		if !ok {
			p.log.Warn("expected a boolean, using false", zap.String("key", key), zap.Int("index", i), zap.Any("value", e))
		}
		out[i] = b
	}
	return out
}

func (p *parser) stringList(key string, v any) []string {
	arr := p.list(key, v)
	out := make([]string, len(arr))
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			p.log.Warn("expected a string, using empty", zap.String("key", key), zap.Int("index", i), zap.Any("value", e))
		}
		out[i] = s
	}
	return out
}
