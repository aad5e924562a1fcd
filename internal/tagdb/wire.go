package tagdb

import (
	"encoding/json"
	"fmt"

	"github.com/lwoggardner/taglib-simple/internal/types"
)

// wireVariant is the stored JSON form of a Variant. The kind tag keeps
// decoding lossless: binary data stays KindBytes and never comes back
// as text.
type wireVariant struct {
	Kind  string                 `json:"kind"`
	Bool  bool                   `json:"bool,omitempty"`
	Int   int64                  `json:"int,omitempty"`
	Text  string                 `json:"text,omitempty"`
	Bytes []byte                 `json:"bytes,omitempty"`
	List  []wireVariant          `json:"list,omitempty"`
	Map   map[string]wireVariant `json:"map,omitempty"`
}

func encodeVariant(v types.Variant) wireVariant {
	w := wireVariant{Kind: v.Kind().String()}
	switch v.Kind() {
	case types.KindBool:
		w.Bool, _ = v.Bool()
	case types.KindInt:
		w.Int, _ = v.Int()
	case types.KindString:
		w.Text, _ = v.Text()
	case types.KindBytes:
		w.Bytes, _ = v.Bytes()
	case types.KindList:
		items, _ := v.List()
		w.List = make([]wireVariant, len(items))
		for i, item := range items {
			w.List[i] = encodeVariant(item)
		}
	case types.KindMap:
		m, _ := v.Map()
		w.Map = make(map[string]wireVariant, len(m))
		for key, item := range m {
			w.Map[key] = encodeVariant(item)
		}
	}
	return w
}

func decodeVariant(w wireVariant) (types.Variant, error) {
	switch w.Kind {
	case types.KindEmpty.String():
		return types.Variant{}, nil
	case types.KindBool.String():
		return types.NewBool(w.Bool), nil
	case types.KindInt.String():
		return types.NewInt(w.Int), nil
	case types.KindString.String():
		return types.NewString(w.Text), nil
	case types.KindBytes.String():
		return types.NewBytes(w.Bytes), nil
	case types.KindList.String():
		items := make([]types.Variant, len(w.List))
		for i, item := range w.List {
			decoded, err := decodeVariant(item)
			if err != nil {
				return types.Variant{}, err
			}
			items[i] = decoded
		}
		return types.NewList(items...), nil
	case types.KindMap.String():
		m := make(types.VariantMap, len(w.Map))
		for key, item := range w.Map {
			decoded, err := decodeVariant(item)
			if err != nil {
				return types.Variant{}, err
			}
			m[key] = decoded
		}
		return types.NewMap(m), nil
	default:
		return types.Variant{}, fmt.Errorf("unknown variant kind %q", w.Kind)
	}
}

// encodeEntry serializes one structured property entry.
func encodeEntry(entry types.VariantMap) ([]byte, error) {
	return json.Marshal(encodeVariant(types.NewMap(entry)))
}

// decodeEntry parses one structured property entry.
func decodeEntry(data []byte) (types.VariantMap, error) {
	var w wireVariant
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	v, err := decodeVariant(w)
	if err != nil {
		return nil, err
	}
	m, ok := v.Map()
	if !ok {
		return nil, fmt.Errorf("entry decodes to %s, want map", v.Kind())
	}
	return m, nil
}
