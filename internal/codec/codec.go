package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/keydraft/internal/engine/content"
)

const emptyEntityMap = "{}"

// newKey generates keys for records without one.
var newKey = content.NewKey

type styleRecord struct {
	Style string `json:"style"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type blockRecord struct {
	Key         string        `json:"key"`
	Type        string        `json:"type"`
	Text        string        `json:"text"`
	StyleRanges []styleRecord `json:"styleRanges"`
}

type payload struct {
	Blocks []blockRecord `json:"blocks"`
}

// Serialize encodes m. Blocks are written in document order with their
// style ranges in normalized order. The entity map is copied verbatim and
// defaults to an empty object.
func Serialize(m *content.Model) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("serialize: %w", content.ErrEmptyModel)
	}

	p := payload{Blocks: make([]blockRecord, 0, m.Len())}
	for _, b := range m.Blocks() {
		rec := blockRecord{
			Key:         b.Key(),
			Type:        string(b.Type()),
			Text:        b.Text(),
			StyleRanges: make([]styleRecord, 0, len(b.Styles())),
		}
		for _, s := range b.Styles() {
			rec.StyleRanges = append(rec.StyleRanges, styleRecord{Style: string(s.Style), Start: s.Start, End: s.End})
		}
		p.Blocks = append(p.Blocks, rec)
	}

	out, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}

	entities := m.EntityMap()
	if len(entities) == 0 {
		entities = []byte(emptyEntityMap)
	}
	if !gjson.ValidBytes(entities) || !gjson.ParseBytes(entities).IsObject() {
		return nil, fmt.Errorf("serialize: %w", formatErr("entityMap", "not a JSON object"))
	}
	out, err = sjson.SetRawBytes(out, "entityMap", entities)
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	return out, nil
}

// Deserialize decodes a payload produced by Serialize, or by any writer of
// the same layout. Overlapping or adjacent ranges of one style are merged.
func Deserialize(data []byte) (*content.Model, error) {
	if !gjson.ValidBytes(data) {
		return nil, formatErr("$", "invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, formatErr("$", "expected an object, got %s", kind(root))
	}

	blocks := root.Get("blocks")
	if !blocks.Exists() {
		return nil, formatErr("blocks", "missing")
	}
	if !blocks.IsArray() {
		return nil, formatErr("blocks", "expected an array, got %s", kind(blocks))
	}
	records := blocks.Array()
	if len(records) == 0 {
		return nil, &FormatError{Path: "blocks", Message: "empty", Err: content.ErrEmptyModel}
	}

	// Generated keys must not collide with explicit keys of later records.
	taken := make(map[string]bool, len(records))
	for _, rec := range records {
		if k := rec.Get("key"); k.Type == gjson.String && k.String() != "" {
			taken[k.String()] = true
		}
	}

	seen := make(map[string]string, len(records))
	out := make([]*content.Block, 0, len(records))
	for i, rec := range records {
		path := fmt.Sprintf("blocks[%d]", i)
		b, err := decodeBlock(path, rec, taken)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[b.Key()]; dup {
			return nil, &FormatError{
				Path:    path + ".key",
				Message: fmt.Sprintf("key %q already used by %s", b.Key(), first),
				Err:     content.ErrDuplicateKey,
			}
		}
		seen[b.Key()] = path
		out = append(out, b)
	}

	var entities []byte
	if em := root.Get("entityMap"); em.Exists() {
		if !em.IsObject() {
			return nil, formatErr("entityMap", "expected an object, got %s", kind(em))
		}
		if len(em.Map()) > 0 {
			entities = []byte(em.Raw)
		}
	}

	m, err := content.NewModel(out, entities)
	if err != nil {
		return nil, &FormatError{Path: "blocks", Message: "invalid document", Err: err}
	}
	return m, nil
}

func decodeBlock(path string, rec gjson.Result, taken map[string]bool) (*content.Block, error) {
	if !rec.IsObject() {
		return nil, formatErr(path, "expected an object, got %s", kind(rec))
	}

	var key string
	if k := rec.Get("key"); k.Exists() && k.Type != gjson.Null {
		if k.Type != gjson.String {
			return nil, formatErr(path+".key", "expected a string, got %s", kind(k))
		}
		key = k.String()
	}
	if key == "" {
		key = freshKey(taken)
	}

	typ, err := requireString(path+".type", rec.Get("type"))
	if err != nil {
		return nil, err
	}
	text, err := requireString(path+".text", rec.Get("text"))
	if err != nil {
		return nil, err
	}

	var styles []content.StyleRange
	if sr := rec.Get("styleRanges"); sr.Exists() && sr.Type != gjson.Null {
		if !sr.IsArray() {
			return nil, formatErr(path+".styleRanges", "expected an array, got %s", kind(sr))
		}
		for j, r := range sr.Array() {
			s, err := decodeStyle(fmt.Sprintf("%s.styleRanges[%d]", path, j), r)
			if err != nil {
				return nil, err
			}
			styles = append(styles, s)
		}
	}

	b, err := content.NewBlock(key, content.BlockType(typ), text, styles...)
	if errors.Is(err, content.ErrInvalidText) {
		return nil, &FormatError{Path: path + ".text", Message: "not valid UTF-8", Err: err}
	}
	if err != nil {
		return nil, &FormatError{Path: path + ".styleRanges", Message: "range outside text", Err: err}
	}
	return b, nil
}

func freshKey(taken map[string]bool) string {
	for {
		if k := newKey(); !taken[k] {
			taken[k] = true
			return k
		}
	}
}

func decodeStyle(path string, r gjson.Result) (content.StyleRange, error) {
	if !r.IsObject() {
		return content.StyleRange{}, formatErr(path, "expected an object, got %s", kind(r))
	}
	style, err := requireString(path+".style", r.Get("style"))
	if err != nil {
		return content.StyleRange{}, err
	}
	if style == "" {
		return content.StyleRange{}, formatErr(path+".style", "empty style name")
	}
	start, err := requireInt(path+".start", r.Get("start"))
	if err != nil {
		return content.StyleRange{}, err
	}
	end, err := requireInt(path+".end", r.Get("end"))
	if err != nil {
		return content.StyleRange{}, err
	}
	if start < 0 || start >= end {
		return content.StyleRange{}, formatErr(path, "invalid range [%d,%d)", start, end)
	}
	return content.StyleRange{Style: content.InlineStyle(style), Start: start, End: end}, nil
}

func requireString(path string, r gjson.Result) (string, error) {
	if !r.Exists() {
		return "", formatErr(path, "missing")
	}
	if r.Type != gjson.String {
		return "", formatErr(path, "expected a string, got %s", kind(r))
	}
	return r.String(), nil
}

func requireInt(path string, r gjson.Result) (int, error) {
	if !r.Exists() {
		return 0, formatErr(path, "missing")
	}
	if r.Type != gjson.Number {
		return 0, formatErr(path, "expected a number, got %s", kind(r))
	}
	if r.Num != math.Trunc(r.Num) || math.Abs(r.Num) > math.MaxInt32 {
		return 0, formatErr(path, "expected an integer, got %s", r.Raw)
	}
	return int(r.Int()), nil
}

// kind names the JSON type of r for error messages.
func kind(r gjson.Result) string {
	switch {
	case !r.Exists():
		return "nothing"
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	}
	switch r.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Null:
		return "null"
	}
	return r.Type.String()
}
