package model1

import (
	"encoding/json"
	"fmt"
	"math"
	"path"
	"reflect"
	"strconv"
	"strings"
)

// CellKind represents the content kind of a table cell.
type CellKind int

const (
	// KindAuto sniffs the kind from the cell value.
	KindAuto CellKind = iota
	KindEmpty
	KindText
	KindImage
	KindVideo
	KindAudio
	KindDocument
	KindStructured
)

var kindNames = map[CellKind]string{
	KindAuto:       "auto",
	KindEmpty:      "empty",
	KindText:       "text",
	KindImage:      "image",
	KindVideo:      "video",
	KindAudio:      "audio",
	KindDocument:   "document",
	KindStructured: "structured",
}

func (k CellKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// IsMedia returns true for kinds that point at a server asset.
func (k CellKind) IsMedia() bool {
	switch k {
	case KindImage, KindVideo, KindAudio, KindDocument:
		return true
	default:
		return false
	}
}

// Extension lists in lookup order. Video is checked before audio so .ogg
// always resolves to video.
var extensionKinds = []struct {
	kind CellKind
	exts []string
}{
	{KindImage, []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}},
	{KindVideo, []string{".mp4", ".webm", ".ogg"}},
	{KindAudio, []string{".mp3", ".wav"}},
	{KindDocument, []string{".pdf", ".doc", ".docx"}},
}

// Cell represents a classified cell value.
type Cell struct {
	Kind CellKind
	Text string
	URL  string
}

// Display returns the text shown for the cell.
func (c Cell) Display() string {
	if c.Kind == KindEmpty {
		return NAValue
	}
	return c.Text
}

// SniffKind returns the media kind of s from its file extension.
func SniffKind(s string) CellKind {
	ext := strings.ToLower(path.Ext(stripQuery(s)))
	if ext == "" {
		return KindText
	}
	for _, e := range extensionKinds {
		for _, x := range e.exts {
			if ext == x {
				return e.kind
			}
		}
	}
	return KindText
}

func stripQuery(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		return s[:i]
	}
	return s
}

// IsEmpty returns true when v renders as the placeholder.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0 || math.IsNaN(t)
	case float32:
		return t == 0 || math.IsNaN(float64(t))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return reflect.ValueOf(t).IsZero()
	case json.Number:
		f, err := t.Float64()
		return err == nil && (f == 0 || math.IsNaN(f))
	default:
		return false
	}
}

// Classify resolves a cell value into a tagged cell. A declared kind other
// than KindAuto overrides extension sniffing for string values.
func Classify(v any, declared CellKind, baseURL string) Cell {
	if IsEmpty(v) {
		return Cell{Kind: KindEmpty}
	}

	switch t := v.(type) {
	case string:
		kind := declared
		if kind == KindAuto || kind == KindEmpty {
			kind = SniffKind(t)
		}
		c := Cell{Kind: kind, Text: t}
		if kind.IsMedia() {
			c.URL = MediaURL(baseURL, t)
		}
		return c
	case bool:
		return Cell{Kind: KindText, Text: strconv.FormatBool(t)}
	case float64:
		return Cell{Kind: KindText, Text: strconv.FormatFloat(t, 'f', -1, 64)}
	case float32:
		return Cell{Kind: KindText, Text: strconv.FormatFloat(float64(t), 'f', -1, 32)}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		return Cell{Kind: KindText, Text: fmt.Sprint(t)}
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return Cell{Kind: KindStructured, Text: fmt.Sprintf("%v", t)}
		}
		return Cell{Kind: KindStructured, Text: string(raw)}
	}
}

// MediaURL joins a server relative asset path to the media base URL.
// Absolute URLs are returned untouched.
func MediaURL(baseURL, p string) string {
	lp := strings.ToLower(p)
	for _, scheme := range []string{"http://", "https://", "data:"} {
		if strings.HasPrefix(lp, scheme) {
			return p
		}
	}
	if baseURL == "" {
		return p
	}

	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(p, "/")
}

// CellText returns the plain text form of v as written to exports.
func CellText(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number, float32:
		return fmt.Sprint(t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(raw)
	}
}
