package model1

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	const base = "https://cms.example.gov"

	uu := map[string]struct {
		v    any
		decl CellKind
		e    Cell
	}{
		"nil":         {v: nil, e: Cell{Kind: KindEmpty}},
		"blank":       {v: "", e: Cell{Kind: KindEmpty}},
		"zero":        {v: float64(0), e: Cell{Kind: KindEmpty}},
		"false":       {v: false, e: Cell{Kind: KindEmpty}},
		"nan":         {v: math.NaN(), e: Cell{Kind: KindEmpty}},
		"text":        {v: "Alpha", e: Cell{Kind: KindText, Text: "Alpha"}},
		"number":      {v: float64(3), e: Cell{Kind: KindText, Text: "3"}},
		"fraction":    {v: 2.5, e: Cell{Kind: KindText, Text: "2.5"}},
		"int":         {v: 42, e: Cell{Kind: KindText, Text: "42"}},
		"int8-zero":   {v: int8(0), e: Cell{Kind: KindEmpty}},
		"int16-zero":  {v: int16(0), e: Cell{Kind: KindEmpty}},
		"uint-zero":   {v: uint(0), e: Cell{Kind: KindEmpty}},
		"uint8-zero":  {v: uint8(0), e: Cell{Kind: KindEmpty}},
		"uint16-zero": {v: uint16(0), e: Cell{Kind: KindEmpty}},
		"uint32-zero": {v: uint32(0), e: Cell{Kind: KindEmpty}},
		"uint8":       {v: uint8(7), e: Cell{Kind: KindText, Text: "7"}},
		"true":        {v: true, e: Cell{Kind: KindText, Text: "true"}},
		"structured":  {v: map[string]any{"a": float64(1)}, e: Cell{Kind: KindStructured, Text: `{"a":1}`}},
		"list":        {v: []any{"a", "b"}, e: Cell{Kind: KindStructured, Text: `["a","b"]`}},
		"png":         {v: "uploads/logo.png", e: Cell{Kind: KindImage, Text: "uploads/logo.png", URL: base + "/uploads/logo.png"}},
		"upper-jpeg":  {v: "/a/B.JPEG", e: Cell{Kind: KindImage, Text: "/a/B.JPEG", URL: base + "/a/B.JPEG"}},
		"webp":        {v: "x.webp", e: Cell{Kind: KindImage, Text: "x.webp", URL: base + "/x.webp"}},
		"mp4":         {v: "clip.mp4", e: Cell{Kind: KindVideo, Text: "clip.mp4", URL: base + "/clip.mp4"}},
		"ogg":         {v: "sound.ogg", e: Cell{Kind: KindVideo, Text: "sound.ogg", URL: base + "/sound.ogg"}},
		"mp3":         {v: "a.mp3", e: Cell{Kind: KindAudio, Text: "a.mp3", URL: base + "/a.mp3"}},
		"wav":         {v: "a.WAV", e: Cell{Kind: KindAudio, Text: "a.WAV", URL: base + "/a.WAV"}},
		"pdf":         {v: "notice.pdf", e: Cell{Kind: KindDocument, Text: "notice.pdf", URL: base + "/notice.pdf"}},
		"docx":        {v: "form.docx", e: Cell{Kind: KindDocument, Text: "form.docx", URL: base + "/form.docx"}},
		"absolute":    {v: "http://cdn.io/a.gif", e: Cell{Kind: KindImage, Text: "http://cdn.io/a.gif", URL: "http://cdn.io/a.gif"}},
		"query":       {v: "a.png?v=2", e: Cell{Kind: KindImage, Text: "a.png?v=2", URL: base + "/a.png?v=2"}},
		"txt":         {v: "readme.txt", e: Cell{Kind: KindText, Text: "readme.txt"}},
		"declared":    {v: "uploads/1234", decl: KindImage, e: Cell{Kind: KindImage, Text: "uploads/1234", URL: base + "/uploads/1234"}},
		"declared-tx": {v: "a.png", decl: KindText, e: Cell{Kind: KindText, Text: "a.png"}},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, Classify(u.v, u.decl, base))
		})
	}
}

func TestCellDisplay(t *testing.T) {
	assert.Equal(t, NAValue, Classify(nil, KindAuto, "").Display())
	assert.Equal(t, "fred", Classify("fred", KindAuto, "").Display())
}

func TestMediaURL(t *testing.T) {
	uu := map[string]struct {
		base, p, e string
	}{
		"plain":        {base: "http://h", p: "a.png", e: "http://h/a.png"},
		"both-slashes": {base: "http://h/", p: "/a.png", e: "http://h/a.png"},
		"no-base":      {p: "a.png", e: "a.png"},
		"https":        {base: "http://h", p: "https://x/a.png", e: "https://x/a.png"},
		"data":         {base: "http://h", p: "data:image/png;base64,AA", e: "data:image/png;base64,AA"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, MediaURL(u.base, u.p))
		})
	}
}

func TestCellKindString(t *testing.T) {
	assert.Equal(t, "video", KindVideo.String())
	assert.Equal(t, "unknown", CellKind(99).String())
	assert.True(t, KindDocument.IsMedia())
	assert.False(t, KindStructured.IsMedia())
}
