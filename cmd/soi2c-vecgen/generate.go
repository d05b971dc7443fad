package main

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/notecard-tools/soi2c-go/internal/vectors"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

// kindConsts maps event kinds to their Go identifiers.
var kindConsts = map[soi2c.Kind]string{
	soi2c.KindSender:  "soi2c.KindSender",
	soi2c.KindHeader:  "soi2c.KindHeader",
	soi2c.KindQuery:   "soi2c.KindQuery",
	soi2c.KindRequest: "soi2c.KindRequest",
	soi2c.KindNote:    "soi2c.KindNote",
}

var funcMap = template.FuncMap{
	"quote":     func(s string) string { return fmt.Sprintf("%q", s) },
	"hexByte":   func(v uint8) string { return fmt.Sprintf("0x%02X", v) },
	"frameCall": frameCall,
	"eventLit":  eventLit,
}

const goldenTmpl = `// Code generated by soi2c-vecgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/notecard-tools/soi2c-go/pkg/bus"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

var goldenVectors = []goldenVector{
{{- range .Vectors}}
	{
		ID:      {{quote .ID}},
		Name:    {{quote .Name}},
		Address: {{hexByte .Address}},
		Frames: func(b *bus.Builder) {
{{- range .Frames}}
			{{frameCall .}}
{{- end}}
		},
		Events: []goldenEvent{
{{- range .Expect}}
			{{eventLit .}},
{{- end}}
		},
		Faults: {{.Faults}},
	},
{{- end}}
}
`

var templates = template.Must(template.New("golden").Funcs(funcMap).Parse(goldenTmpl))

type goldenData struct {
	Source  string
	Package string
	Vectors []*vectors.Vector
}

// Generate renders the golden test table for vs.
func Generate(source, pkg string, vs []*vectors.Vector) (string, error) {
	var b strings.Builder
	err := templates.Execute(&b, goldenData{Source: source, Package: pkg, Vectors: vs})
	if err != nil {
		return "", fmt.Errorf("render golden table: %w", err)
	}
	return b.String(), nil
}

// frameCall renders a frame spec as a bus.Builder call.
func frameCall(s vectors.FrameSpec) (string, error) {
	switch s.Kind {
	case vectors.SpecStart:
		return "b.Start()", nil
	case vectors.SpecStop:
		return "b.Stop()", nil
	case vectors.SpecAddress:
		return fmt.Sprintf("b.Address(0x%02X, %t)", s.Address, s.Read), nil
	case vectors.SpecText:
		return fmt.Sprintf("b.Text(%q)", s.Text), nil
	case vectors.SpecData:
		parts := make([]string, len(s.Data))
		for i, d := range s.Data {
			parts[i] = fmt.Sprintf("0x%02X", d)
		}
		return "b.Data(" + strings.Join(parts, ", ") + ")", nil
	default:
		return "", fmt.Errorf("unknown frame spec %q", s.Kind)
	}
}

// eventLit renders an expectation as a goldenEvent literal.
// Fields the expectation leaves open stay nil.
func eventLit(e vectors.Expectation) (string, error) {
	k, err := soi2c.ParseKind(e.Kind)
	if err != nil {
		return "", err
	}

	fields := []string{"Kind: " + kindConsts[k]}
	if e.Sender != "" {
		fields = append(fields, fmt.Sprintf("Sender: ptr(%q)", e.Sender))
	}
	if e.Action != "" {
		fields = append(fields, fmt.Sprintf("Action: ptr(%q)", e.Action))
	}
	if e.Length != nil {
		fields = append(fields, fmt.Sprintf("Length: ptr(%d)", *e.Length))
	}
	if e.Text != nil {
		fields = append(fields, fmt.Sprintf("Text: ptr(%q)", *e.Text))
	}
	return "{" + strings.Join(fields, ", ") + "}", nil
}
