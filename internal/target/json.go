package target

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// jsonModule/jsonFunction/jsonBlock are the wire shapes dump-target
// --format json (and compile --emit-target=json) marshal a Module to. They mirror Module/Function/Block
// closely enough for debugging but flatten Value references down to
// "%N" strings the way the disassembler does, since the graph of
// pointer-identity Values doesn't round-trip through JSON anyway.
type jsonModule struct {
	SourceFile   string         `json:"source_file,omitempty"`
	TargetTriple string         `json:"target_triple,omitempty"`
	Functions    []jsonFunction `json:"functions"`
}

type jsonFunction struct {
	Name       string      `json:"name"`
	Signature  string      `json:"signature"`
	Blocks     []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	Name  string   `json:"name"`
	Phis  []string `json:"phis,omitempty"`
	Body  []string `json:"body"`
	Term  string   `json:"term"`
}

// DumpJSON marshals m to JSON, then uses sjson to patch in sourceFile
// as a presentation-only field — the same "patch, don't remodel" use
// of sjson/gjson the teacher's internal/builtins/json.go makes, rather
// than adding a SourceFile field to Module itself just for this one
// debug view.
func DumpJSON(m *Module, sourceFile string) ([]byte, error) {
	jm := jsonModule{TargetTriple: m.TargetTriple, Functions: make([]jsonFunction, len(m.Functions))}
	for i, fn := range m.Functions {
		jm.Functions[i] = toJSONFunction(fn)
	}

	raw, err := json.Marshal(jm)
	if err != nil {
		return nil, err
	}
	if sourceFile == "" {
		return raw, nil
	}
	return sjson.SetBytes(raw, "source_file", sourceFile)
}

func toJSONFunction(fn *Function) jsonFunction {
	jf := jsonFunction{Name: fn.Name, Signature: fn.Signature(), Blocks: make([]jsonBlock, len(fn.Blocks))}
	for i, b := range fn.Blocks {
		jf.Blocks[i] = toJSONBlock(b)
	}
	return jf
}

func toJSONBlock(b *Block) jsonBlock {
	jb := jsonBlock{Name: blockLabel(b), Term: formatTerm(b.Term)}
	for _, phi := range b.Phis {
		jb.Phis = append(jb.Phis, fmt.Sprintf("%%%d = phi %s %s", phi.ID(), phi.Type(), formatIncoming(phi.Incoming)))
	}
	for _, inst := range b.Body {
		jb.Body = append(jb.Body, formatInstr(inst))
	}
	return jb
}

// Filter applies a gjson dot-path query (the dump-target --filter
// flag) to a DumpJSON result, returning the matched value's raw text.
func Filter(jsonBytes []byte, path string) string {
	return gjson.GetBytes(jsonBytes, path).String()
}
