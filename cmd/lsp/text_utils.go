package main

import (
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/token"
	"github.com/funvibe/ofront/internal/visitor"
)

func uriToPath(uri protocol.DocumentUri) string {
	return strings.TrimPrefix(string(uri), "file://")
}

func pathToURI(path string) protocol.DocumentUri {
	if strings.Contains(path, "://") {
		return protocol.DocumentUri(path)
	}
	return protocol.DocumentUri("file://" + path)
}

// toRange maps a 1-based window to a 0-based LSP range.
func toRange(w token.Window) protocol.Range {
	end := w.End
	if !end.IsValid() {
		end = w.Start
	}
	return protocol.Range{
		Start: toPosition(w.Start),
		End:   toPosition(end),
	}
}

func toPosition(p token.Position) protocol.Position {
	line, col := p.Line-1, p.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

// fromPosition maps a 0-based LSP position in path to a source position.
func fromPosition(path string, p protocol.Position) token.Position {
	return token.Position{File: path, Line: int(p.Line) + 1, Column: int(p.Character) + 1}
}

// nodeAt returns the node whose name token covers pos, searching
// depth-first from root, or nil.
func nodeAt(root ast.Node, pos token.Position) ast.Node {
	if root == nil {
		return nil
	}
	if _, isFile := root.(*ast.File); !isFile {
		if tok := root.GetToken(); tok.Lexeme != "" && token.WindowOf(tok).Contains(pos) {
			return root
		}
	}
	for _, child := range visitor.Children(root) {
		if n := nodeAt(child, pos); n != nil {
			return n
		}
	}
	return nil
}

// endOf returns the position just past the last character of content.
func endOf(content string) protocol.Position {
	line := strings.Count(content, "\n")
	last := getLine(content, line)
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(utf8.RuneCountInString(last))}
}

func getLine(content string, lineIndex int) string {
	start := 0
	currentLine := 0
	n := len(content)

	for i := 0; i < n; i++ {
		if content[i] == '\n' {
			if currentLine == lineIndex {
				return content[start:i]
			}
			start = i + 1
			currentLine++
		}
	}

	if currentLine == lineIndex {
		return content[start:]
	}

	return ""
}
