package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL attempts to load configuration from a .cptoyc.kdl file in
// projectRoot. Returns (nil, nil) when no such file exists — that is not
// an error, it just means the caller should fall back to defaults.
func LoadKDL(projectRoot string) (*Config, error) {
	kdlPath := filepath.Join(projectRoot, ".cptoyc.kdl")

	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .cptoyc.kdl: %w", err)
	}

	return parseKDL(string(content))
}

// parseKDL parses the contents of a .cptoyc.kdl file into a Config,
// starting from the built-in defaults and overriding whatever sections
// are present. Unknown nodes are ignored rather than rejected, matching
// the teacher's forward-compatible parsing style.
func parseKDL(content string) (*Config, error) {
	cfg := defaultConfig()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		case "lang":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "c99":
					if v, ok := firstBoolArg(cn); ok {
						cfg.Lang.C99 = v
					}
				case "bcpl_comment":
					if v, ok := firstBoolArg(cn); ok {
						cfg.Lang.BCPLComment = v
					}
				case "bool":
					if v, ok := firstBoolArg(cn); ok {
						cfg.Lang.Bool = v
					}
				case "hex_floats":
					if v, ok := firstBoolArg(cn); ok {
						cfg.Lang.HexFloats = v
					}
				case "digraphs":
					if v, ok := firstBoolArg(cn); ok {
						cfg.Lang.Digraphs = v
					}
				}
			}
		case "diagnostics":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "warnings_as_errors":
					if v, ok := firstBoolArg(cn); ok {
						cfg.Diagnostics.WarningsAsErrors = v
					}
				case "max_errors":
					if v, ok := firstIntArg(cn); ok {
						cfg.Diagnostics.MaxErrors = v
					}
				case "quiet":
					if v, ok := firstBoolArg(cn); ok {
						cfg.Diagnostics.Quiet = v
					}
				}
			}
		case "lexer":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "keep_whitespace":
					if v, ok := firstBoolArg(cn); ok {
						cfg.Lexer.KeepWhitespace = v
					}
				case "tab_stop":
					if v, ok := firstIntArg(cn); ok {
						cfg.Lexer.TabStop = v
					}
				}
			}
		}
	}

	return cfg, nil
}

// Helper functions leveraging the kdl-go document model.
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}
