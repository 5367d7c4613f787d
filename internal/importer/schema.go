// Package importer reads board documents, such as those written by
// `board export`, and turns them into new boards.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// BoardImport is the top-level structure of a board document. Ids in the
// document are ignored; the imported board gets fresh ones.
type BoardImport struct {
	Name    string         `json:"name" yaml:"name"`
	Columns []ColumnImport `json:"columns" yaml:"columns"`
	Labels  []LabelImport  `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// ColumnImport lists its cards top to bottom.
type ColumnImport struct {
	Name  string       `json:"name" yaml:"name"`
	Cards []CardImport `json:"cards,omitempty" yaml:"cards,omitempty"`
}

type CardImport struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Labels      []LabelRef `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// LabelImport is an entry of the board's label catalog.
type LabelImport struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// LabelRef points a card at a catalog label by name. Exports carry the
// label's color too, which is ignored here.
type LabelRef struct {
	Name string `json:"name" yaml:"name"`
}

// LoadBoardImport reads a board document. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON.
func LoadBoardImport(path string) (*BoardImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc BoardImport
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &doc, nil
}
