package simpleexcel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	SectionDirectionHorizontal = "horizontal"
	SectionDirectionVertical   = "vertical"
	SectionTypeFull            = "full"  // title, header and data
	SectionTypeTitleOnly       = "title" // title only
)

// ReportTemplate is the YAML layout of a report.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig is a block of rows in a sheet. Data is bound at runtime by ID or set directly.
type SectionConfig struct {
	ID           string         `yaml:"id"`
	Title        string         `yaml:"title"`
	Data         interface{}    `yaml:"-"`
	Type         string         `yaml:"type"`
	ShowHeader   bool           `yaml:"show_header"`
	Direction    string         `yaml:"direction"`
	Position     string         `yaml:"position"` // e.g. "A1"
	TitleStyle   *StyleTemplate `yaml:"title_style"`
	HeaderStyle  *StyleTemplate `yaml:"header_style"`
	DataStyle    *StyleTemplate `yaml:"data_style"`
	HeaderHeight float64        `yaml:"header_height"`
	HasFilter    bool           `yaml:"has_filter"`
	Columns      []ColumnConfig `yaml:"columns"`
}

type ColumnConfig struct {
	FieldName     string                        `yaml:"field_name"` // struct field name or map key
	Header        string                        `yaml:"header"`
	Width         float64                       `yaml:"width"`
	NumFmt        int                           `yaml:"num_fmt"` // excel built-in number format id
	Formatter     func(interface{}) interface{} `yaml:"-"`
	FormatterName string                        `yaml:"formatter"`
}

type StyleTemplate struct {
	Font      *FontTemplate      `yaml:"font"`
	Fill      *FillTemplate      `yaml:"fill"`
	Alignment *AlignmentTemplate `yaml:"alignment"`
}

type AlignmentTemplate struct {
	Horizontal string `yaml:"horizontal"`
	Vertical   string `yaml:"vertical"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // hex
}

type FillTemplate struct {
	Color string `yaml:"color"` // hex
}

// ParseTemplate decodes a YAML report template.
func ParseTemplate(data []byte) (*ReportTemplate, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("yaml config is empty")
	}
	var tmpl ReportTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(tmpl.Sheets) == 0 {
		return nil, fmt.Errorf("template has no sheets")
	}
	for _, s := range tmpl.Sheets {
		if s.Name == "" {
			return nil, fmt.Errorf("template sheet without name")
		}
	}
	return &tmpl, nil
}

func LoadTemplate(path string) (*ReportTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	return ParseTemplate(data)
}
