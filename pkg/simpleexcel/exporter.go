package simpleexcel

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Exporter renders bound data into a workbook, sheet by sheet and section by section.
type Exporter struct {
	// data bound to section IDs (template flow)
	data       map[string]interface{}
	sheets     []*SheetBuilder
	formatters map[string]func(interface{}) interface{}
}

func NewExporter() *Exporter {
	return &Exporter{
		data:       make(map[string]interface{}),
		formatters: make(map[string]func(interface{}) interface{}),
	}
}

// NewExporterFromTemplate creates an exporter whose sheets come from a template.
// The template is copied so one template can serve many exports.
func NewExporterFromTemplate(tmpl *ReportTemplate) *Exporter {
	e := NewExporter()
	for _, st := range tmpl.Sheets {
		sb := e.AddSheet(st.Name)
		for _, sec := range st.Sections {
			sec := sec
			sec.Columns = append([]ColumnConfig(nil), sec.Columns...)
			sb.AddSection(&sec)
		}
	}
	return e
}

// AddSheet starts a new sheet builder.
func (e *Exporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{exporter: e, name: name}
	e.sheets = append(e.sheets, sb)
	return sb
}

// BindSectionData binds data to a section ID.
func (e *Exporter) BindSectionData(id string, data interface{}) *Exporter {
	e.data[id] = data
	return e
}

// RegisterFormatter makes a formatter available to columns by name.
func (e *Exporter) RegisterFormatter(name string, f func(interface{}) interface{}) *Exporter {
	e.formatters[name] = f
	return e
}

func (e *Exporter) GetSheet(name string) *SheetBuilder {
	for _, sheet := range e.sheets {
		if sheet.name == name {
			return sheet
		}
	}
	return nil
}

// Section returns the first section with the given ID across all sheets, or nil.
func (e *Exporter) Section(id string) *SectionConfig {
	for _, sheet := range e.sheets {
		for _, sec := range sheet.sections {
			if sec.ID == id {
				return sec
			}
		}
	}
	return nil
}

// BuildExcel renders every sheet into a new workbook.
func (e *Exporter) BuildExcel() (*excelize.File, error) {
	if len(e.sheets) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}
	f := excelize.NewFile()
	styles := newStyleCache(f)

	for i, sb := range e.sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sb.name); err != nil {
				f.Close()
				return nil, err
			}
		} else if idx, _ := f.GetSheetIndex(sb.name); idx == -1 {
			if _, err := f.NewSheet(sb.name); err != nil {
				f.Close()
				return nil, err
			}
		}

		e.bind(sb.sections)
		if err := e.renderSections(f, styles, sb.name, sb.sections); err != nil {
			f.Close()
			return nil, fmt.Errorf("render sheet %q: %w", sb.name, err)
		}
	}
	return f, nil
}

// ToBytes exports the workbook to memory.
func (e *Exporter) ToBytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := e.ToWriter(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToWriter exports the workbook directly to a writer.
func (e *Exporter) ToWriter(w io.Writer) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func (e *Exporter) bind(sections []*SectionConfig) {
	for _, sec := range sections {
		if sec.ID == "" || sec.Data != nil {
			continue
		}
		if data, ok := e.data[sec.ID]; ok {
			sec.Data = data
		}
	}
}

func (e *Exporter) format(col ColumnConfig, val interface{}) interface{} {
	if col.Formatter != nil {
		return col.Formatter(val)
	}
	if col.FormatterName != "" {
		if fn, ok := e.formatters[col.FormatterName]; ok {
			return fn(val)
		}
	}
	return val
}

type SheetBuilder struct {
	exporter *Exporter
	name     string
	sections []*SectionConfig
}

func (sb *SheetBuilder) AddSection(config *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, config)
	return sb
}

func (sb *SheetBuilder) Build() *Exporter {
	return sb.exporter
}
