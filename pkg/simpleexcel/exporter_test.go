package simpleexcel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type rankRow struct {
	Key    string
	Orders int
	Value  float64
}

func TestExporter_BuildExcel(t *testing.T) {
	exporter := NewExporter()
	exporter.AddSheet("Ranking").
		AddSection(&SectionConfig{
			Title:      "Top salespeople",
			ShowHeader: true,
			HasFilter:  true,
			Columns: []ColumnConfig{
				{FieldName: "Key", Header: "Salesperson", Width: 25},
				{FieldName: "Orders", Header: "Orders"},
				{FieldName: "Value", Header: "Value", NumFmt: 4},
			},
			Data: []rankRow{
				{Key: "ANA", Orders: 3, Value: 1500.5},
				{Key: "BRUNO", Orders: 1, Value: 200},
			},
		})

	f, err := exporter.BuildExcel()
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Ranking", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Top salespeople", title)

	header, err := f.GetCellValue("Ranking", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Salesperson", header)

	name, err := f.GetCellValue("Ranking", "A4")
	require.NoError(t, err)
	assert.Equal(t, "BRUNO", name)

	raw, err := f.GetCellValue("Ranking", "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1500.5", raw)
}

func TestExporter_Template(t *testing.T) {
	tmpl, err := ParseTemplate([]byte(`
sheets:
  - name: Summary
    sections:
      - id: metrics
        title: Metrics
        show_header: true
        columns:
          - field_name: Metric
            header: Metric
          - field_name: Value
            header: Value
            formatter: upper
      - id: notes
        type: title
        title: Generated report
`))
	require.NoError(t, err)

	exporter := NewExporterFromTemplate(tmpl).
		RegisterFormatter("upper", func(v interface{}) interface{} {
			if s, ok := v.(string); ok {
				return s + "!"
			}
			return v
		}).
		BindSectionData("metrics", []map[string]interface{}{
			{"Metric": "orders", "Value": "ten"},
		})

	data, err := exporter.ToBytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	val, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "ten!", val)

	note, err := f.GetCellValue("Summary", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Generated report", note)

	t.Run("template is reusable", func(t *testing.T) {
		again := NewExporterFromTemplate(tmpl)
		require.Nil(t, again.GetSheet("Summary").sections[0].Data)
	})
}

func TestParseTemplate_Errors(t *testing.T) {
	_, err := ParseTemplate(nil)
	assert.Error(t, err)

	_, err = ParseTemplate([]byte("sheets: []"))
	assert.Error(t, err)

	_, err = ParseTemplate([]byte("sheets:\n  - sections: []"))
	assert.Error(t, err)
}

func TestExporter_ToCSV(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	exporter := NewExporter()
	exporter.AddSheet("Orders").
		AddSection(&SectionConfig{
			ShowHeader: true,
			Columns: []ColumnConfig{
				{FieldName: "ORDER_DATE"},
				{FieldName: "CUSTOMER_NAME"},
				{FieldName: "VALUE"},
			},
			Data: []map[string]interface{}{
				{"ORDER_DATE": day, "CUSTOMER_NAME": "Loja; Centro", "VALUE": 10.5},
				{"ORDER_DATE": nil, "CUSTOMER_NAME": "Mercado", "VALUE": 0.0},
			},
		})

	var buf bytes.Buffer
	require.NoError(t, exporter.ToCSV(&buf, CSVOptions{Delimiter: ';'}))

	expected := "ORDER_DATE;CUSTOMER_NAME;VALUE\n" +
		"2024-03-05;\"Loja; Centro\";10.5\n" +
		";Mercado;0\n"
	assert.Equal(t, expected, buf.String())

	t.Run("unknown sheet", func(t *testing.T) {
		err := exporter.ToCSV(&bytes.Buffer{}, CSVOptions{Sheet: "Missing"})
		assert.Error(t, err)
	})
}

func TestMergeColumns_DetectsFields(t *testing.T) {
	cols := mergeColumns([]map[string]interface{}{{"b": 1}, {"a": 2}}, nil)
	require.Len(t, cols, 2)
	assert.Equal(t, "a", cols[0].FieldName)
	assert.Equal(t, "b", cols[1].Header)

	structCols := mergeColumns([]rankRow{{}}, nil)
	assert.Equal(t, []string{"Key", "Orders", "Value"},
		[]string{structCols[0].FieldName, structCols[1].FieldName, structCols[2].FieldName})
}
