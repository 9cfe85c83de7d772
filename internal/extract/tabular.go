package extract

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/ocr"
)

// extractXLSX flattens every non-empty cell of an OOXML workbook into text,
// one pipe-joined line per row under a sheet label. Parsed directly from the
// zip container, same technique as the DOCX path once used.
func extractXLSX(data []byte) (string, *ocr.Metrics, error) {
	if len(data) == 0 {
		return "", nil, errors.New("empty workbook data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, err
	}

	shared, err := readSharedStrings(zr)
	if err != nil {
		return "", nil, err
	}
	names := readSheetNames(zr)

	var b strings.Builder
	for i := 1; ; i++ {
		sheetFile := findZipFile(zr, fmt.Sprintf("xl/worksheets/sheet%d.xml", i))
		if sheetFile == nil {
			break
		}
		name := fmt.Sprintf("Sheet%d", i)
		if i-1 < len(names) {
			name = names[i-1]
		}
		rows, err := readWorksheet(sheetFile, shared)
		if err != nil {
			return "", nil, fmt.Errorf("worksheet %s: %w", name, err)
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## Sheet: %s\n", name)
		for _, row := range rows {
			b.WriteString(row)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", nil, errors.New("workbook contains no readable cells")
	}
	return text, nil, nil
}

// extractCSV flattens a CSV file, one pipe-joined line per non-empty row.
func extractCSV(data []byte) (string, *ocr.Metrics, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	for _, record := range records {
		line := joinCells(record)
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", nil, errors.New("csv contains no readable cells")
	}
	return text, nil, nil
}

func joinCells(cells []string) string {
	var kept []string
	for _, cell := range cells {
		if trimmed := strings.TrimSpace(cell); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, " | ")
}

func findZipFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == name {
			return f
		}
	}
	return nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type xlsxSharedStrings struct {
	Items []struct {
		T    string `xml:"t"`
		Runs []struct {
			T string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

func readSharedStrings(zr *zip.Reader) ([]string, error) {
	f := findZipFile(zr, "xl/sharedStrings.xml")
	if f == nil {
		return nil, nil
	}
	raw, err := readZipFile(f)
	if err != nil {
		return nil, err
	}
	var parsed xlsxSharedStrings
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		text := item.T
		for _, run := range item.Runs {
			text += run.T
		}
		out = append(out, text)
	}
	return out, nil
}

type xlsxWorkbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
	} `xml:"sheets>sheet"`
}

func readSheetNames(zr *zip.Reader) []string {
	f := findZipFile(zr, "xl/workbook.xml")
	if f == nil {
		return nil
	}
	raw, err := readZipFile(f)
	if err != nil {
		return nil
	}
	var parsed xlsxWorkbook
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return nil
	}
	names := make([]string, 0, len(parsed.Sheets))
	for _, sheet := range parsed.Sheets {
		names = append(names, sheet.Name)
	}
	return names
}

type xlsxWorksheet struct {
	Rows []struct {
		Cells []struct {
			Type   string `xml:"t,attr"`
			Value  string `xml:"v"`
			Inline struct {
				T string `xml:"t"`
			} `xml:"is"`
		} `xml:"c"`
	} `xml:"sheetData>row"`
}

func readWorksheet(f *zip.File, shared []string) ([]string, error) {
	raw, err := readZipFile(f)
	if err != nil {
		return nil, err
	}
	var parsed xlsxWorksheet
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}

	var rows []string
	for _, row := range parsed.Rows {
		var cells []string
		for _, cell := range row.Cells {
			value := cellValue(cell.Type, cell.Value, cell.Inline.T, shared)
			if value != "" {
				cells = append(cells, value)
			}
		}
		if line := strings.Join(cells, " | "); line != "" {
			rows = append(rows, line)
		}
	}
	return rows, nil
}

func cellValue(cellType, value, inline string, shared []string) string {
	switch cellType {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return strings.TrimSpace(shared[idx])
	case "inlineStr":
		return strings.TrimSpace(inline)
	default:
		return strings.TrimSpace(value)
	}
}
