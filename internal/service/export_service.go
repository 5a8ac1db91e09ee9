package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	departmentsSheet = "Departments"
	patientsSheet    = "Patients"
	staffSheet       = "Staff"

	// Built-in excelize number format: "$#,##0.00" style currency.
	currencyNumFmt = 7
)

// rosterSource is the subset of RecordsService the export needs.
type rosterSource interface {
	ListDepartments() []DepartmentView
	AllPatients() []PatientView
	AllStaff() []StaffView
}

// ExportService renders the hospital roster as an XLSX workbook.
type ExportService struct {
	records rosterSource
}

func NewExportService(records rosterSource) *ExportService {
	return &ExportService{records: records}
}

type sheetSpec struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]interface{}
}

// Roster builds a workbook with one sheet each for departments, patients and staff.
func (s *ExportService) Roster() ([]byte, error) {
	departments := s.records.ListDepartments()
	patients := s.records.AllPatients()
	staff := s.records.AllStaff()

	sheets := []sheetSpec{
		{
			name:    departmentsSheet,
			headers: []string{"Department", "Patients", "Staff"},
			widths:  []float64{30, 12, 12},
		},
		{
			name:    patientsSheet,
			headers: []string{"ID", "Name", "Age", "Department", "Medical Record"},
			widths:  []float64{8, 25, 8, 25, 60},
		},
		{
			name:    staffSheet,
			headers: []string{"ID", "Name", "Age", "Role", "Department", "Salary"},
			widths:  []float64{8, 25, 8, 20, 25, 15},
		},
	}
	for _, d := range departments {
		sheets[0].rows = append(sheets[0].rows, []interface{}{d.Name, d.PatientCount, d.StaffCount})
	}
	for _, p := range patients {
		sheets[1].rows = append(sheets[1].rows, []interface{}{p.ID, p.Name, p.Age, p.Department, p.MedicalRecord})
	}
	for _, m := range staff {
		sheets[2].rows = append(sheets[2].rows, []interface{}{m.ID, m.Name, m.Age, m.Role, m.Department, m.Salary})
	}

	f := excelize.NewFile()
	// f stays open until WriteTo has finished.

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	currencyStyle, err := f.NewStyle(&excelize.Style{NumFmt: currencyNumFmt})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create currency style: %w", err)
	}

	for i, sheet := range sheets {
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
		if i == 0 {
			// the default sheet is replaced by the first roster sheet
			if err := f.DeleteSheet("Sheet1"); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to delete default sheet: %w", err)
			}
		}
	}

	if len(staff) > 0 {
		last := fmt.Sprintf("F%d", len(staff)+1)
		if err := f.SetCellStyle(staffSheet, "F2", last, currencyStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set salary style: %w", err)
		}
	}

	index, err := f.GetSheetIndex(departmentsSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to find sheet: %w", err)
	}
	f.SetActiveSheet(index)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet sheetSpec, headerStyle int) error {
	if _, err := f.NewSheet(sheet.name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
	}

	for col, header := range sheet.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet.name, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet.name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet.name, name, name, sheet.widths[col]); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, row := range sheet.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet.name, err)
		}
	}

	if err := f.SetPanes(sheet.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	return nil
}
