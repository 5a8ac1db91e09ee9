package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRoster(t *testing.T) {
	svc, _, _ := newTestRecordsService(t)
	_, err := svc.AddDepartment("ICU", 1)
	require.NoError(t, err)
	_, err = svc.AddDepartment("ER", 1)
	require.NoError(t, err)
	_, err = svc.AddPatient("ICU", "Alice", 30, "flu", 1)
	require.NoError(t, err)
	_, err = svc.AddStaff("ER", "Dr. Grey", 38, "Doctor", 90000, 1)
	require.NoError(t, err)

	data, err := NewExportService(svc).Roster()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{departmentsSheet, patientsSheet, staffSheet}, f.GetSheetList())

	rows, err := f.GetRows(departmentsSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Department", "Patients", "Staff"},
		{"ICU", "1", "0"},
		{"ER", "0", "1"},
	}, rows)

	rows, err = f.GetRows(patientsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "Alice", "30", "ICU", "flu"}, rows[1])

	role, err := f.GetCellValue(staffSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Doctor", role)
	salary, err := f.GetCellValue(staffSheet, "F2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "90000", salary)
}

func TestRoster_Empty(t *testing.T) {
	svc, _, _ := newTestRecordsService(t)

	data, err := NewExportService(svc).Roster()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(staffSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
