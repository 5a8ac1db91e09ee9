package hospital

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartment_AddPatientDuplicate(t *testing.T) {
	ids := NewIDAllocator()
	d := NewDepartment("ICU")
	p := NewPatient(ids, "Alice", 30, "flu")

	require.NoError(t, d.AddPatient(p))
	assert.ErrorIs(t, d.AddPatient(p), ErrDuplicateEntity)
	assert.Equal(t, 1, d.PatientCount())

	got, ok := d.Patient(p.ID)
	require.True(t, ok)
	assert.Same(t, p, got)
}

func TestDepartment_AddStaffOverwritesDepartment(t *testing.T) {
	ids := NewIDAllocator()
	d := NewDepartment("Cardiology")
	s := NewStaff(ids, "Dr. Grey", 38, "Doctor", "Radiology", 90000)

	require.NoError(t, d.AddStaff(s))
	assert.Equal(t, "Cardiology", s.Department)

	got, ok := d.StaffMember(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestDepartment_AddStaffDuplicateStillRelabels(t *testing.T) {
	ids := NewIDAllocator()
	d := NewDepartment("Cardiology")
	s := NewStaff(ids, "Dr. Grey", 38, "Doctor", "", 90000)
	require.NoError(t, d.AddStaff(s))

	s.Department = "Elsewhere"
	err := d.AddStaff(s)

	assert.ErrorIs(t, err, ErrDuplicateEntity)
	assert.Equal(t, "Cardiology", s.Department)
	assert.Equal(t, 1, d.StaffCount())
}

func TestDepartment_ListingsKeepInsertionOrder(t *testing.T) {
	ids := NewIDAllocator()
	d := NewDepartment("ER")
	names := []string{"Zoe", "Adam", "Maya"}
	for _, name := range names {
		require.NoError(t, d.AddPatient(NewPatient(ids, name, 20, "triage")))
		require.NoError(t, d.AddStaff(NewStaff(ids, name, 30, "Nurse", "", 1)))
	}

	var patients, staff []string
	for _, p := range d.Patients() {
		patients = append(patients, p.Name)
	}
	for _, s := range d.Staff() {
		staff = append(staff, s.Name)
	}
	assert.Equal(t, names, patients)
	assert.Equal(t, names, staff)
}

func TestDepartment_String(t *testing.T) {
	ids := NewIDAllocator()
	d := NewDepartment("ER")
	require.NoError(t, d.AddPatient(NewPatient(ids, "Alice", 30, "flu")))

	assert.Equal(t, "Department ER (patients: 1, staff: 0)", d.String())
}

func TestPatient_RecordPreview(t *testing.T) {
	tests := []struct {
		name   string
		record string
		n      int
		want   string
	}{
		{name: "short record unchanged", record: "flu", n: 50, want: "flu"},
		{name: "exact length unchanged", record: "abcde", n: 5, want: "abcde"},
		{name: "long record truncated", record: "abcdefgh", n: 3, want: "abc..."},
		{name: "multibyte runes kept whole", record: "héllo wörld", n: 4, want: "héll..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Patient{MedicalRecord: tt.record}
			assert.Equal(t, tt.want, p.RecordPreview(tt.n))
		})
	}
}

func TestPerson_Info(t *testing.T) {
	p := Person{ID: 7, Name: "Alice", Age: 30}
	assert.Equal(t, "ID: 7, Name: Alice, Age: 30", p.Info())
}
