package hospital

import "fmt"

// Person holds the fields shared by patients and staff.
type Person struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Info renders the identity line shown in listings.
func (p Person) Info() string {
	return fmt.Sprintf("ID: %d, Name: %s, Age: %d", p.ID, p.Name, p.Age)
}

// Patient is a person admitted to a department.
type Patient struct {
	Person
	MedicalRecord string `json:"medical_record"`
}

// NewPatient builds a patient with the next identifier from ids.
func NewPatient(ids *IDAllocator, name string, age int, medicalRecord string) *Patient {
	return &Patient{
		Person:        Person{ID: ids.Next(), Name: name, Age: age},
		MedicalRecord: medicalRecord,
	}
}

// RecordPreview returns the first n runes of the medical record, followed by
// "..." when the record is longer.
func (p *Patient) RecordPreview(n int) string {
	runes := []rune(p.MedicalRecord)
	if n < 0 || len(runes) <= n {
		return p.MedicalRecord
	}
	return string(runes[:n]) + "..."
}

// Staff is a person working in a department. Department is a label only and is
// overwritten by Department.AddStaff.
type Staff struct {
	Person
	Role       string  `json:"role"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

// NewStaff builds a staff member with the next identifier from ids.
func NewStaff(ids *IDAllocator, name string, age int, role, department string, salary float64) *Staff {
	return &Staff{
		Person:     Person{ID: ids.Next(), Name: name, Age: age},
		Role:       role,
		Department: department,
		Salary:     salary,
	}
}
