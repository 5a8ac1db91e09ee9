package hospital

import "fmt"

// Department owns its patients and staff, keyed by identifier. It is not safe
// for concurrent use.
type Department struct {
	name string

	patients     map[int]*Patient
	patientOrder []int

	staff      map[int]*Staff
	staffOrder []int
}

func NewDepartment(name string) *Department {
	return &Department{
		name:     name,
		patients: make(map[int]*Patient),
		staff:    make(map[int]*Staff),
	}
}

func (d *Department) Name() string {
	return d.name
}

// AddPatient inserts p unless a patient with the same id is already present.
func (d *Department) AddPatient(p *Patient) error {
	if _, ok := d.patients[p.ID]; ok {
		return fmt.Errorf("patient %d in department %q: %w", p.ID, d.name, ErrDuplicateEntity)
	}
	d.patients[p.ID] = p
	d.patientOrder = append(d.patientOrder, p.ID)
	return nil
}

// AddStaff labels s with this department and inserts it unless a staff member
// with the same id is already present. The label is applied even when the
// insert is rejected.
func (d *Department) AddStaff(s *Staff) error {
	s.Department = d.name

	if _, ok := d.staff[s.ID]; ok {
		return fmt.Errorf("staff member %d in department %q: %w", s.ID, d.name, ErrDuplicateEntity)
	}
	d.staff[s.ID] = s
	d.staffOrder = append(d.staffOrder, s.ID)
	return nil
}

// Patient looks up a patient by id.
func (d *Department) Patient(id int) (*Patient, bool) {
	p, ok := d.patients[id]
	return p, ok
}

// StaffMember looks up a staff member by id.
func (d *Department) StaffMember(id int) (*Staff, bool) {
	s, ok := d.staff[id]
	return s, ok
}

// Patients returns the department's patients in insertion order.
func (d *Department) Patients() []*Patient {
	out := make([]*Patient, 0, len(d.patientOrder))
	for _, id := range d.patientOrder {
		out = append(out, d.patients[id])
	}
	return out
}

// Staff returns the department's staff in insertion order.
func (d *Department) Staff() []*Staff {
	out := make([]*Staff, 0, len(d.staffOrder))
	for _, id := range d.staffOrder {
		out = append(out, d.staff[id])
	}
	return out
}

func (d *Department) PatientCount() int {
	return len(d.patients)
}

func (d *Department) StaffCount() int {
	return len(d.staff)
}

func (d *Department) String() string {
	return fmt.Sprintf("Department %s (patients: %d, staff: %d)", d.name, len(d.patients), len(d.staff))
}
