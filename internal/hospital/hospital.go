// Package hospital holds the in-memory records core: a hospital owns
// departments by unique name, and each department owns its patients and staff.
//
// Nothing in this package is synchronized; callers sharing a Hospital between
// goroutines must guard it themselves.
package hospital

import "fmt"

// Hospital is the root aggregate of the records core.
type Hospital struct {
	name string
	ids  *IDAllocator

	departments map[string]*Department
	order       []string
}

// Summary is the aggregate view shown on the dashboard. It is recomputed on
// every call to Hospital.Summary.
type Summary struct {
	HospitalName     string `json:"hospital_name"`
	TotalDepartments int    `json:"total_departments"`
	TotalPatients    int    `json:"total_patients"`
	TotalStaff       int    `json:"total_staff"`
}

// New creates an empty hospital. A nil ids gets a fresh allocator.
func New(name string, ids *IDAllocator) *Hospital {
	if ids == nil {
		ids = NewIDAllocator()
	}
	return &Hospital{
		name:        name,
		ids:         ids,
		departments: make(map[string]*Department),
	}
}

func (h *Hospital) Name() string {
	return h.name
}

// IDs returns the allocator used for this hospital's patients and staff.
func (h *Hospital) IDs() *IDAllocator {
	return h.ids
}

// AddDepartment inserts d unless a department with the same name exists.
func (h *Hospital) AddDepartment(d *Department) error {
	if _, ok := h.departments[d.Name()]; ok {
		return fmt.Errorf("department %q: %w", d.Name(), ErrDuplicateEntity)
	}
	h.departments[d.Name()] = d
	h.order = append(h.order, d.Name())
	return nil
}

// RemoveDepartment deletes the named department together with its patients
// and staff.
func (h *Hospital) RemoveDepartment(name string) error {
	if _, ok := h.departments[name]; !ok {
		return fmt.Errorf("department %q: %w", name, ErrNotFound)
	}
	delete(h.departments, name)
	for i, n := range h.order {
		if n == name {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	return nil
}

// Department looks up a department by exact name.
func (h *Hospital) Department(name string) (*Department, bool) {
	d, ok := h.departments[name]
	return d, ok
}

// Departments returns all departments in insertion order.
func (h *Hospital) Departments() []*Department {
	out := make([]*Department, 0, len(h.order))
	for _, name := range h.order {
		out = append(out, h.departments[name])
	}
	return out
}

func (h *Hospital) Summary() Summary {
	s := Summary{
		HospitalName:     h.name,
		TotalDepartments: len(h.departments),
	}
	for _, d := range h.departments {
		s.TotalPatients += d.PatientCount()
		s.TotalStaff += d.StaffCount()
	}
	return s
}
