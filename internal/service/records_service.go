package service

import (
	"errors"
	"fmt"
	"sync"

	"hospital-records/internal/hospital"
	"hospital-records/internal/metrics"
	"hospital-records/internal/models"

	"go.uber.org/zap"
)

const (
	// RecordPreviewLength matches the medical record column of the patient table.
	RecordPreviewLength = 50

	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// AuditStore records and lists activity entries.
type AuditStore interface {
	CreateAuditLog(userID *uint, action, department, details string) error
	ListRecent(limit int) ([]models.AuditLog, error)
}

type DepartmentView struct {
	Name         string `json:"name"`
	PatientCount int    `json:"patient_count"`
	StaffCount   int    `json:"staff_count"`
}

type PatientView struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Department    string `json:"department"`
	MedicalRecord string `json:"medical_record"`
	RecordPreview string `json:"record_preview"`
	Info          string `json:"info"`
}

type StaffView struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Age        int     `json:"age"`
	Role       string  `json:"role"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	Info       string  `json:"info"`
}

// RecordsService serializes access to the hospital records. Reads return
// copies so nothing outside the lock aliases the underlying records.
type RecordsService struct {
	mu       sync.RWMutex
	hospital *hospital.Hospital

	auditRepo AuditStore
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewRecordsService(h *hospital.Hospital, auditRepo AuditStore, m *metrics.Metrics, log *zap.Logger) *RecordsService {
	s := &RecordsService{
		hospital:  h,
		auditRepo: auditRepo,
		metrics:   m,
		log:       log,
	}
	s.publishTotals(h.Summary())
	return s
}

// AddDepartment registers a new, empty department.
func (s *RecordsService) AddDepartment(name string, actorID uint) (DepartmentView, error) {
	s.mu.Lock()
	dept := hospital.NewDepartment(name)
	err := s.hospital.AddDepartment(dept)
	summary := s.hospital.Summary()
	s.mu.Unlock()

	s.finish("add_department", err, summary)
	if err != nil {
		return DepartmentView{}, err
	}

	s.audit(actorID, models.ActionDepartmentAdd, name, fmt.Sprintf("Department '%s' added", name))
	return DepartmentView{Name: name}, nil
}

// RemoveDepartment deletes a department along with its patients and staff.
func (s *RecordsService) RemoveDepartment(name string, actorID uint) error {
	s.mu.Lock()
	var patients, staff int
	if dept, ok := s.hospital.Department(name); ok {
		patients, staff = dept.PatientCount(), dept.StaffCount()
	}
	err := s.hospital.RemoveDepartment(name)
	summary := s.hospital.Summary()
	s.mu.Unlock()

	s.finish("remove_department", err, summary)
	if err != nil {
		return err
	}

	s.audit(actorID, models.ActionDepartmentRemove, name,
		fmt.Sprintf("Department '%s' removed with %d patients and %d staff", name, patients, staff))
	return nil
}

func (s *RecordsService) GetDepartment(name string) (DepartmentView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dept, err := s.department(name)
	if err != nil {
		return DepartmentView{}, err
	}
	return departmentView(dept), nil
}

func (s *RecordsService) ListDepartments() []DepartmentView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	depts := s.hospital.Departments()
	views := make([]DepartmentView, 0, len(depts))
	for _, d := range depts {
		views = append(views, departmentView(d))
	}
	return views
}

// AddPatient admits a new patient to the named department.
func (s *RecordsService) AddPatient(department, name string, age int, medicalRecord string, actorID uint) (PatientView, error) {
	s.mu.Lock()
	var view PatientView
	dept, err := s.department(department)
	if err == nil {
		patient := hospital.NewPatient(s.hospital.IDs(), name, age, medicalRecord)
		if err = dept.AddPatient(patient); err == nil {
			view = patientView(patient, dept.Name())
		}
	}
	summary := s.hospital.Summary()
	s.mu.Unlock()

	s.finish("add_patient", err, summary)
	if err != nil {
		return PatientView{}, err
	}

	s.audit(actorID, models.ActionPatientAdd, department,
		fmt.Sprintf("Patient '%s' (ID %d) added to %s", name, view.ID, department))
	return view, nil
}

// AddStaff adds a new staff member to the named department.
func (s *RecordsService) AddStaff(department, name string, age int, role string, salary float64, actorID uint) (StaffView, error) {
	s.mu.Lock()
	var view StaffView
	dept, err := s.department(department)
	if err == nil {
		member := hospital.NewStaff(s.hospital.IDs(), name, age, role, department, salary)
		if err = dept.AddStaff(member); err == nil {
			view = staffView(member)
		}
	}
	summary := s.hospital.Summary()
	s.mu.Unlock()

	s.finish("add_staff", err, summary)
	if err != nil {
		return StaffView{}, err
	}

	s.audit(actorID, models.ActionStaffAdd, department,
		fmt.Sprintf("Staff '%s' (%s, ID %d) added to %s", name, role, view.ID, department))
	return view, nil
}

func (s *RecordsService) ListPatients(department string) ([]PatientView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dept, err := s.department(department)
	if err != nil {
		return nil, err
	}
	return patientViews(dept), nil
}

func (s *RecordsService) ListStaff(department string) ([]StaffView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dept, err := s.department(department)
	if err != nil {
		return nil, err
	}
	return staffViews(dept), nil
}

// FindPatient looks a patient up by id across all departments.
func (s *RecordsService) FindPatient(id int) (PatientView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.hospital.Departments() {
		if p, ok := d.Patient(id); ok {
			return patientView(p, d.Name()), nil
		}
	}
	return PatientView{}, fmt.Errorf("patient %d: %w", id, hospital.ErrNotFound)
}

// FindStaff looks a staff member up by id across all departments.
func (s *RecordsService) FindStaff(id int) (StaffView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.hospital.Departments() {
		if m, ok := d.StaffMember(id); ok {
			return staffView(m), nil
		}
	}
	return StaffView{}, fmt.Errorf("staff member %d: %w", id, hospital.ErrNotFound)
}

// AllPatients lists every patient, grouped by department in department order.
func (s *RecordsService) AllPatients() []PatientView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := []PatientView{}
	for _, d := range s.hospital.Departments() {
		views = append(views, patientViews(d)...)
	}
	return views
}

// AllStaff lists every staff member, grouped by department in department order.
func (s *RecordsService) AllStaff() []StaffView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := []StaffView{}
	for _, d := range s.hospital.Departments() {
		views = append(views, staffViews(d)...)
	}
	return views
}

func (s *RecordsService) Summary() hospital.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hospital.Summary()
}

// RecentActivity returns the newest audit entries. Non-positive limits get the
// default; large ones are capped.
func (s *RecordsService) RecentActivity(limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	logs, err := s.auditRepo.ListRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return logs, nil
}

// department must be called with s.mu held.
func (s *RecordsService) department(name string) (*hospital.Department, error) {
	dept, ok := s.hospital.Department(name)
	if !ok {
		return nil, fmt.Errorf("department %q: %w", name, hospital.ErrNotFound)
	}
	return dept, nil
}

func (s *RecordsService) finish(operation string, err error, summary hospital.Summary) {
	result := mutationResult(err)
	s.metrics.RecordMutation(operation, result)
	if err != nil {
		s.log.Info("Records mutation rejected",
			zap.String("operation", operation),
			zap.String("result", result),
			zap.Error(err))
		return
	}
	s.publishTotals(summary)
	s.log.Info("Records mutation applied",
		zap.String("operation", operation),
		zap.Int("departments", summary.TotalDepartments),
		zap.Int("patients", summary.TotalPatients),
		zap.Int("staff", summary.TotalStaff))
}

func (s *RecordsService) publishTotals(summary hospital.Summary) {
	s.metrics.SetTotals(summary.TotalDepartments, summary.TotalPatients, summary.TotalStaff)
}

// audit is best effort: a failed write is logged and never fails the mutation.
func (s *RecordsService) audit(actorID uint, action, department, details string) {
	if err := s.auditRepo.CreateAuditLog(&actorID, action, department, details); err != nil {
		s.log.Warn("Failed to write audit log",
			zap.String("action", action),
			zap.String("department", department),
			zap.Error(err))
	}
}

func mutationResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, hospital.ErrDuplicateEntity):
		return "duplicate"
	case errors.Is(err, hospital.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func departmentView(d *hospital.Department) DepartmentView {
	return DepartmentView{
		Name:         d.Name(),
		PatientCount: d.PatientCount(),
		StaffCount:   d.StaffCount(),
	}
}

func patientView(p *hospital.Patient, department string) PatientView {
	return PatientView{
		ID:            p.ID,
		Name:          p.Name,
		Age:           p.Age,
		Department:    department,
		MedicalRecord: p.MedicalRecord,
		RecordPreview: p.RecordPreview(RecordPreviewLength),
		Info:          p.Info(),
	}
}

func patientViews(d *hospital.Department) []PatientView {
	patients := d.Patients()
	views := make([]PatientView, 0, len(patients))
	for _, p := range patients {
		views = append(views, patientView(p, d.Name()))
	}
	return views
}

func staffView(m *hospital.Staff) StaffView {
	return StaffView{
		ID:         m.ID,
		Name:       m.Name,
		Age:        m.Age,
		Role:       m.Role,
		Department: m.Department,
		Salary:     m.Salary,
		Info:       m.Info(),
	}
}

func staffViews(d *hospital.Department) []StaffView {
	members := d.Staff()
	views := make([]StaffView, 0, len(members))
	for _, m := range members {
		views = append(views, staffView(m))
	}
	return views
}
