package employee

import "context"

// EmployeeRepository is the read-side contract the payroll engine consumes.
// Employee CRUD itself lives outside this service.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetPayable(ctx context.Context) ([]Employee, error)
}
