package domain

type Role string

const (
	RoleTechnician Role = "Technician"
	RoleDoctor     Role = "Doctor"
	RolePatient    Role = "Patient"
)

// User - общая запись пользователя. Врачи и пациенты различаются только
// ролью, без иерархии наследования
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}
