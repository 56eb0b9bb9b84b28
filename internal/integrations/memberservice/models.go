package memberservice

// Роли участников в MemberService
const (
	RoleMember = "member"
	RoleStaff  = "staff"
)

// Member модель участника из MemberService
type Member struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"` // Роль участника (member, staff)
	Active bool   `json:"active"`
}

// IsStaff возвращает true, если участник является сотрудником
func (m *Member) IsStaff() bool {
	return m.Role == RoleStaff
}

// ErrorResponse модель ошибки от MemberService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
