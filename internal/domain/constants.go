package domain

// Ограничения валидации шага client-info
const (
	MinNameLength  = 2
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

// Ограничения прочих полей формы
const (
	MaxNotesLength = 500
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Роли пользователей портала
type Role string

const (
	RoleAdmin    Role = "admin"
	RolePartner  Role = "partner"
	RoleManager  Role = "manager"
	RoleOperator Role = "operator"
	RoleClient   Role = "client"
)

// ServiceRoles роли, которым доступны все слоты, включая полностью занятые
var ServiceRoles = []Role{RoleAdmin, RolePartner, RoleManager, RoleOperator}

// IsServiceRole проверяет, относится ли роль к сервисным (staff) ролям
func (r Role) IsServiceRole() bool {
	for _, s := range ServiceRoles {
		if r == s {
			return true
		}
	}
	return false
}
