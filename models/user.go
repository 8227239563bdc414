package models

// User представляет пользователя системы (сотрудника подразделения)
type User struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Mail    string `json:"email" gorm:"uniqueIndex;size:254"`
	Name    string `json:"name" gorm:"size:220"`
	Surname string `json:"surname" gorm:"size:220"`

	DepartmentID *uint       `json:"departmentId"`
	Department   *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`

	// Связь 1-1 с учетными данными
	Auth *UserAuth `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserAuth хранит учетные данные отдельно от профиля, чтобы хэш пароля
// никогда не попадал в API-ответы вместе с пользователем.
type UserAuth struct {
	UserID       uint   `json:"-" gorm:"primaryKey"`
	PasswordHash string `json:"-"`
	Role         string `json:"role" gorm:"default:user"`
	IsActive     bool   `json:"isActive" gorm:"default:true"`
}
