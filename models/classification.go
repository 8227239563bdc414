package models

// Бюджетная классификация: dział -> rozdział -> paragraf -> grupa wydatków.
// Справочники заполняются при инициализации БД и дальше только читаются.

type Division struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Value    string    `json:"value" gorm:"uniqueIndex"`
	Chapters []Chapter `json:"-" gorm:"foreignKey:DivisionID"`
}

type Chapter struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Value      string      `json:"value" gorm:"uniqueIndex"`
	DivisionID uint        `json:"-" gorm:"index"`
	Paragraphs []Paragraph `json:"-" gorm:"foreignKey:ChapterID"`
}

type Paragraph struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	Value          string        `json:"value"`
	ChapterID      uint          `json:"-" gorm:"index"`
	ExpenseGroupID *uint         `json:"-"`
	ExpenseGroup   *ExpenseGroup `json:"expense_group" gorm:"foreignKey:ExpenseGroupID"`
}

type ExpenseGroup struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Definition string `json:"definition"`
}

// Task представляет позицию budżetu zadaniowego (полную или номер функции/задания)
type Task struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Value       string `json:"value"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type Department struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Type string `json:"type"`
}

type Status struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Value string `json:"value"`
}
