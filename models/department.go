package models

type Department struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;size:120;uniqueIndex;not null" json:"name"`
	Code string `gorm:"column:code;size:20;uniqueIndex;not null" json:"code"`
}

func (Department) TableName() string {
	return "departments"
}

// Class links students to an advisor and a department.
type Class struct {
	ID           uint   `gorm:"primaryKey;column:id" json:"id"`
	Name         string `gorm:"column:name;size:120;not null" json:"name"`
	DepartmentID *uint  `gorm:"column:department_id;index" json:"department_id"`
	AdvisorID    *uint  `gorm:"column:advisor_id;index" json:"advisor_id"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"-"`
	Advisor    *User       `gorm:"foreignKey:AdvisorID" json:"-"`
}

func (Class) TableName() string {
	return "classes"
}

// ClassView is a class row with the advisor and department names resolved.
type ClassView struct {
	Class
	AdvisorName    *string `gorm:"column:advisor_name" json:"advisor_name"`
	DepartmentName *string `gorm:"column:department_name" json:"department_name"`
}
