package domain

import "time"

// Course is an academic course questions can be scoped to
type Course struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Code        string    `gorm:"column:code;type:varchar(50);uniqueIndex;not null" json:"code"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	Semester    string    `gorm:"column:semester;type:varchar(50)" json:"semester"`
	AssignedTo  *uint64   `gorm:"column:assigned_to;index" json:"assigned_to,omitempty"`
	Assignee    *Profile  `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Course) TableName() string { return "courses" }

// Enrollment grants a student access to a course
type Enrollment struct {
	StudentID uint64    `gorm:"column:student_id;primaryKey" json:"student_id"`
	CourseID  uint64    `gorm:"column:course_id;primaryKey;index" json:"course_id"`
	Student   *Profile  `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Course    *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Enrollment) TableName() string { return "enrollments" }
