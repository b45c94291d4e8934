package repository

import (
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"gorm.io/gorm"
)

// CourseRepository course and enrollment data access
type CourseRepository interface {
	Create(course *domain.Course) error
	FindByID(id uint64) (*domain.Course, error)
	List(page, limit int, keyword string) ([]domain.Course, int64, error)
	Update(course *domain.Course) error
	Delete(id uint64) error
	Assign(courseID uint64, adminID *uint64) error

	Enroll(studentID, courseID uint64) error
	Unenroll(studentID, courseID uint64) error
	IsEnrolled(studentID, courseID uint64) (bool, error)
	EnrolledCourses(studentID uint64) ([]domain.Course, error)
	// AccessibleCourseIDs returns courses the user is enrolled in or assigned to
	AccessibleCourseIDs(userID uint64) ([]uint64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *domain.Course) error {
	if err := r.db.Create(course).Error; err != nil {
		if isDuplicateKey(err) {
			return common.ErrCourseCodeTaken
		}
		return err
	}
	return nil
}

func (r *courseRepository) FindByID(id uint64) (*domain.Course, error) {
	var c domain.Course
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err, common.ErrCourseNotFound)
	}
	return &c, nil
}

func (r *courseRepository) List(page, limit int, keyword string) ([]domain.Course, int64, error) {
	var courses []domain.Course
	var total int64

	query := r.db.Model(&domain.Course{})
	if keyword != "" {
		like := containsPattern(keyword)
		query = query.Where("name LIKE ? ESCAPE '"+likeEscape+"' OR code LIKE ? ESCAPE '"+likeEscape+"'", like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("code ASC").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *courseRepository) Update(course *domain.Course) error {
	err := r.db.Model(&domain.Course{}).Where("id = ?", course.ID).Updates(map[string]interface{}{
		"name":        course.Name,
		"code":        course.Code,
		"description": course.Description,
		"semester":    course.Semester,
	}).Error
	if isDuplicateKey(err) {
		return common.ErrCourseCodeTaken
	}
	return err
}

// Delete removes the course; its enrollments and questions cascade
func (r *courseRepository) Delete(id uint64) error {
	res := r.db.Delete(&domain.Course{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrCourseNotFound
	}
	return nil
}

func (r *courseRepository) Assign(courseID uint64, adminID *uint64) error {
	return r.db.Model(&domain.Course{}).Where("id = ?", courseID).Update("assigned_to", adminID).Error
}

func (r *courseRepository) Enroll(studentID, courseID uint64) error {
	err := r.db.Create(&domain.Enrollment{StudentID: studentID, CourseID: courseID}).Error
	if isDuplicateKey(err) {
		return common.ErrAlreadyEnrolled
	}
	return err
}

func (r *courseRepository) Unenroll(studentID, courseID uint64) error {
	res := r.db.Where("student_id = ? AND course_id = ?", studentID, courseID).Delete(&domain.Enrollment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotEnrolled
	}
	return nil
}

func (r *courseRepository) IsEnrolled(studentID, courseID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *courseRepository) EnrolledCourses(studentID uint64) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.db.Model(&domain.Course{}).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ?", studentID).
		Order("courses.code ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepository) AccessibleCourseIDs(userID uint64) ([]uint64, error) {
	var enrolled []uint64
	if err := r.db.Model(&domain.Enrollment{}).
		Where("student_id = ?", userID).
		Pluck("course_id", &enrolled).Error; err != nil {
		return nil, err
	}
	var assigned []uint64
	if err := r.db.Model(&domain.Course{}).
		Where("assigned_to = ?", userID).
		Pluck("id", &assigned).Error; err != nil {
		return nil, err
	}
	return append(enrolled, assigned...), nil
}
