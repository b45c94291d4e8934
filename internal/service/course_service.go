package service

import (
	"strings"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/policy"
	"github.com/gyansetu/gyansetu-backend/internal/repository"
)

// CourseRequest create/update payload
type CourseRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Code        string  `json:"code" validate:"required,max=50"`
	Description *string `json:"description"`
	Semester    string  `json:"semester" validate:"max=50"`
}

// CourseService courses and the enrollment gate
type CourseService interface {
	// CanPostInCourse is true iff the user is enrolled in the course
	CanPostInCourse(userID, courseID uint64) (bool, error)
	// CanAccessCourse is true when the user is enrolled, is the assigned admin, or is a superadmin
	CanAccessCourse(actor Actor, courseID uint64) (bool, error)
	// AccessibleCourseIDs returns nil when every course is visible
	AccessibleCourseIDs(actor Actor) ([]uint64, error)

	List(page, limit int, keyword string) ([]domain.Course, int64, error)
	Get(id uint64) (*domain.Course, error)
	Create(actor Actor, req *CourseRequest) (*domain.Course, error)
	Update(actor Actor, id uint64, req *CourseRequest) (*domain.Course, error)
	Delete(actor Actor, id uint64) error
	Assign(actor Actor, courseID uint64, adminID *uint64) (*domain.Course, error)

	Enroll(actor Actor, studentID, courseID uint64) error
	Unenroll(actor Actor, studentID, courseID uint64) error
	ListEnrollments(userID uint64) ([]domain.Course, error)
}

type courseService struct {
	courses  repository.CourseRepository
	profiles repository.ProfileRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courses repository.CourseRepository, profiles repository.ProfileRepository) CourseService {
	return &courseService{courses: courses, profiles: profiles}
}

func (s *courseService) CanPostInCourse(userID, courseID uint64) (bool, error) {
	return s.courses.IsEnrolled(userID, courseID)
}

func (s *courseService) CanAccessCourse(actor Actor, courseID uint64) (bool, error) {
	if actor.ID == 0 {
		return false, nil
	}
	if actor.Role == domain.RoleSuperAdmin {
		return true, nil
	}
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return false, err
	}
	if course.AssignedTo != nil && *course.AssignedTo == actor.ID {
		return true, nil
	}
	return s.courses.IsEnrolled(actor.ID, courseID)
}

func (s *courseService) AccessibleCourseIDs(actor Actor) ([]uint64, error) {
	if actor.Role == domain.RoleSuperAdmin {
		return nil, nil
	}
	if actor.ID == 0 {
		return []uint64{}, nil
	}
	ids, err := s.courses.AccessibleCourseIDs(actor.ID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint64{}
	}
	return ids, nil
}

func (s *courseService) List(page, limit int, keyword string) ([]domain.Course, int64, error) {
	page, limit = normalizePage(page, limit)
	return s.courses.List(page, limit, strings.TrimSpace(keyword))
}

func (s *courseService) Get(id uint64) (*domain.Course, error) {
	return s.courses.FindByID(id)
}

func assigneeOf(c *domain.Course) uint64 {
	if c.AssignedTo == nil {
		return 0
	}
	return *c.AssignedTo
}

func (s *courseService) checkManage(actor Actor, c *domain.Course) error {
	var owner uint64
	if c != nil {
		owner = assigneeOf(c)
	}
	return policy.Check(policy.Request{
		Action: policy.ActionManageCourse, ActorID: actor.ID, ActorRole: actor.Role, OwnerID: owner,
	})
}

func (s *courseService) Create(actor Actor, req *CourseRequest) (*domain.Course, error) {
	if err := s.checkManage(actor, nil); err != nil {
		return nil, err
	}
	course := &domain.Course{
		Name:        strings.TrimSpace(req.Name),
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Description: req.Description,
		Semester:    strings.TrimSpace(req.Semester),
	}
	if course.Name == "" || course.Code == "" {
		return nil, common.ErrInvalidInput
	}
	if err := s.courses.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) Update(actor Actor, id uint64, req *CourseRequest) (*domain.Course, error) {
	course, err := s.courses.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkManage(actor, course); err != nil {
		return nil, err
	}
	course.Name = strings.TrimSpace(req.Name)
	course.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	course.Description = req.Description
	course.Semester = strings.TrimSpace(req.Semester)
	if course.Name == "" || course.Code == "" {
		return nil, common.ErrInvalidInput
	}
	if err := s.courses.Update(course); err != nil {
		return nil, err
	}
	return s.courses.FindByID(id)
}

func (s *courseService) Delete(actor Actor, id uint64) error {
	course, err := s.courses.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.checkManage(actor, course); err != nil {
		return err
	}
	return s.courses.Delete(id)
}

// Assign sets or clears the managing admin. Admins may only claim a course
// for themselves or release their own; superadmins assign anyone.
func (s *courseService) Assign(actor Actor, courseID uint64, adminID *uint64) (*domain.Course, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if err := s.checkManage(actor, course); err != nil {
		return nil, err
	}
	if adminID != nil {
		if actor.Role != domain.RoleSuperAdmin && *adminID != actor.ID {
			return nil, &policy.Denied{Action: policy.ActionManageCourse, Message: "only a superadmin can assign a course to another admin"}
		}
		assignee, err := s.profiles.FindByID(*adminID)
		if err != nil {
			return nil, err
		}
		if !assignee.Role.IsStaff() {
			return nil, common.ErrInvalidRole
		}
	}
	if err := s.courses.Assign(courseID, adminID); err != nil {
		return nil, err
	}
	return s.courses.FindByID(courseID)
}

func (s *courseService) checkEnrollment(actor Actor, studentID, courseID uint64) error {
	if actor.ID == 0 {
		return common.ErrUnauthorized
	}
	if studentID != actor.ID && !actor.IsStaff() {
		return &policy.Denied{Action: policy.ActionManageCourse, Message: "you can only manage your own enrollments"}
	}
	if _, err := s.courses.FindByID(courseID); err != nil {
		return err
	}
	student, err := s.profiles.FindByID(studentID)
	if err != nil {
		return err
	}
	if student.Role != domain.RoleStudent {
		return common.ErrOnlyStudentsEnroll
	}
	return nil
}

func (s *courseService) Enroll(actor Actor, studentID, courseID uint64) error {
	if err := s.checkEnrollment(actor, studentID, courseID); err != nil {
		return err
	}
	return s.courses.Enroll(studentID, courseID)
}

func (s *courseService) Unenroll(actor Actor, studentID, courseID uint64) error {
	if err := s.checkEnrollment(actor, studentID, courseID); err != nil {
		return err
	}
	return s.courses.Unenroll(studentID, courseID)
}

func (s *courseService) ListEnrollments(userID uint64) ([]domain.Course, error) {
	courses, err := s.courses.EnrolledCourses(userID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []domain.Course{}
	}
	return courses, nil
}
