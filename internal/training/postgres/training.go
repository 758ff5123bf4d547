package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal/training"
)

type TrainingRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

func (r *TrainingRepository) GetCoursesWithState(userID int64) ([]training.CourseWithState, error) {
	var rows []training.CourseWithState
	err := r.db.
		Table("training_courses c").
		Select("c.*, e.status AS enrollment_status, e.certificate_url").
		Joins("LEFT JOIN training_enrollments e ON e.course_id = c.id AND e.user_id = ?", userID).
		Where("c.is_active = true").
		Order("c.is_mandatory DESC, c.created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *TrainingRepository) GetCourses() ([]training.Course, error) {
	var courses []training.Course
	err := r.db.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *TrainingRepository) GetCourseByID(id int64) (*training.Course, error) {
	var c training.Course
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *TrainingRepository) CreateCourse(c *training.Course) error {
	return r.db.Create(c).Error
}

func (r *TrainingRepository) UpdateCourse(c *training.Course) error {
	return r.db.Save(c).Error
}

func (r *TrainingRepository) DeleteCourse(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var modules []training.Module
		if err := tx.Where("course_id = ?", id).Find(&modules).Error; err != nil {
			return err
		}
		for _, m := range modules {
			if err := deleteQuizTx(tx, m.ID); err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", id).Delete(&training.Module{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&training.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&training.Course{}, id).Error
	})
}

func (r *TrainingRepository) GetModules(courseID int64) ([]training.Module, error) {
	var modules []training.Module
	err := r.db.
		Where("course_id = ?", courseID).
		Order("sort_order ASC, id ASC").
		Find(&modules).Error
	return modules, err
}

func (r *TrainingRepository) GetModuleByID(id int64) (*training.Module, error) {
	var m training.Module
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TrainingRepository) CreateModule(m *training.Module) error {
	return r.db.Create(m).Error
}

func (r *TrainingRepository) UpdateModule(m *training.Module) error {
	return r.db.Save(m).Error
}

func (r *TrainingRepository) DeleteModule(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteQuizTx(tx, id); err != nil {
			return err
		}
		return tx.Delete(&training.Module{}, id).Error
	})
}

func (r *TrainingRepository) GetQuizByModuleID(moduleID int64) (*training.Quiz, error) {
	var q training.Quiz
	if err := r.db.Where("module_id = ?", moduleID).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *TrainingRepository) GetQuizQuestions(quizID int64) ([]training.QuizQuestion, error) {
	var questions []training.QuizQuestion
	err := r.db.
		Where("quiz_id = ?", quizID).
		Order("sort_order ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

func deleteQuizTx(tx *gorm.DB, moduleID int64) error {
	var existing training.Quiz
	err := tx.Where("module_id = ?", moduleID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := tx.Where("quiz_id = ?", existing.ID).Delete(&training.QuizQuestion{}).Error; err != nil {
		return err
	}
	return tx.Delete(&training.Quiz{}, existing.ID).Error
}

func (r *TrainingRepository) ReplaceQuiz(moduleID int64, quiz *training.Quiz, questions []training.QuizQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteQuizTx(tx, moduleID); err != nil {
			return err
		}
		quiz.ModuleID = moduleID
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TrainingRepository) DeleteQuiz(moduleID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteQuizTx(tx, moduleID)
	})
}

func (r *TrainingRepository) GetEnrollment(courseID, userID int64) (*training.Enrollment, error) {
	var e training.Enrollment
	if err := r.db.Where("course_id = ? AND user_id = ?", courseID, userID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *TrainingRepository) CreateEnrollment(e *training.Enrollment) error {
	return r.db.Create(e).Error
}

func (r *TrainingRepository) UpdateEnrollment(e *training.Enrollment) error {
	return r.db.Save(e).Error
}
