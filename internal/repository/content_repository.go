package repository

import (
	"aura_edu_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type CourseRepository struct {
	CrudRepository[model.Course]
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{CrudRepository[model.Course]{DB: db}}
}

func (r *CourseRepository) List(ctx context.Context, publishedOnly bool, search string, page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Course{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("sort_order ASC, id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

// FindWithLessons loads a course with its lessons and their topics.
func (r *CourseRepository) FindWithLessons(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") }).
		Preload("Lessons.Topics", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") }).
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

type LessonRepository struct {
	CrudRepository[model.Lesson]
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{CrudRepository[model.Lesson]{DB: db}}
}

// FindDetail loads a lesson with topics, code examples and activities.
func (r *LessonRepository) FindDetail(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).
		Preload("Topics", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") }).
		Preload("Topics.CodeExamples").
		Preload("Activities").
		First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

type TopicRepository struct {
	CrudRepository[model.Topic]
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{CrudRepository[model.Topic]{DB: db}}
}

type CodeExampleRepository struct {
	CrudRepository[model.CodeExample]
}

func NewCodeExampleRepository(db *gorm.DB) *CodeExampleRepository {
	return &CodeExampleRepository{CrudRepository[model.CodeExample]{DB: db}}
}

func (r *CodeExampleRepository) ListByTopic(ctx context.Context, topicID uint) ([]model.CodeExample, error) {
	var list []model.CodeExample
	err := r.DB.WithContext(ctx).Where("topic_id = ?", topicID).Order("id ASC").Find(&list).Error
	return list, err
}

type ActivityRepository struct {
	CrudRepository[model.Activity]
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{CrudRepository[model.Activity]{DB: db}}
}

func (r *ActivityRepository) ListByLesson(ctx context.Context, lessonID uint) ([]model.Activity, error) {
	var list []model.Activity
	err := r.DB.WithContext(ctx).Where("lesson_id = ?", lessonID).Order("id ASC").Find(&list).Error
	return list, err
}
