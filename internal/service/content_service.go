package service

import (
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/repository"
	"aura_edu_backend/internal/util"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ContentService struct {
	CourseRepo      *repository.CourseRepository
	LessonRepo      *repository.LessonRepository
	TopicRepo       *repository.TopicRepository
	CodeExampleRepo *repository.CodeExampleRepository
	ActivityRepo    *repository.ActivityRepository
}

func NewContentService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	topicRepo *repository.TopicRepository,
	codeExampleRepo *repository.CodeExampleRepository,
	activityRepo *repository.ActivityRepository,
) *ContentService {
	return &ContentService{
		CourseRepo:      courseRepo,
		LessonRepo:      lessonRepo,
		TopicRepo:       topicRepo,
		CodeExampleRepo: codeExampleRepo,
		ActivityRepo:    activityRepo,
	}
}

// notFound 将 gorm 的记录不存在错误替换为业务错误
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

// ---- courses ----

func (s *ContentService) ListCourses(ctx context.Context, publishedOnly bool, search string, page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.List(ctx, publishedOnly, search, page, limit)
}

// GetCourse 返回课程及其课时目录，学生只能看到已发布课程
func (s *ContentService) GetCourse(ctx context.Context, id uint, publishedOnly bool) (*model.Course, error) {
	course, err := s.CourseRepo.FindWithLessons(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	if publishedOnly && !course.Published {
		return nil, util.ErrCourseNotFound
	}
	return course, nil
}

func (s *ContentService) CreateCourse(ctx context.Context, course *model.Course) error {
	if course.Difficulty == "" {
		course.Difficulty = model.Beginner
	}
	return s.CourseRepo.Create(ctx, course)
}

func (s *ContentService) UpdateCourse(ctx context.Context, id uint, input *model.Course) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	course.Title = input.Title
	course.Description = input.Description
	if input.Difficulty != "" {
		course.Difficulty = input.Difficulty
	}
	course.Published = input.Published
	course.Order = input.Order
	if err := s.CourseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *ContentService) DeleteCourse(ctx context.Context, id uint) error {
	return notFound(s.CourseRepo.Delete(ctx, id), util.ErrCourseNotFound)
}

// ---- lessons ----

func (s *ContentService) ListLessons(ctx context.Context, courseID uint) ([]model.Lesson, error) {
	return s.LessonRepo.ListBy(ctx, "course_id", courseID)
}

func (s *ContentService) GetLesson(ctx context.Context, id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindDetail(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrLessonNotFound)
	}
	return lesson, nil
}

func (s *ContentService) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	if _, err := s.CourseRepo.FindByID(ctx, lesson.CourseID); err != nil {
		return notFound(err, util.ErrCourseNotFound)
	}
	return s.LessonRepo.Create(ctx, lesson)
}

func (s *ContentService) UpdateLesson(ctx context.Context, id uint, input *model.Lesson) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrLessonNotFound)
	}
	lesson.Title = input.Title
	lesson.Content = input.Content
	lesson.Order = input.Order
	if err := s.LessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *ContentService) DeleteLesson(ctx context.Context, id uint) error {
	return notFound(s.LessonRepo.Delete(ctx, id), util.ErrLessonNotFound)
}

// ---- topics ----

func (s *ContentService) ListTopics(ctx context.Context, lessonID uint) ([]model.Topic, error) {
	return s.TopicRepo.ListBy(ctx, "lesson_id", lessonID)
}

func (s *ContentService) GetTopic(ctx context.Context, id uint) (*model.Topic, error) {
	topic, err := s.TopicRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrTopicNotFound)
	}
	examples, err := s.CodeExampleRepo.ListByTopic(ctx, id)
	if err != nil {
		return nil, err
	}
	topic.CodeExamples = examples
	return topic, nil
}

func (s *ContentService) CreateTopic(ctx context.Context, topic *model.Topic) error {
	if _, err := s.LessonRepo.FindByID(ctx, topic.LessonID); err != nil {
		return notFound(err, util.ErrLessonNotFound)
	}
	return s.TopicRepo.Create(ctx, topic)
}

func (s *ContentService) UpdateTopic(ctx context.Context, id uint, input *model.Topic) (*model.Topic, error) {
	topic, err := s.TopicRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrTopicNotFound)
	}
	topic.Title = input.Title
	topic.Content = input.Content
	topic.Order = input.Order
	if err := s.TopicRepo.Update(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *ContentService) DeleteTopic(ctx context.Context, id uint) error {
	return notFound(s.TopicRepo.Delete(ctx, id), util.ErrTopicNotFound)
}

// ---- code examples ----

func (s *ContentService) CreateCodeExample(ctx context.Context, example *model.CodeExample) error {
	if _, err := s.TopicRepo.FindByID(ctx, example.TopicID); err != nil {
		return notFound(err, util.ErrTopicNotFound)
	}
	if example.Language == "" {
		example.Language = "html"
	}
	return s.CodeExampleRepo.Create(ctx, example)
}

func (s *ContentService) UpdateCodeExample(ctx context.Context, id uint, input *model.CodeExample) (*model.CodeExample, error) {
	example, err := s.CodeExampleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrCodeExampleNotFound)
	}
	example.Title = input.Title
	example.Code = input.Code
	example.Explanation = input.Explanation
	if input.Language != "" {
		example.Language = input.Language
	}
	if err := s.CodeExampleRepo.Update(ctx, example); err != nil {
		return nil, err
	}
	return example, nil
}

func (s *ContentService) DeleteCodeExample(ctx context.Context, id uint) error {
	return notFound(s.CodeExampleRepo.Delete(ctx, id), util.ErrCodeExampleNotFound)
}

// ---- activities ----

func (s *ContentService) ListActivities(ctx context.Context, lessonID uint) ([]model.Activity, error) {
	return s.ActivityRepo.ListByLesson(ctx, lessonID)
}

func (s *ContentService) CreateActivity(ctx context.Context, activity *model.Activity) error {
	if _, err := s.LessonRepo.FindByID(ctx, activity.LessonID); err != nil {
		return notFound(err, util.ErrLessonNotFound)
	}
	return s.ActivityRepo.Create(ctx, activity)
}

func (s *ContentService) UpdateActivity(ctx context.Context, id uint, input *model.Activity) (*model.Activity, error) {
	activity, err := s.ActivityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrActivityNotFound)
	}
	activity.Title = input.Title
	activity.Instructions = input.Instructions
	activity.StarterCode = input.StarterCode
	activity.ExpectedHTML = input.ExpectedHTML
	activity.PassThreshold = input.PassThreshold
	activity.XP = input.XP
	if err := s.ActivityRepo.Update(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *ContentService) DeleteActivity(ctx context.Context, id uint) error {
	return notFound(s.ActivityRepo.Delete(ctx, id), util.ErrActivityNotFound)
}
