// 手动初始化脚本：创建管理员账号并导入示例课程
//
// 注册接口只能创建学生，首个管理员需要用此脚本创建。
//
// 用法: go run scripts/seed.go -admin-email admin@example.com -admin-password secret123 -course scripts/demo_course.yaml

package main

import (
	"aura_edu_backend/internal/config"
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/repository"
	"aura_edu_backend/internal/service"
	"aura_edu_backend/internal/util"
	"aura_edu_backend/pkg/database"
	"aura_edu_backend/pkg/logger"
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Course struct {
		Title       string           `yaml:"title"`
		Description string           `yaml:"description"`
		Difficulty  model.Difficulty `yaml:"difficulty"`
		Lessons     []struct {
			Title   string `yaml:"title"`
			Content string `yaml:"content"`
			Topics  []struct {
				Title    string `yaml:"title"`
				Content  string `yaml:"content"`
				Examples []struct {
					Title       string `yaml:"title"`
					Code        string `yaml:"code"`
					Explanation string `yaml:"explanation"`
				} `yaml:"examples"`
			} `yaml:"topics"`
			Activities []struct {
				Title         string `yaml:"title"`
				Instructions  string `yaml:"instructions"`
				StarterCode   string `yaml:"starter_code"`
				ExpectedHTML  string `yaml:"expected_html"`
				PassThreshold int    `yaml:"pass_threshold"`
				XP            int    `yaml:"xp"`
			} `yaml:"activities"`
		} `yaml:"lessons"`
	} `yaml:"course"`
}

func main() {
	adminEmail := flag.String("admin-email", "", "管理员邮箱")
	adminPassword := flag.String("admin-password", "", "管理员密码")
	coursePath := flag.String("course", "", "示例课程 YAML 文件")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	ctx := context.Background()

	if *adminEmail != "" {
		auth := service.NewAuthService(repository.NewUserRepository(db), cfg)
		admin := &model.User{Name: "Admin", Email: *adminEmail, Password: *adminPassword, Role: model.Admin}
		switch err := auth.Register(ctx, admin); {
		case errors.Is(err, util.ErrEmailRegistered):
			log.Printf("管理员 %s 已存在，跳过", *adminEmail)
		case err != nil:
			log.Fatalf("创建管理员失败: %v", err)
		default:
			log.Printf("已创建管理员 %s", admin.Email)
		}
	}

	if *coursePath != "" {
		content := service.NewContentService(
			repository.NewCourseRepository(db),
			repository.NewLessonRepository(db),
			repository.NewTopicRepository(db),
			repository.NewCodeExampleRepository(db),
			repository.NewActivityRepository(db),
		)
		if err := importCourse(ctx, content, *coursePath); err != nil {
			log.Fatalf("导入课程失败: %v", err)
		}
	}

	log.Println("完成！")
}

func importCourse(ctx context.Context, content *service.ContentService, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}

	course := &model.Course{
		Title:       f.Course.Title,
		Description: f.Course.Description,
		Difficulty:  f.Course.Difficulty,
		Published:   true,
	}
	if err := content.CreateCourse(ctx, course); err != nil {
		return err
	}

	for i, l := range f.Course.Lessons {
		lesson := &model.Lesson{CourseID: course.ID, Title: l.Title, Content: l.Content, Order: i + 1}
		if err := content.CreateLesson(ctx, lesson); err != nil {
			return err
		}
		for j, t := range l.Topics {
			topic := &model.Topic{LessonID: lesson.ID, Title: t.Title, Content: t.Content, Order: j + 1}
			if err := content.CreateTopic(ctx, topic); err != nil {
				return err
			}
			for _, e := range t.Examples {
				example := &model.CodeExample{TopicID: topic.ID, Title: e.Title, Language: "html", Code: e.Code, Explanation: e.Explanation}
				if err := content.CreateCodeExample(ctx, example); err != nil {
					return err
				}
			}
		}
		for _, a := range l.Activities {
			activity := &model.Activity{
				LessonID:      lesson.ID,
				Title:         a.Title,
				Instructions:  a.Instructions,
				StarterCode:   a.StarterCode,
				ExpectedHTML:  a.ExpectedHTML,
				PassThreshold: a.PassThreshold,
				XP:            a.XP,
			}
			if err := content.CreateActivity(ctx, activity); err != nil {
				return err
			}
		}
	}

	log.Printf("已导入课程 %q (%d 个课时)", course.Title, len(f.Course.Lessons))
	return nil
}
