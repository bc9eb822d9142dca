package service

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type AuraBotPromptFile struct {
	AuraBot AuraBotPrompts `yaml:"aurabot"`
}

type AuraBotPrompts struct {
	SystemPrompt    string              `yaml:"system_prompt"`
	KeyPrinciples   []string            `yaml:"key_principles"`
	Context         AuraBotContextBlock `yaml:"context"`
	HistoryTurns    int                 `yaml:"history_turns"`
	MaxContextChars int                 `yaml:"max_context_chars"`
}

// AuraBotContextBlock 中的模板各含一个 %s 占位符
type AuraBotContextBlock struct {
	HTML         string `yaml:"html"`
	Instructions string `yaml:"instructions"`
	Feedback     string `yaml:"feedback"`
}

func DefaultAuraBotPrompts() *AuraBotPrompts {
	return &AuraBotPrompts{
		SystemPrompt: "You are AuraBot, a friendly tutor inside an HTML learning platform.",
		Context: AuraBotContextBlock{
			HTML:         "The learner's current HTML:\n```html\n%s\n```",
			Instructions: "The activity instructions:\n%s",
			Feedback:     "The latest automatic feedback on their submission:\n%s",
		},
		HistoryTurns:    6,
		MaxContextChars: 6000,
	}
}

// LoadAuraBotPrompts 读取提示词文件，缺失字段使用默认值
func LoadAuraBotPrompts(path string) (*AuraBotPrompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt file: %w", err)
	}

	var file AuraBotPromptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse prompt file %s: %w", path, err)
	}

	p := file.AuraBot
	def := DefaultAuraBotPrompts()
	if strings.TrimSpace(p.SystemPrompt) == "" {
		p.SystemPrompt = def.SystemPrompt
	}
	if p.Context.HTML == "" {
		p.Context.HTML = def.Context.HTML
	}
	if p.Context.Instructions == "" {
		p.Context.Instructions = def.Context.Instructions
	}
	if p.Context.Feedback == "" {
		p.Context.Feedback = def.Context.Feedback
	}
	if p.HistoryTurns <= 0 {
		p.HistoryTurns = def.HistoryTurns
	}
	if p.MaxContextChars <= 0 {
		p.MaxContextChars = def.MaxContextChars
	}
	return &p, nil
}

func (p *AuraBotPrompts) System() string {
	if len(p.KeyPrinciples) == 0 {
		return strings.TrimSpace(p.SystemPrompt)
	}
	var b strings.Builder
	b.WriteString(strings.TrimSpace(p.SystemPrompt))
	b.WriteString("\n\nKey principles:")
	for _, kp := range p.KeyPrinciples {
		b.WriteString("\n- ")
		b.WriteString(kp)
	}
	return b.String()
}

// UserMessage 将可选的上下文段落拼接在问题之前
func (p *AuraBotPrompts) UserMessage(question, html, instructions, feedback string) string {
	var sections []string
	add := func(tmpl, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		if r := []rune(value); p.MaxContextChars > 0 && len(r) > p.MaxContextChars {
			value = string(r[:p.MaxContextChars]) + "\n..."
		}
		sections = append(sections, strings.TrimSpace(fmt.Sprintf(tmpl, value)))
	}
	add(p.Context.Instructions, instructions)
	add(p.Context.HTML, html)
	add(p.Context.Feedback, feedback)

	sections = append(sections, "Question: "+strings.TrimSpace(question))
	return strings.Join(sections, "\n\n")
}
