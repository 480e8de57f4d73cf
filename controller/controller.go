package controller

import (
	"context"

	"doc-assistant-backend/service/conversation"
	"doc-assistant-backend/service/document"
	"doc-assistant-backend/service/llm"
	"doc-assistant-backend/service/persistence"
	"doc-assistant-backend/service/session"
)

// Generator 挑战出题与答案评估依赖的生成式能力
type Generator interface {
	GenerateChallenge(ctx context.Context, documentText string) ([]llm.ChallengeQuestion, error)
	EvaluateAnswer(ctx context.Context, documentText, question, answer string) (*llm.EvaluationResult, error)
}

// Controller HTTP处理器集合，依赖在启动时注入
type Controller struct {
	Registry  *session.Registry
	Ingestor  *document.Ingestor
	Graph     *conversation.Graph
	Generator Generator
	Store     persistence.Store
}

func New(registry *session.Registry, ingestor *document.Ingestor, graph *conversation.Graph, generator Generator, store persistence.Store) *Controller {
	return &Controller{
		Registry:  registry,
		Ingestor:  ingestor,
		Graph:     graph,
		Generator: generator,
		Store:     store,
	}
}

// activeDocument 返回当前活动会话，尚无可用文档时返回false
func (ctl *Controller) activeDocument() (*session.Session, bool) {
	s, ok := ctl.Registry.Active()
	if !ok || s.Text() == "" {
		return nil, false
	}
	return s, true
}
