package conversation

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/tmc/langchaingo/llms"
)

const (
	// END 终止状态
	END = "__end__"

	nodeRespond = "respond"

	maxDocLengthForPrompt = 100000
	truncationMarker      = "\n... [document truncated] ..."
)

//go:embed prompts/system.txt
var systemPrompt string

// Chatter 对话图依赖的生成式客户端能力
type Chatter interface {
	Converse(ctx context.Context, messages []llms.MessageContent) (string, error)
}

// State 对话图的输入输出状态
type State struct {
	DocumentText string
	Question     string
	History      []llms.ChatMessage
	Answer       string
}

// NodeFunc 图节点，接收状态并返回变更后的新状态
type NodeFunc func(ctx context.Context, state State) (State, error)

// Graph 对话状态图，当前只有respond单节点
// 保留节点与边的结构以便扩展多步流程
type Graph struct {
	chatter Chatter
	nodes   map[string]NodeFunc
	edges   map[string]string
	entry   string
}

func NewGraph(chatter Chatter) *Graph {
	g := &Graph{
		chatter: chatter,
		nodes:   make(map[string]NodeFunc),
		edges:   make(map[string]string),
	}

	g.addNode(nodeRespond, g.respond)
	g.setEntryPoint(nodeRespond)
	g.addEdge(nodeRespond, END)

	return g
}

func (g *Graph) addNode(name string, fn NodeFunc) {
	g.nodes[name] = fn
}

func (g *Graph) setEntryPoint(name string) {
	g.entry = name
}

func (g *Graph) addEdge(from, to string) {
	g.edges[from] = to
}

// Invoke 从入口节点驱动状态图直至终止状态
// 任一节点出错时原样上抛，状态不做部分变更
func (g *Graph) Invoke(ctx context.Context, state State) (State, error) {
	current := g.entry
	for current != END {
		fn, ok := g.nodes[current]
		if !ok {
			return state, fmt.Errorf("unknown graph node: %s", current)
		}

		next, err := fn(ctx, state)
		if err != nil {
			return state, err
		}
		state = next

		current = g.edges[current]
	}
	return state, nil
}

// respond 组装模型输入并调用模型，返回带新一轮历史的状态
// 首轮将文档全文（截断后）嵌入系统指令；后续轮次只发送历史与问题，
// 文档不重发，依赖模型已在首轮见过全文（控制token消耗）
func (g *Graph) respond(ctx context.Context, state State) (State, error) {
	var messages []llms.MessageContent
	for _, msg := range state.History {
		messages = append(messages, llms.TextParts(messageRole(msg), msg.GetContent()))
	}

	if len(state.History) == 0 {
		instruction, err := formatSystemPrompt(state.DocumentText)
		if err != nil {
			return state, err
		}
		fullPrompt := instruction + "\n\nUser Question: " + state.Question
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, fullPrompt))
	} else {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, state.Question))
	}

	answer, err := g.chatter.Converse(ctx, messages)
	if err != nil {
		return state, err
	}

	newHistory := make([]llms.ChatMessage, 0, len(state.History)+2)
	newHistory = append(newHistory, state.History...)
	newHistory = append(newHistory,
		llms.HumanChatMessage{Content: state.Question},
		llms.AIChatMessage{Content: answer},
	)

	state.Answer = answer
	state.History = newHistory
	return state, nil
}

func formatSystemPrompt(documentText string) (string, error) {
	if len(documentText) > maxDocLengthForPrompt {
		documentText = documentText[:maxDocLengthForPrompt] + truncationMarker
	}

	tmpl, err := template.New("system").Parse(systemPrompt)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Document string }{Document: documentText}); err != nil {
		return "", fmt.Errorf("failed to execute template: %v", err)
	}
	return buf.String(), nil
}

func messageRole(msg llms.ChatMessage) llms.ChatMessageType {
	switch msg.GetType() {
	case llms.ChatMessageTypeAI:
		return llms.ChatMessageTypeAI
	case llms.ChatMessageTypeSystem:
		return llms.ChatMessageTypeSystem
	default:
		return llms.ChatMessageTypeHuman
	}
}
