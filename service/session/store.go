package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
)

// Session 单个文档会话：抽取文本、摘要与聊天记录
// 字段读写由mu保护；跨多次读写的复合变更（如一轮问答）由opMu串行化，
// 保证同一会话同一时刻只有一个变更在途
type Session struct {
	ID       string
	Filename string

	opMu sync.Mutex

	mu      sync.Mutex
	text    string
	summary string
	history []llms.ChatMessage
}

func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

func (s *Session) SetSummary(summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
}

// HistorySnapshot 返回聊天记录副本，永不为nil
func (s *Session) HistorySnapshot() []llms.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]llms.ChatMessage, len(s.history))
	copy(snapshot, s.history)
	return snapshot
}

func (s *Session) SetHistory(history []llms.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if history == nil {
		history = []llms.ChatMessage{}
	}
	s.history = history
}

func (s *Session) AppendTurns(turns ...llms.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, turns...)
}

func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Lock 串行化针对该会话的复合变更（如问答的读取-调用-追加流程）
// 持有期间仍可调用字段访问方法
func (s *Session) Lock() {
	s.opMu.Lock()
}

func (s *Session) Unlock() {
	s.opMu.Unlock()
}

// Registry 以会话ID为键的会话注册表
// 上传文档时创建新会话并切换活动指针，旧会话保留可读
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	activeID string
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Reset 为新上传的文档创建会话并置为活动会话，返回新会话
func (r *Registry) Reset(filename, text string) *Session {
	s := &Session{
		ID:       uuid.New().String(),
		Filename: filename,
		text:     text,
		history:  []llms.ChatMessage{},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	r.activeID = s.ID
	return s
}

// Active 返回当前活动会话，尚未上传文档时返回false
func (r *Registry) Active() (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[r.activeID]
	return s, ok
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}
