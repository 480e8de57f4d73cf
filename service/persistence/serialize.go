package persistence

import (
	"encoding/json"

	"github.com/tmc/langchaingo/llms"
)

// storedTurn 聊天消息的持久化形态
type storedTurn struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func marshalHistory(history []llms.ChatMessage) (json.RawMessage, error) {
	turns := make([]storedTurn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, storedTurn{
			Type:    string(msg.GetType()),
			Content: msg.GetContent(),
		})
	}
	return json.Marshal(turns)
}

// unmarshalHistory 反序列化聊天记录，未知角色按用户消息处理
func unmarshalHistory(data json.RawMessage) ([]llms.ChatMessage, error) {
	var turns []storedTurn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, err
	}

	history := make([]llms.ChatMessage, 0, len(turns))
	for _, turn := range turns {
		switch turn.Type {
		case string(llms.ChatMessageTypeAI):
			history = append(history, llms.AIChatMessage{Content: turn.Content})
		default:
			history = append(history, llms.HumanChatMessage{Content: turn.Content})
		}
	}
	return history, nil
}
