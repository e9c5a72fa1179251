package services

import (
	"encoding/json"
	"fmt"
	"os"
)

// EmotionCategory 情绪类别词表
type EmotionCategory struct {
	Name     string   `json:"name"`
	Polarity string   `json:"polarity"` // positive, negative, neutral
	Keywords []string `json:"keywords"`
}

// ConcernCategory 关注点类别词表
type ConcernCategory struct {
	Type     string   `json:"type"`
	Severity string   `json:"severity"`
	Keywords []string `json:"keywords"`
}

// ThemeCategory 主题类别词表
type ThemeCategory struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Lexicon 情绪分析词典，纯数据，可通过JSON文件替换
type Lexicon struct {
	Emotions           []EmotionCategory `json:"emotions"`
	Intensifiers       []string          `json:"intensifiers"`
	Diminishers        []string          `json:"diminishers"`
	Themes             []ThemeCategory   `json:"themes"`
	Concerns           []ConcernCategory `json:"concerns"`
	CopingMechanisms   []string          `json:"copingMechanisms"`
	PositiveIndicators []string          `json:"positiveIndicators"`
}

// LoadLexicon 从JSON文件加载词典，path为空时返回内置词典
func LoadLexicon(path string) (*Lexicon, error) {
	if path == "" {
		return DefaultLexicon(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取词典文件失败: %v", err)
	}

	var lex Lexicon
	if err := json.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("解析词典文件失败: %v", err)
	}
	return &lex, nil
}

// DefaultLexicon 内置默认词典
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Emotions: []EmotionCategory{
			{Name: "joy", Polarity: "positive", Keywords: []string{
				"happy", "joyful", "delighted", "cheerful", "excited", "wonderful", "amazing", "fantastic",
			}},
			{Name: "gratitude", Polarity: "positive", Keywords: []string{
				"grateful", "thankful", "thank you", "appreciate", "blessed", "lucky to have",
			}},
			{Name: "calm", Polarity: "positive", Keywords: []string{
				"calm", "peaceful", "relaxed", "at ease", "serene", "content",
			}},
			{Name: "hope", Polarity: "positive", Keywords: []string{
				"hopeful", "optimistic", "looking forward", "motivated", "inspired",
			}},
			{Name: "sadness", Polarity: "negative", Keywords: []string{
				"sad", "crying", "tears", "heartbroken", "miserable", "unhappy", "grief",
			}},
			{Name: "anxiety", Polarity: "negative", Keywords: []string{
				"anxious", "worried", "nervous", "panic", "overwhelmed", "on edge", "restless", "uneasy",
			}},
			{Name: "anger", Polarity: "negative", Keywords: []string{
				"angry", "furious", "frustrated", "irritated", "annoyed", "resentful", "fed up",
			}},
			{Name: "fear", Polarity: "negative", Keywords: []string{
				"afraid", "scared", "terrified", "frightened", "dread",
			}},
			{Name: "loneliness", Polarity: "negative", Keywords: []string{
				"lonely", "isolated", "left out", "no one understands", "by myself",
			}},
			{Name: "shame", Polarity: "negative", Keywords: []string{
				"ashamed", "guilty", "embarrassed", "worthless", "like a failure",
			}},
			{Name: "surprise", Polarity: "neutral", Keywords: []string{
				"surprised", "unexpected", "shocked", "out of nowhere",
			}},
		},
		Intensifiers: []string{
			"very", "so", "extremely", "really", "incredibly", "totally", "absolutely", "completely", "deeply",
		},
		Diminishers: []string{
			"slightly", "a bit", "a little", "somewhat", "kind of", "sort of", "barely", "mildly",
		},
		Themes: []ThemeCategory{
			{Name: "work", Keywords: []string{"job", "work", "boss", "office", "deadline", "interview", "coworker", "meeting"}},
			{Name: "relationships", Keywords: []string{"friend", "family", "partner", "mother", "father", "relationship", "boyfriend", "girlfriend"}},
			{Name: "health", Keywords: []string{"sick", "doctor", "sleep", "tired", "pain", "exercise", "headache"}},
			{Name: "school", Keywords: []string{"exam", "study", "class", "homework", "grades", "professor"}},
			{Name: "finances", Keywords: []string{"money", "rent", "bills", "debt", "afford", "salary"}},
			{Name: "self_growth", Keywords: []string{"goal", "habit", "journal", "therapy", "progress", "routine"}},
		},
		Concerns: []ConcernCategory{
			{Type: "anxiety", Severity: "moderate", Keywords: []string{
				"panic attack", "can't stop worrying", "racing thoughts", "constantly anxious",
			}},
			{Type: "depression", Severity: "high", Keywords: []string{
				"empty inside", "no energy", "can't get out of bed", "lost interest", "numb",
			}},
			{Type: "stress", Severity: "moderate", Keywords: []string{
				"burned out", "too much pressure", "exhausted", "stretched thin", "breaking point",
			}},
			{Type: "isolation", Severity: "moderate", Keywords: []string{
				"no one to talk to", "all alone", "nobody cares", "cut off from everyone",
			}},
			{Type: "crisis", Severity: "critical", Keywords: []string{
				"kill myself", "end my life", "suicide", "want to die", "hurt myself", "self-harm",
			}},
		},
		CopingMechanisms: []string{
			"talked to", "went for a walk", "deep breath", "meditation", "exercised", "journaling",
			"therapy", "listened to music", "took a break", "reached out",
		},
		PositiveIndicators: []string{
			"proud of myself", "made progress", "small win", "feeling better", "managed to",
			"accomplished", "getting better", "took care of myself",
		},
	}
}
