package category

import (
	"sort"
	"strings"
)

// Suggestion 分类建议
// Confidence 是关键词命中次数,不是概率
type Suggestion struct {
	Category   string `json:"category"`
	Confidence int    `json:"confidence"`
}

// 分类关键词表
// 设计说明:
// 1. 表是有序的——同分时按表内声明顺序排先后,结果可复现
// 2. 匹配按子串进行,输入先小写化
type categoryRule struct {
	name     string
	keywords []string
}

var rules = []categoryRule{
	{"Fiction", []string{"novel", "story", "fiction", "tale"}},
	{"Science Fiction", []string{"sci-fi", "space", "future", "alien", "robot", "cyberpunk"}},
	{"Fantasy", []string{"fantasy", "magic", "wizard", "dragon", "elf", "kingdom"}},
	{"Mystery", []string{"mystery", "detective", "crime", "murder", "investigation"}},
	{"Thriller", []string{"thriller", "suspense", "danger", "conspiracy"}},
	{"Romance", []string{"romance", "love", "relationship", "passion"}},
	{"Biography", []string{"biography", "autobiography", "memoir", "life story"}},
	{"History", []string{"history", "historical", "war", "ancient", "medieval"}},
	{"Science", []string{"science", "physics", "biology", "chemistry", "research"}},
	{"Technology", []string{"technology", "computer", "programming", "software", "digital"}},
	{"Business", []string{"business", "management", "entrepreneur", "marketing", "finance"}},
	{"Self-Help", []string{"self-help", "motivation", "productivity", "success", "habit"}},
	{"Philosophy", []string{"philosophy", "philosophical", "ethics", "moral"}},
	{"Psychology", []string{"psychology", "mind", "behavior", "mental", "cognitive"}},
	{"Children", []string{"children", "kids", "young", "juvenile"}},
	{"Horror", []string{"horror", "scary", "ghost", "haunted", "terror"}},
}

const maxSuggestions = 3

// Suggest 依据书名、作者和简介给出最多3个分类建议
// 业务规则:
// 1. 书名、作者、简介拼接后小写化,每命中一个关键词(子串匹配)对应分类+1
// 2. 按命中数降序取前3,同分按表内顺序
// 3. 无任何命中时兜底返回 {General, 1}
func Suggest(title, author, description string) []Suggestion {
	text := strings.ToLower(title + " " + author + " " + description)

	suggestions := make([]Suggestion, 0, len(rules))
	for _, rule := range rules {
		hits := 0
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits > 0 {
			suggestions = append(suggestions, Suggestion{Category: rule.name, Confidence: hits})
		}
	}

	if len(suggestions) == 0 {
		return []Suggestion{{Category: "General", Confidence: 1}}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
