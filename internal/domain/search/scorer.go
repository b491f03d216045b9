package search

import (
	"strings"

	"github.com/xiebiao/library/internal/domain/book"
)

// 相关度权重表
// 设计说明:
// 1. 书名命中权重最高,作者次之,简介/标签兜底
// 2. 有可借副本的书整体加2分(每本书只加一次,与词数无关)
// 3. 权重是启发式整数,不是概率——只用于同一查询内的相对排序
const (
	weightTitle     = 10 // 检索词命中书名
	weightAuthor    = 8  // 检索词命中作者
	weightBody      = 3  // 检索词命中简介/标签
	weightAvailable = 2  // 有可借副本(每本书一次)

	minTermLength = 3  // 短于3个字符的检索词丢弃
	maxResults    = 20 // 最多返回20条
)

// NormalizeTerms 检索词归一化
// 小写化、按空白切分、丢弃长度<3的词
// 返回空切片表示"没有有效检索词"(检索结果为空集,不是错误)
func NormalizeTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minTermLength {
			terms = append(terms, f)
		}
	}
	return terms
}

// ScoreBook 计算一本书对一组检索词的相关度得分
// 逐词累加: 书名子串+10,作者子串+8,简介/标签子串+3;
// 最后若有可借副本,整体+2
func ScoreBook(b *book.Book, terms []string) int {
	title := strings.ToLower(b.Title)
	author := strings.ToLower(b.Author)
	body := strings.ToLower(b.Description + " " + b.Tags)

	score := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += weightTitle
		}
		if strings.Contains(author, term) {
			score += weightAuthor
		}
		if strings.Contains(body, term) {
			score += weightBody
		}
	}

	if b.IsAvailable() {
		score += weightAvailable
	}

	return score
}
