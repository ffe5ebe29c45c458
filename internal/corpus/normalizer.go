package corpus

import "strings"

// AliasTable lists the accepted column name fragments for the question and
// answer columns of a source, in priority order.
type AliasTable struct {
	Question []string
	Answer   []string
}

// DefaultAliases covers the column names of the known sources.
var DefaultAliases = AliasTable{
	Question: []string{"question", "short_question", "query", "input", "text", "query_text"},
	Answer:   []string{"answer", "short_answer", "response", "output", "label", "diagnosis"},
}

// Resolution records which columns were chosen for a source.
type Resolution struct {
	QuestionColumn string `json:"question_column" yaml:"question_column"`
	AnswerColumn   string `json:"answer_column" yaml:"answer_column"`
	questionIndex  int
	answerIndex    int
}

// Resolve picks the question and answer columns. Columns are scanned in
// declaration order and the first whose lowercased name contains any alias
// wins. A side without a match falls back to position: column 0 for the
// question, column 1 for the answer. ok is false when a side stays
// unresolved.
func (a AliasTable) Resolve(columns []string) (res Resolution, ok bool) {
	res.questionIndex, res.answerIndex = -1, -1
	for i, col := range columns {
		lower := strings.ToLower(col)
		if res.questionIndex < 0 && containsAny(lower, a.Question) {
			res.questionIndex = i
		}
		if res.answerIndex < 0 && containsAny(lower, a.Answer) {
			res.answerIndex = i
		}
	}

	if res.questionIndex < 0 && len(columns) > 0 {
		res.questionIndex = 0
	}
	if res.answerIndex < 0 && len(columns) > 1 {
		res.answerIndex = 1
	}
	if res.questionIndex < 0 || res.answerIndex < 0 {
		return res, false
	}

	res.QuestionColumn = columns[res.questionIndex]
	res.AnswerColumn = columns[res.answerIndex]
	return res, true
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

// Normalize maps the rows of t onto canonical records tagged with source.
// Rows whose question or answer is blank are dropped.
func (a AliasTable) Normalize(t Table, source string) ([]Record, Resolution) {
	res, ok := a.Resolve(t.Columns)
	if !ok {
		return nil, res
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		q := Cell(row, res.questionIndex)
		ans := Cell(row, res.answerIndex)
		if strings.TrimSpace(q) == "" || strings.TrimSpace(ans) == "" {
			continue
		}
		records = append(records, Record{Question: q, Answer: ans, Source: source})
	}
	return records, res
}

// Normalize maps t with the default aliases.
func Normalize(t Table, source string) ([]Record, Resolution) {
	return DefaultAliases.Normalize(t, source)
}
