package countdown

import (
	"encoding/json"
	"time"
)

type Subject struct {
	ID       string
	Name     string
	Duration time.Duration
}

func (s Subject) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Seconds  int    `json:"seconds"`
		Duration string `json:"duration"`
	}{
		ID:       s.ID,
		Name:     s.Name,
		Seconds:  int(s.Duration / time.Second),
		Duration: FormatTimer(s.Duration),
	})
}

var subjects = []Subject{
	{ID: "korean", Name: "국어", Duration: 80 * time.Minute},
	{ID: "math", Name: "수학", Duration: 100 * time.Minute},
	{ID: "english", Name: "영어", Duration: 70 * time.Minute},
	{ID: "history", Name: "한국사", Duration: 30 * time.Minute},
	{ID: "inquiry", Name: "탐구", Duration: 30 * time.Minute},
	{ID: "second-language", Name: "제2외국어/한문", Duration: 40 * time.Minute},
}

// Subjects returns the CSAT periods in exam order.
func Subjects() []Subject {
	return append([]Subject(nil), subjects...)
}
