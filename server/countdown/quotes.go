package countdown

import (
	"github.com/topi314/csat-counter/internal/xrand"
)

var motivationalQuotes = []string{
	"자, 오늘도 열심히 해봐요.",
	"오늘도 파이팅.",
	"꿈을 향해서 한 발자국씩.",
	"아니야, 할 수 있어요.",
	"봐요, 꼭 해낼거라고 말했죠.",
	"남은 시간까지 계속 달려봐요.",
	"오늘도 꿈과 한 발자국 가까워졌어요.",
	"이제 잠깐 쉬어가요. 잘 달려왔어요.",
}

// shown in place of a counter once its exam has started
var finishedQuotes = []string{
	"포기하지 말아요.",
	"열심히 했어요.",
	"정말 수고 많았어요.",
	"결과가 어떻든, 당신은 최고예요.",
	"새로운 시작을 응원해요.",
}

func MotivationalQuotes() []string {
	return append([]string(nil), motivationalQuotes...)
}

func FinishedQuotes() []string {
	return append([]string(nil), finishedQuotes...)
}

func RandomQuote() string {
	return xrand.Pick(motivationalQuotes)
}

func RandomFinishedQuote() string {
	return xrand.Pick(finishedQuotes)
}
