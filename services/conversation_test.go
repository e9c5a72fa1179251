package services

import (
	"context"
	"testing"

	"IntrovirghtGo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConversationService() *ConversationService {
	return NewConversationService(nil, NewCrisisDetector())
}

func TestRouteIntentCrisisHighestPriority(t *testing.T) {
	service := newTestConversationService()

	// 危机内容即使同时带着求助措辞也必须归为crisis_help
	intent, confidence := service.RouteIntent("I want to die, what should I do")

	assert.Equal(t, IntentCrisisHelp, intent)
	assert.InDelta(t, 0.9, confidence, 1e-9)
}

func TestRouteIntentCelebration(t *testing.T) {
	service := newTestConversationService()

	intent, confidence := service.RouteIntent("I got the job!!")

	assert.Equal(t, IntentCelebration, intent)
	assert.InDelta(t, 0.8, confidence, 1e-9)
}

func TestRouteIntentGuidanceBeforeSupport(t *testing.T) {
	service := newTestConversationService()

	// 同时命中guidance和support关键词时按优先级取guidance
	intent, confidence := service.RouteIntent("What should I do? I feel so stuck and sad")

	assert.Equal(t, IntentGuidance, intent)
	assert.InDelta(t, 0.7, confidence, 1e-9)
}

func TestRouteIntentSupport(t *testing.T) {
	service := newTestConversationService()

	intent, confidence := service.RouteIntent("I've been feeling really lonely lately")

	assert.Equal(t, IntentSupport, intent)
	assert.InDelta(t, 0.8, confidence, 1e-9)
}

func TestRouteIntentReflection(t *testing.T) {
	service := newTestConversationService()

	intent, confidence := service.RouteIntent("Looking back, this year changed me a lot")

	assert.Equal(t, IntentReflection, intent)
	assert.InDelta(t, 0.6, confidence, 1e-9)
}

func TestRouteIntentDefaultCasual(t *testing.T) {
	service := newTestConversationService()

	intent, confidence := service.RouteIntent("The weather was nice on my walk today")

	assert.Equal(t, IntentCasualChat, intent)
	assert.InDelta(t, 0.5, confidence, 1e-9)
}

func TestFallbackReplyLengthSelection(t *testing.T) {
	service := newTestConversationService()

	brief := service.FallbackReply(IntentSupport, "brief")
	moderate := service.FallbackReply(IntentSupport, "moderate")
	detailed := service.FallbackReply(IntentSupport, "detailed")

	assert.NotEmpty(t, brief)
	assert.Less(t, len(brief), len(moderate))
	assert.Less(t, len(moderate), len(detailed))
}

func TestFallbackReplyCrisisIntentNeverCasual(t *testing.T) {
	service := newTestConversationService()

	// 用户关闭危机干预且模型不可用时也必须拿到危机模板，而不是寒暄
	intent, _ := service.RouteIntent("I want to die")
	require.Equal(t, IntentCrisisHelp, intent)

	for _, length := range []string{"brief", "moderate", "detailed"} {
		reply := service.FallbackReply(intent, length)
		assert.Contains(t, service.templates[IntentCrisisHelp], reply)
		assert.Contains(t, reply, "988")
		assert.NotContains(t, service.templates[IntentCasualChat], reply)
	}
}

func TestFallbackReplyUnknownIntentUsesCasual(t *testing.T) {
	service := newTestConversationService()

	reply := service.FallbackReply(Intent("nonsense"), "brief")

	assert.Contains(t, service.templates[IntentCasualChat], reply)
}

func TestGenerateCompanionResponseFallsBackWithoutClient(t *testing.T) {
	service := newTestConversationService()
	prefs := models.DefaultPreferences("p1", "u1")

	outputChan, resultChan := service.GenerateCompanionResponse(context.Background(), "I feel sad", IntentSupport, "", prefs)

	var streamed string
	for chunk := range outputChan {
		streamed += chunk
	}
	result := <-resultChan
	service.Wait()

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, result.FullText, streamed)
	assert.Equal(t, service.FallbackReply(IntentSupport, prefs.ResponseLength), result.FullText)
}

func TestGenerateCompanionResponseExitsWhenContextCancelled(t *testing.T) {
	service := newTestConversationService()
	prefs := models.DefaultPreferences("p1", "u1")

	// 模拟客户端断开：没有任何人读取流式通道
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, resultChan := service.GenerateCompanionResponse(ctx, "I feel sad", IntentSupport, "", prefs)

	result := <-resultChan
	// 协程必须自行退出，否则优雅关闭时Wait永不返回
	service.Wait()

	assert.Equal(t, SourceFallback, result.Source)
	assert.NotEmpty(t, result.FullText)
}

func TestAdjustPreferencesClamped(t *testing.T) {
	service := newTestConversationService()

	prefs := models.DefaultPreferences("p1", "u1")
	prefs.Directness = 0.2
	service.AdjustPreferences(&prefs, models.FeedbackRequest{TooDirect: true})
	assert.InDelta(t, 0.0, prefs.Directness, 1e-9)

	prefs.Directness = 9.8
	service.AdjustPreferences(&prefs, models.FeedbackRequest{TooSoft: true})
	assert.InDelta(t, 10.0, prefs.Directness, 1e-9)

	prefs.Humor = 10
	service.AdjustPreferences(&prefs, models.FeedbackRequest{Helpful: true})
	assert.InDelta(t, 10.0, prefs.Humor, 1e-9)
}

func TestPreferencesCacheRoundTrip(t *testing.T) {
	service := newTestConversationService()
	prefs := models.DefaultPreferences("p1", "u1")

	_, ok := service.CachedPreferences("u1")
	require.False(t, ok)

	service.CachePreferences(prefs)
	cached, ok := service.CachedPreferences("u1")
	require.True(t, ok)
	assert.Equal(t, prefs.ID, cached.ID)

	// 反馈调整会使缓存失效
	service.AdjustPreferences(&prefs, models.FeedbackRequest{Helpful: true})
	_, ok = service.CachedPreferences("u1")
	assert.False(t, ok)
}
