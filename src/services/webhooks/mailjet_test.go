package webhooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandleLogsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewMailEvents(zap.New(core))

	n := h.Handle([]byte(`[
		{"event":"bounce","email":"a@x.com"},
		{"event":"open","email":"b@x.com"},
		{"event":"click","email":"c@x.com","url":"https://x.com"}
	]`))
	assert.Equal(t, 3, n)

	assert.Equal(t, 1, logs.FilterMessage("email bounced").Len())
	assert.Equal(t, 1, logs.FilterMessage("email opened").Len())
	assert.Equal(t, 3, logs.FilterMessage("mail event").Len())
	assert.Equal(t, zapcore.WarnLevel, logs.FilterMessage("email bounced").All()[0].Level)
}

func TestHandleIgnoresUnexpectedPayload(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "object", body: `{"event":"open"}`},
		{name: "missing event", body: `[{"email":"a@x.com"}]`},
		{name: "wrong type", body: `[{"event":5}]`},
		{name: "not json", body: `hello`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			h := NewMailEvents(zap.New(core))
			assert.Equal(t, 0, h.Handle([]byte(tc.body)))
			assert.Equal(t, 1, logs.FilterMessage("mail webhook received unexpected payload").Len())
			assert.Equal(t, 0, logs.FilterMessage("mail event").Len())
		})
	}
}
