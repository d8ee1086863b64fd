// internal/pkg/notify/notify_test.go
package notify

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	recipient string
	kind      Kind
	message   string
}

type recorder struct {
	calls []recorded
}

func (r *recorder) Notify(_ context.Context, recipient string, kind Kind, message string) {
	r.calls = append(r.calls, recorded{recipient, kind, message})
}

func TestLogNotifierLevels(t *testing.T) {
	log, hook := logrustest.NewNullLogger()
	n := NewLogNotifier(log)
	ctx := context.Background()

	n.Notify(ctx, "user:7", KindError, "save failed")
	n.Notify(ctx, "session:abc", KindSuccess, "item added")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, "save failed", entries[0].Message)
	assert.Equal(t, "user:7", entries[0].Data["recipient"])

	assert.Equal(t, logrus.InfoLevel, entries[1].Level)
	assert.Equal(t, KindSuccess, entries[1].Data["kind"])
}

func TestMultiFansOut(t *testing.T) {
	first := &recorder{}
	second := &recorder{}

	Multi{first, second}.Notify(context.Background(), "user:7", KindInfo, "hello")

	require.Len(t, first.calls, 1)
	require.Len(t, second.calls, 1)
	assert.Equal(t, first.calls[0], second.calls[0])
	assert.Equal(t, "user:7", first.calls[0].recipient)
}

func TestChannelNaming(t *testing.T) {
	assert.Equal(t, "notify:user:7", Channel("user:7"))
	assert.Equal(t, "notify:session:abc", Channel("session:abc"))
}
