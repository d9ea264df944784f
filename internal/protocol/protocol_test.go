package protocol_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcohefti/singlish-lab/internal/page"
	"github.com/marcohefti/singlish-lab/internal/page/pagetest"
	"github.com/marcohefti/singlish-lab/internal/protocol"
	"github.com/marcohefti/singlish-lab/internal/wait"
)

func adapter(f *pagetest.Fake) *page.Adapter {
	return page.NewAdapter(f, page.Config{OutputWait: 100 * time.Millisecond, Interval: 5 * time.Millisecond})
}

func TestTranslate_StepOrder(t *testing.T) {
	f := &pagetest.Fake{Translate: pagetest.Table(map[string]string{"mama vaeda karanavaa": "මම වැඩ කරනවා"})}

	res, err := protocol.Translate(context.Background(), adapter(f), "mama vaeda karanavaa", protocol.Options{})
	require.NoError(t, err)
	assert.Equal(t, "මම වැඩ කරනවා", res.Observed)
	assert.False(t, res.OutputTimedOut)
	// ClearInput, then SetInput's own clear-and-set, then a single read.
	assert.Equal(t, []string{"clear", "clear", "fill:mama vaeda karanavaa", "read"}, f.Calls())
}

func TestTranslate_IsIdempotentAcrossInvocations(t *testing.T) {
	f := &pagetest.Fake{Translate: pagetest.Table(map[string]string{"oyaata badaginidha?": "ඔයාට බඩගිනිද?"})}
	a := adapter(f)

	first, err := protocol.Translate(context.Background(), a, "oyaata badaginidha?", protocol.Options{})
	require.NoError(t, err)
	second, err := protocol.Translate(context.Background(), a, "oyaata badaginidha?", protocol.Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTranslate_TimeoutPropagates(t *testing.T) {
	f := &pagetest.Fake{}

	_, err := protocol.Translate(context.Background(), adapter(f), "", protocol.Options{})
	require.Error(t, err)
	assert.True(t, wait.IsTimeout(err))
	assert.NotContains(t, f.Calls(), "read")
}

func TestTranslate_EmptyOKAbsorbsTimeoutOnEmptyRegion(t *testing.T) {
	f := &pagetest.Fake{}

	res, err := protocol.Translate(context.Background(), adapter(f), "", protocol.Options{EmptyOK: true})
	require.NoError(t, err)
	assert.Equal(t, "", res.Observed)
	assert.True(t, res.OutputTimedOut)
}

func TestTranslate_StopsAtFirstError(t *testing.T) {
	boom := errors.New("target closed")
	f := &pagetest.Fake{FailFill: boom}

	_, err := protocol.Translate(context.Background(), adapter(f), "mama", protocol.Options{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"clear"}, f.Calls())
}

func TestTranslate_HonoursCancellationDuringSettle(t *testing.T) {
	f := &pagetest.Fake{Translate: pagetest.Table(nil)}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := protocol.Translate(ctx, adapter(f), "mama", protocol.Options{AfterClear: time.Minute})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
