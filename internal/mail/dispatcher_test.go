package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	name  string
	err   error
	calls int
	last  Message
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Send(ctx context.Context, msg Message) error {
	f.calls++
	f.last = msg
	return f.err
}

func TestDispatchPrimarySucceeds(t *testing.T) {
	primary := &fakeChannel{name: "resend"}
	secondary := &fakeChannel{name: "smtp"}
	d := NewDispatcherWithChannels(primary, secondary, time.Second)

	out := d.Dispatch(context.Background(), "anna@example.com", "Brief", "treść")

	assert.True(t, out.Sent)
	assert.Equal(t, "resend", out.Channel)
	assert.NoError(t, out.Err)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, secondary.calls, "secondary must not run when primary delivered")
	assert.NotEmpty(t, out.DeliveryID)
}

func TestDispatchFallsBackToSecondaryOnce(t *testing.T) {
	primary := &fakeChannel{name: "resend", err: errors.New("resend status 500")}
	secondary := &fakeChannel{name: "smtp"}
	d := NewDispatcherWithChannels(primary, secondary, time.Second)

	out := d.Dispatch(context.Background(), "anna@example.com", "Brief", "treść")

	assert.True(t, out.Sent)
	assert.Equal(t, "smtp", out.Channel)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestDispatchSecondaryFailureDecidesResult(t *testing.T) {
	primary := &fakeChannel{name: "resend", err: errors.New("down")}
	secondary := &fakeChannel{name: "smtp", err: errors.New("auth failed")}
	d := NewDispatcherWithChannels(primary, secondary, time.Second)

	out := d.Dispatch(context.Background(), "anna@example.com", "Brief", "treść")

	assert.False(t, out.Sent)
	assert.Equal(t, "smtp", out.Channel)
	require.Error(t, out.Err)
	assert.Contains(t, out.Err.Error(), "auth failed")
	// Each channel is tried at most once, never retried.
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestDispatchSkipsMissingPrimary(t *testing.T) {
	secondary := &fakeChannel{name: "smtp"}
	d := NewDispatcherWithChannels(nil, secondary, time.Second)

	out := d.Dispatch(context.Background(), "anna@example.com", "Brief", "treść")

	assert.True(t, out.Sent)
	assert.Equal(t, "smtp", out.Channel)
}

func TestDispatchNoRecipientNoAttempt(t *testing.T) {
	primary := &fakeChannel{name: "resend"}
	secondary := &fakeChannel{name: "smtp"}
	d := NewDispatcherWithChannels(primary, secondary, time.Second)

	out := d.Dispatch(context.Background(), "", "Brief", "treść")

	assert.False(t, out.Sent)
	assert.ErrorIs(t, out.Err, ErrNoRecipient)
	assert.Zero(t, primary.calls)
	assert.Zero(t, secondary.calls)
	assert.NotEmpty(t, out.DeliveryID, "failed dispatches still carry an ID for the archive")
}

func TestDispatchNoChannelsConfigured(t *testing.T) {
	d := NewDispatcherWithChannels(nil, nil, time.Second)

	out := d.Dispatch(context.Background(), "anna@example.com", "Brief", "treść")

	assert.False(t, out.Sent)
	assert.ErrorIs(t, out.Err, ErrNoChannel)
}

func TestDispatchSubjectPrefix(t *testing.T) {
	primary := &fakeChannel{name: "resend"}
	d := NewDispatcherWithChannels(primary, nil, time.Second)
	d.subjectPrefix = "[ArchiBrief]"

	d.Dispatch(context.Background(), "anna@example.com", "Brief: Jan", "treść")

	assert.Equal(t, "[ArchiBrief] Brief: Jan", primary.last.Subject)
}
