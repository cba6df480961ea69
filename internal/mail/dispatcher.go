package mail

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"brief-service/internal/model"
	"brief-service/pkg/config"
	"brief-service/pkg/logger"
	"brief-service/prometheus"
)

// ErrNoRecipient is returned when the message has no destination address.
var ErrNoRecipient = errors.New("no recipient address")

// ErrNoChannel is returned when no delivery channel is configured.
var ErrNoChannel = errors.New("no delivery channel configured")

// Dispatcher coordinates report delivery over the configured channels:
// primary first, secondary only when the primary is missing or failed, each
// at most once. The last attempted channel decides the final result.
type Dispatcher struct {
	primary       Channel
	secondary     Channel
	subjectPrefix string
	timeout       time.Duration
}

// NewDispatcher builds the dispatcher from config. Either channel may be nil
// when unconfigured.
func NewDispatcher(cfg *config.MailConfig) *Dispatcher {
	var primary, secondary Channel
	if c := NewResendChannel(cfg); c != nil {
		primary = c
	}
	if c := NewSMTPChannel(cfg); c != nil {
		secondary = c
	}
	return &Dispatcher{
		primary:       primary,
		secondary:     secondary,
		subjectPrefix: cfg.SubjectPrefix,
		timeout:       cfg.Timeout,
	}
}

// NewDispatcherWithChannels wires explicit channels, bypassing config.
func NewDispatcherWithChannels(primary, secondary Channel, timeout time.Duration) *Dispatcher {
	return &Dispatcher{primary: primary, secondary: secondary, timeout: timeout}
}

// Outcome records one completed dispatch for the archive and the logs.
type Outcome struct {
	DeliveryID string
	Sent       bool
	Channel    string
	Err        error
}

// Dispatch sends the report text to the recipient. A missing address fails
// without attempting any channel. Delivery failure is reported, never
// escalated: acceptance of the submission does not depend on it.
func (d *Dispatcher) Dispatch(ctx context.Context, to, subject, body string) Outcome {
	out := Outcome{DeliveryID: model.NewDeliveryID()}
	log := logger.FromContext(ctx).With(zap.String("delivery_id", out.DeliveryID))

	if to == "" {
		out.Err = ErrNoRecipient
		log.Warn("[EMAIL] FAIL", zap.Error(out.Err))
		return out
	}
	if d.primary == nil && d.secondary == nil {
		out.Err = ErrNoChannel
		log.Warn("[EMAIL] FAIL", zap.Error(out.Err))
		return out
	}

	msg := Message{To: to, Subject: d.subjectPrefix + " " + subject, Body: body}
	if d.subjectPrefix == "" {
		msg.Subject = subject
	}

	for _, ch := range []Channel{d.primary, d.secondary} {
		if ch == nil {
			continue
		}
		err := d.send(ctx, ch, msg)
		if err == nil {
			prometheus.RecordDelivery(ch.Name(), "ok")
			out.Sent = true
			out.Channel = ch.Name()
			out.Err = nil
			log.Info("[EMAIL] OK", zap.String("channel", ch.Name()), zap.String("to", to))
			return out
		}
		prometheus.RecordDelivery(ch.Name(), "fail")
		out.Channel = ch.Name()
		out.Err = err
		log.Warn("[EMAIL] channel failed", zap.String("channel", ch.Name()), zap.Error(err))
	}

	log.Warn("[EMAIL] FAIL", zap.String("channel", out.Channel), zap.String("to", to), zap.Error(out.Err))
	return out
}

func (d *Dispatcher) send(ctx context.Context, ch Channel, msg Message) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return ch.Send(ctx, msg)
}
