package nats

import (
	"context"
	"fmt"
	"time"

	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/logger"
	"walletwatch/pkg/utils"

	"github.com/nats-io/nats.go/jetstream"
)

// MsgID is stable for one firing so a retried publish is dropped by the stream.
func MsgID(alertID uint, at time.Time) string {
	return fmt.Sprintf("alert-%d-%d", alertID, at.Unix())
}

// Publish sends a fired alert to the alerts stream. It is a no-op when NATS is
// not configured.
func (n *NatsInfra) Publish(ctx context.Context, event domain.AlertEvent) error {
	if !n.Enabled() {
		return nil
	}

	if event.EventID == "" {
		event.EventID = MsgID(event.AlertID, event.TriggeredAt)
	}

	ack, err := n.js.Publish(ctx, n.subject, utils.MustMarshal(event), jetstream.WithMsgID(event.EventID))
	if err != nil {
		n.l.TemplNatsError("publish alert "+event.EventID, n.nc.ConnectedUrl(), err)
		return fmt.Errorf("publish alert %d: %w", event.AlertID, err)
	}

	if ack.Duplicate {
		n.l.Debug("duplicate alert event", "event_id", event.EventID, "stream", logger.LS_NATS.ToString())
	}
	return nil
}
