package nats

import (
	"context"
	"time"

	"walletwatch/api/internal/config"
	"walletwatch/api/internal/logger"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const streamName = "alerts"

type NatsInfra struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	subject string
	l       logger.Logger
}

// Init connects to NATS when servers are configured. Without servers the
// returned publisher drops every event.
func Init(config *config.Config, log logger.Logger) *NatsInfra {
	n := &NatsInfra{subject: config.Nats.AlertSubject, l: log}
	if config.Nats.Servers == "" {
		log.Info("nats servers not set, alert events disabled", logger.LS_NATS, false)
		return n
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	nc, err := nats.Connect(config.Nats.Servers,
		nats.MaxReconnects(100),
		nats.ReconnectWait(3*time.Second),
		nats.DisconnectHandler(func(nc *nats.Conn) {
			log.TemplNatsInfo("disconnected", nc.ConnectedUrl())
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.TemplNatsInfo("reconnected", nc.ConnectedUrl())
		}))
	if err != nil {
		log.TemplNatsError("connect failed", config.Nats.Servers, err)
		panic("NATS: connect failed: " + err.Error())
	}

	js, err := jetstream.New(nc)
	if err != nil {
		panic(err)
	}

	if _, err := InitAlertsStream(ctx, js, n.subject); err != nil {
		panic("NATS: create stream: " + err.Error())
	}

	log.TemplNatsInfo("connected", nc.ConnectedUrl())

	n.nc, n.js = nc, js
	return n
}

func InitAlertsStream(ctx context.Context, js jetstream.JetStream, subject string) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       streamName,
		Subjects:   []string{subject},
		Duplicates: 2 * time.Minute,
	})
}

func (n *NatsInfra) Enabled() bool {
	return n != nil && n.js != nil
}

func (n *NatsInfra) Close() {
	if n.Enabled() {
		n.nc.Drain()
	}
}
