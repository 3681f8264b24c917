package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTNotifier 把进度消息发布到 broker 的一个 topic，首次发送时才建立连接
type MQTTNotifier struct {
	topic  string
	opts   *mqtt.ClientOptions
	mu     sync.Mutex
	client mqtt.Client
}

func NewMQTTNotifier(broker, clientID, topic string) *MQTTNotifier {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(false)
	opts.SetKeepAlive(30 * time.Second)
	return &MQTTNotifier{topic: topic, opts: opts}
}

func (n *MQTTNotifier) connect() (mqtt.Client, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.client != nil && n.client.IsConnected() {
		return n.client, nil
	}
	c := mqtt.NewClient(n.opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	n.client = c
	return c, nil
}

func (n *MQTTNotifier) Notify(_ context.Context, message string) {
	c, err := n.connect()
	if err != nil {
		slog.Warn("mqtt connect failed", "topic", n.topic, "error", err)
		return
	}
	if token := c.Publish(n.topic, 0, false, message); token.Wait() && token.Error() != nil {
		slog.Warn("mqtt publish failed", "topic", n.topic, "error", token.Error())
	}
}

func (n *MQTTNotifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.client != nil && n.client.IsConnected() {
		n.client.Disconnect(250)
	}
	n.client = nil
}
