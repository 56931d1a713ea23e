package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Ключ маршрутизации событий модерации.
const ModerationRoutingKey = "product.moderated"

// ModerationQueue имя очереди уведомлений о решениях модерации.
const ModerationQueue = "notifications.moderation"

// GetNotificationQueues возвращает конфигурацию очередей уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ModerationQueue, RoutingKey: ModerationRoutingKey},
	}
}
