package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Типы событий в топике цен
const (
	EventPriceUpdated    = "price_updated"
	EventImportCompleted = "import_completed"
)

// PriceEvent — сообщение в Kafka о изменении цен каталога.
// Его читают витрина и синхронизатор с учетной системой.
type PriceEvent struct {
	Type             string    `json:"type"`
	ProductID        uint      `json:"product_id,omitempty"`
	ImportID         string    `json:"import_id,omitempty"`
	SupplierID       string    `json:"supplier_id,omitempty"`
	RecommendedPrice float64   `json:"recommended_price,omitempty"`
	ImportedCount    int       `json:"imported_count,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// PriceEventPublisher публикует ценовые события в Kafka
type PriceEventPublisher struct {
	writer *kafka.Writer
}

// NewPriceEventPublisher создает publisher для топика ценовых событий
func NewPriceEventPublisher(brokers []string, topic string, dialer *kafka.Dialer) *PriceEventPublisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		Dialer:       dialer,
		BatchTimeout: 10 * time.Millisecond,
	})
	log.Printf("✅ Kafka publisher для топика %s готов", topic)
	return &PriceEventPublisher{writer: writer}
}

// Publish отправляет событие. Ошибка Kafka логируется, но не ломает
// основную операцию: события вторичны по отношению к данным в БД.
func (p *PriceEventPublisher) Publish(ctx context.Context, event PriceEvent) {
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️ Kafka: ошибка сериализации события %s: %v", event.Type, err)
		return
	}

	// Ключ по товару, чтобы события одного товара шли в одну партицию
	key := []byte(event.Type)
	if event.ProductID != 0 {
		key = []byte(fmt.Sprintf("product-%d", event.ProductID))
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: data}); err != nil {
		log.Printf("⚠️ Kafka: не удалось отправить событие %s: %v", event.Type, err)
	}
}

// Close закрывает writer
func (p *PriceEventPublisher) Close() error {
	return p.writer.Close()
}
