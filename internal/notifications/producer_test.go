package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"glowbook/internal/bookings"
	"glowbook/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking() *bookings.Booking {
	return &bookings.Booking{
		ID:            uuid.New(),
		BookingNumber: "BK-2026-0042",
		Status:        bookings.StatusConfirmed,
		GuestName:     "Amara Osei",
		GuestEmail:    "amara@example.com",
		GuestPhone:    "+4915201234567",
		SlotDate:      "2026-09-14",
		SlotTime:      "14:00",
		TotalAmount:   6500,
		DepositAmount: 3250,
	}
}

func newMockedProducer(t *testing.T) (*kafkaProducer, *mocks.SyncProducer) {
	t.Helper()

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	mock := mocks.NewSyncProducer(t, config)

	return &kafkaProducer{
		producer: mock,
		config:   DefaultKafkaProducerConfig(),
		log:      logger.GetDefault(),
	}, mock
}

func TestPublishBookingEvent(t *testing.T) {
	p, mock := newMockedProducer(t)
	booking := sampleBooking()
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event BookingEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		assert.Equal(t, "booking.confirmed", event.EventType)
		assert.Equal(t, booking.ID, event.BookingID)
		assert.Equal(t, "BK-2026-0042", event.BookingNumber)
		assert.Equal(t, bookings.StatusConfirmed, event.Status)
		assert.Equal(t, "amara@example.com", event.GuestEmail)
		return nil
	})

	err := p.PublishBookingEvent(context.Background(), "booking.confirmed", booking)
	require.NoError(t, err)
	require.NoError(t, mock.Close())
}

func TestPublishBookingEvent_BrokerFailure(t *testing.T) {
	p, mock := newMockedProducer(t)
	mock.ExpectSendMessageAndFail(sarama.ErrBrokerNotAvailable)

	err := p.PublishBookingEvent(context.Background(), "booking.created", sampleBooking())
	assert.Error(t, err)
	require.NoError(t, mock.Close())
}

func TestBookingEventPartitionKeyIsStable(t *testing.T) {
	booking := sampleBooking()

	first := NewBookingEvent("booking.created", booking)
	time.Sleep(time.Millisecond)
	second := NewBookingEvent("booking.cancelled", booking)

	assert.Equal(t, first.PartitionKey(), second.PartitionKey())
	assert.NotEqual(t, first.EventID, second.EventID)
}
