package sqs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockConsumerClient is a mock implementation of ConsumerAPI for testing.
type mockConsumerClient struct {
	receiveFunc func(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	deleteFunc  func(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	deleted     []string
}

func (m *mockConsumerClient) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	if m.receiveFunc != nil {
		return m.receiveFunc(ctx, params, optFns...)
	}
	return &sqs.ReceiveMessageOutput{}, nil
}

func (m *mockConsumerClient) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	if params.ReceiptHandle != nil {
		m.deleted = append(m.deleted, *params.ReceiptHandle)
	}
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, params, optFns...)
	}
	return &sqs.DeleteMessageOutput{}, nil
}

func TestConsumer_ReceiveMessages(t *testing.T) {
	queueURL := "https://sqs.us-east-1.amazonaws.com/123456789/catalog-events"

	t.Run("valid message is processed and deleted", func(t *testing.T) {
		body := `{"action":"created","product_id":"000005","name":"Laser Kit"}`
		mockClient := &mockConsumerClient{
			receiveFunc: func(_ context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
				return &sqs.ReceiveMessageOutput{
					Messages: []types.Message{{
						Body:          aws.String(body),
						ReceiptHandle: aws.String("receipt-1"),
					}},
				}, nil
			},
		}

		consumer := NewConsumer(mockClient, queueURL)
		err := consumer.receiveMessages(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"receipt-1"}, mockClient.deleted)
	})

	t.Run("malformed message is not deleted", func(t *testing.T) {
		mockClient := &mockConsumerClient{
			receiveFunc: func(_ context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
				return &sqs.ReceiveMessageOutput{
					Messages: []types.Message{{
						Body:          aws.String("not json"),
						ReceiptHandle: aws.String("receipt-2"),
					}},
				}, nil
			},
		}

		consumer := NewConsumer(mockClient, queueURL)
		err := consumer.receiveMessages(context.Background())

		require.NoError(t, err)
		assert.Empty(t, mockClient.deleted)
	})

	t.Run("receive error is returned", func(t *testing.T) {
		mockClient := &mockConsumerClient{
			receiveFunc: func(_ context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
				return nil, errors.New("queue unreachable")
			},
		}

		consumer := NewConsumer(mockClient, queueURL)
		err := consumer.receiveMessages(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to receive messages")
	})
}

func TestConsumer_StartBacksOffAfterReceiveError(t *testing.T) {
	calls := 0
	mockClient := &mockConsumerClient{
		receiveFunc: func(_ context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
			calls++
			return nil, errors.New("queue unreachable")
		},
	}

	consumer := NewConsumer(mockClient, "https://sqs.us-east-1.amazonaws.com/123456789/catalog-events")
	consumer.backoff = 250 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- consumer.Start(ctx)
	}()

	// Cancel while the consumer is waiting out the backoff; without it the
	// loop would have retried many times by now.
	time.Sleep(100 * time.Millisecond)
	cancel()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestConsumer_StartStopsOnContextCancel(t *testing.T) {
	mockClient := &mockConsumerClient{}
	consumer := NewConsumer(mockClient, "https://sqs.us-east-1.amazonaws.com/123456789/catalog-events")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := consumer.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
