package subscription

import (
	"context"
	"errors"
	"testing"

	"github.com/gameday-relay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// --- mocks ---

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, s *domain.Subscriber) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockStore) Delete(ctx context.Context, psid string) error {
	return m.Called(ctx, psid).Error(0)
}

type mockSender struct{ mock.Mock }

func (m *mockSender) SendText(ctx context.Context, recipientID, text string) error {
	return m.Called(ctx, recipientID, text).Error(0)
}

func newSvc(store *mockStore, sender *mockSender) Service {
	return NewService(store, sender, zap.NewNop().Sugar())
}

// --- tests ---

func TestHandleMessage_Subscribe(t *testing.T) {
	store := &mockStore{}
	sender := &mockSender{}
	store.On("Put", mock.Anything, &domain.Subscriber{PSID: "u1"}).Return(nil)
	sender.On("SendText", mock.Anything, "u1", replySubscribed).Return(nil)

	err := newSvc(store, sender).HandleMessage(context.Background(), "u1", "notify me please")

	assert.NoError(t, err)
	store.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestHandleMessage_RepeatedSubscribeIsIdempotent(t *testing.T) {
	store := &mockStore{}
	sender := &mockSender{}
	// Both messages upsert the same key; the store never grows a second
	// record for the sender.
	store.On("Put", mock.Anything, &domain.Subscriber{PSID: "u1"}).Return(nil).Times(2)
	sender.On("SendText", mock.Anything, "u1", replySubscribed).Return(nil).Times(2)

	svc := newSvc(store, sender)
	assert.NoError(t, svc.HandleMessage(context.Background(), "u1", "hi"))
	assert.NoError(t, svc.HandleMessage(context.Background(), "u1", "hello again"))
	store.AssertExpectations(t)
}

func TestHandleMessage_Stop(t *testing.T) {
	store := &mockStore{}
	sender := &mockSender{}
	store.On("Delete", mock.Anything, "u1").Return(nil)
	sender.On("SendText", mock.Anything, "u1", replyUnsubscribed).Return(nil)

	err := newSvc(store, sender).HandleMessage(context.Background(), "u1", "stop")

	assert.NoError(t, err)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	sender.AssertExpectations(t)
}

func TestHandleMessage_StopWithoutRecordIsNoOp(t *testing.T) {
	store := &mockStore{}
	sender := &mockSender{}
	// DeleteItem on an absent key succeeds, so the sender still gets a
	// confirmation rather than an error.
	store.On("Delete", mock.Anything, "ghost").Return(nil)
	sender.On("SendText", mock.Anything, "ghost", replyUnsubscribed).Return(nil)

	err := newSvc(store, sender).HandleMessage(context.Background(), "ghost", "stop")

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestHandleMessage_StopIsCaseSensitive(t *testing.T) {
	store := &mockStore{}
	sender := &mockSender{}
	store.On("Put", mock.Anything, &domain.Subscriber{PSID: "u1"}).Return(nil)
	sender.On("SendText", mock.Anything, "u1", replySubscribed).Return(nil)

	err := newSvc(store, sender).HandleMessage(context.Background(), "u1", "Stop")

	assert.NoError(t, err)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestHandleMessage_EmptyTextIgnored(t *testing.T) {
	store := &mockStore{}
	sender := &mockSender{}

	err := newSvc(store, sender).HandleMessage(context.Background(), "u1", "")

	assert.NoError(t, err)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessage_PutFailure(t *testing.T) {
	store := &mockStore{}
	sender := &mockSender{}
	store.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))
	sender.On("SendText", mock.Anything, "u1", replyError).Return(nil)

	err := newSvc(store, sender).HandleMessage(context.Background(), "u1", "hi")

	assert.Error(t, err)
	sender.AssertExpectations(t)
}

func TestHandleMessage_DeleteFailure(t *testing.T) {
	store := &mockStore{}
	sender := &mockSender{}
	store.On("Delete", mock.Anything, "u1").Return(errors.New("dynamo down"))
	sender.On("SendText", mock.Anything, "u1", replyError).Return(nil)

	err := newSvc(store, sender).HandleMessage(context.Background(), "u1", "stop")

	assert.Error(t, err)
	sender.AssertExpectations(t)
}

func TestHandleMessage_ReplyFailureDoesNotFailCommand(t *testing.T) {
	store := &mockStore{}
	sender := &mockSender{}
	store.On("Put", mock.Anything, mock.Anything).Return(nil)
	sender.On("SendText", mock.Anything, "u1", replySubscribed).Return(errors.New("send API down"))

	err := newSvc(store, sender).HandleMessage(context.Background(), "u1", "hi")

	assert.NoError(t, err)
	store.AssertExpectations(t)
}
