package messaging

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memMessages struct {
	mu      sync.Mutex
	rows    []*domain.Message
	creates int
}

func (m *memMessages) Create(_ context.Context, msg *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	msg.CreatedAt = time.Now().Add(time.Duration(len(m.rows)) * time.Millisecond)
	cp := *msg
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memMessages) GetByID(_ context.Context, id uuid.UUID) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

func (m *memMessages) ListByRecipient(_ context.Context, recipientID uuid.UUID) ([]*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Message
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].RecipientID == recipientID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memMessages) ListThread(_ context.Context, threadID, participantID uuid.UUID) ([]*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Message
	for _, r := range m.rows {
		if r.ThreadID == threadID && (r.SenderID == participantID || r.RecipientID == participantID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memMessages) MarkRead(_ context.Context, id, recipientID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id && r.RecipientID == recipientID {
			r.Read = true
			return nil
		}
	}
	return domain.ErrMessageNotFound
}

func (m *memMessages) Delete(_ context.Context, id, recipientID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == id && r.RecipientID == recipientID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrMessageNotFound
}

func (m *memMessages) CountUnread(_ context.Context, recipientID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rows {
		if r.RecipientID == recipientID && !r.Read {
			n++
		}
	}
	return n, nil
}

type fakeProfiles struct {
	repository.ProfileRepository
	names   map[uuid.UUID]string
	lookups int
}

func (f *fakeProfiles) GetSummary(_ context.Context, id uuid.UUID) (*domain.ProfileSummary, error) {
	f.lookups++
	name, ok := f.names[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &domain.ProfileSummary{ID: id, FullName: name}, nil
}

// memBus delivers published events synchronously to subscribers.
type memBus struct {
	mu        sync.Mutex
	published []domain.MessageEvent
	subs      map[uuid.UUID][]chan domain.MessageEvent
}

func newMemBus() *memBus {
	return &memBus{subs: map[uuid.UUID][]chan domain.MessageEvent{}}
}

func (b *memBus) Publish(_ context.Context, evt domain.MessageEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, evt)
	for _, ch := range b.subs[evt.RecipientID] {
		ch <- evt
	}
	return nil
}

func (b *memBus) Subscribe(_ context.Context, recipientID uuid.UUID) (<-chan domain.MessageEvent, func() error, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan domain.MessageEvent, 16)
	b.subs[recipientID] = append(b.subs[recipientID], ch)
	return ch, func() error { return nil }, nil
}

func newTestUseCase() (*MessagingUseCase, *memMessages, *fakeProfiles, *memBus) {
	msgs := &memMessages{}
	profiles := &fakeProfiles{names: map[uuid.UUID]string{}}
	bus := newMemBus()
	return NewMessagingUseCase(msgs, profiles, bus, zerolog.Nop()), msgs, profiles, bus
}

func TestSendRejectsBlankBodyWithoutWriting(t *testing.T) {
	uc, msgs, _, bus := newTestUseCase()

	for _, body := range []string{"", "   ", "\n\t"} {
		_, err := uc.Send(context.Background(), uuid.New(), &SendRequest{RecipientID: uuid.New(), Message: body})
		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	}
	assert.Zero(t, msgs.creates)
	assert.Empty(t, bus.published)
}

func TestSendStoresUnreadMessage(t *testing.T) {
	uc, msgs, _, bus := newTestUseCase()
	sender, recipient := uuid.New(), uuid.New()

	msg, err := uc.Send(context.Background(), sender, &SendRequest{RecipientID: recipient, Message: "hi"})
	require.NoError(t, err)
	assert.False(t, msg.Read)
	assert.Equal(t, domain.DefaultSubject, msg.Subject)
	assert.Equal(t, msg.ID, msg.ThreadID)
	assert.Equal(t, 1, msgs.creates)

	require.Len(t, bus.published, 1)
	assert.Equal(t, domain.MessageInserted, bus.published[0].Type)
	assert.Equal(t, recipient, bus.published[0].RecipientID)
}

func TestInboxLooksUpEachSender(t *testing.T) {
	uc, _, profiles, _ := newTestUseCase()
	ctx := context.Background()
	me, known, ghost := uuid.New(), uuid.New(), uuid.New()
	profiles.names[known] = "Ada"

	_, err := uc.Send(ctx, known, &SendRequest{RecipientID: me, Subject: "first", Message: "a"})
	require.NoError(t, err)
	_, err = uc.Send(ctx, ghost, &SendRequest{RecipientID: me, Subject: "second", Message: "b"})
	require.NoError(t, err)
	_, err = uc.Send(ctx, known, &SendRequest{RecipientID: uuid.New(), Message: "not mine"})
	require.NoError(t, err)

	items, err := uc.Inbox(ctx, me)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Subject)
	assert.Equal(t, domain.UnknownSender, items[0].Sender.FullName)
	assert.Equal(t, "Ada", items[1].Sender.FullName)
	assert.Equal(t, 2, profiles.lookups)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx := context.Background()
	me := uuid.New()

	msg, err := uc.Send(ctx, uuid.New(), &SendRequest{RecipientID: me, Message: "hi"})
	require.NoError(t, err)

	require.NoError(t, uc.MarkRead(ctx, me, msg.ID))
	require.NoError(t, uc.MarkRead(ctx, me, msg.ID))

	count, err := uc.UnreadCount(ctx, me)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = uc.MarkRead(ctx, uuid.New(), msg.ID)
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)
}

func TestReplyKeepsThreadAndPrefixesOnce(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	first, err := uc.Send(ctx, alice, &SendRequest{RecipientID: bob, Subject: "Hackathon", Message: "join?"})
	require.NoError(t, err)

	reply, err := uc.Reply(ctx, bob, first.ID, &ReplyRequest{Message: "sure"})
	require.NoError(t, err)
	assert.Equal(t, "Re: Hackathon", reply.Subject)
	assert.Equal(t, alice, reply.RecipientID)
	assert.Equal(t, bob, reply.SenderID)
	assert.Equal(t, first.ThreadID, reply.ThreadID)

	again, err := uc.Reply(ctx, alice, reply.ID, &ReplyRequest{Message: "great"})
	require.NoError(t, err)
	assert.Equal(t, "Re: Hackathon", again.Subject)

	thread, err := uc.Thread(ctx, bob, first.ThreadID)
	require.NoError(t, err)
	assert.Len(t, thread, 3)

	_, err = uc.Reply(ctx, alice, first.ID, &ReplyRequest{Message: "self"})
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)

	_, err = uc.Thread(ctx, uuid.New(), first.ThreadID)
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)
}

func TestDeleteOnlyByRecipient(t *testing.T) {
	uc, _, _, bus := newTestUseCase()
	ctx := context.Background()
	me := uuid.New()

	msg, err := uc.Send(ctx, uuid.New(), &SendRequest{RecipientID: me, Message: "hi"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, uuid.New(), msg.ID), domain.ErrMessageNotFound)
	require.NoError(t, uc.Delete(ctx, me, msg.ID))
	assert.Equal(t, domain.MessageDeleted, bus.published[len(bus.published)-1].Type)
}

func TestWatchUnreadRecomputesOnEveryEvent(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	me := uuid.New()

	counts, err := uc.WatchUnread(ctx, me)
	require.NoError(t, err)

	next := func() int {
		select {
		case c := <-counts:
			return c
		case <-time.After(2 * time.Second):
			t.Fatal("no count emitted")
			return -1
		}
	}

	assert.Equal(t, 0, next())

	msg, err := uc.Send(ctx, uuid.New(), &SendRequest{RecipientID: me, Message: "one"})
	require.NoError(t, err)
	assert.Equal(t, 1, next())

	_, err = uc.Send(ctx, uuid.New(), &SendRequest{RecipientID: me, Message: "two"})
	require.NoError(t, err)
	assert.Equal(t, 2, next())

	require.NoError(t, uc.MarkRead(ctx, me, msg.ID))
	assert.Equal(t, 1, next())

	cancel()
	select {
	case _, ok := <-counts:
		if ok {
			_, ok = <-counts
		}
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("stream not closed")
	}
}
