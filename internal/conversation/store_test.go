package conversation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AppendPreservesOrder(t *testing.T) {
	store := NewStore()

	store.Append(NewMessage(RoleUser, "What's the weather like in Tokyo?"))
	store.Append(NewMessage(RoleAssistant, "It is 21°C and sunny in Tokyo."))
	store.Append(Message{Role: RoleUser, Content: "Thanks"}, Message{Role: RoleAssistant, Content: "You're welcome"})

	all := store.All()
	require.Len(t, all, 4)
	assert.Equal(t, []string{RoleUser, RoleAssistant, RoleUser, RoleAssistant},
		[]string{all[0].Role, all[1].Role, all[2].Role, all[3].Role})
	assert.Equal(t, "Thanks", all[2].Content)
	assert.Equal(t, 4, store.Len())
}

func TestStore_AppendFillsIdentity(t *testing.T) {
	store := NewStore()
	store.Append(Message{Role: RoleUser, Content: "hi"})

	msg := store.All()[0]
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.Append(Message{ID: "fixed", Role: RoleAssistant, Content: "hello", CreatedAt: fixed})
	msg = store.All()[1]
	assert.Equal(t, "fixed", msg.ID)
	assert.Equal(t, fixed, msg.CreatedAt)
}

func TestStore_AllReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Append(NewMessage(RoleUser, "original"))

	snapshot := store.All()
	snapshot[0].Content = "mutated"

	assert.Equal(t, "original", store.All()[0].Content)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store := NewStore()
	store.Clear()
	assert.Equal(t, 0, store.Len())

	store.Append(NewMessage(RoleUser, "a"), NewMessage(RoleAssistant, "b"))
	store.Clear()
	assert.Empty(t, store.All())

	store.Clear()
	assert.Equal(t, 0, store.Len())

	store.Append(NewMessage(RoleUser, "fresh"))
	require.Len(t, store.All(), 1)
	assert.Equal(t, "fresh", store.All()[0].Content)
}

func TestStore_ConcurrentReadersDuringAppend(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Append(NewMessage(RoleUser, "q"), NewMessage(RoleAssistant, "a"))
		}()
		go func() {
			defer wg.Done()
			// Pairs are appended atomically, so a reader never sees an odd count.
			assert.Equal(t, 0, len(store.All())%2)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, store.Len())
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	a := NewMessage(RoleUser, "x")
	b := NewMessage(RoleUser, "x")
	assert.NotEqual(t, a.ID, b.ID)
}
