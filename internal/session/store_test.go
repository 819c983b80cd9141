package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnjaliSharma2212/portfolio-app/internal/contact"
)

func TestUpdateAndGet(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	_, ok, err := s.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)

	out, err := s.Update("a", func(cur contact.Session) (contact.Session, error) {
		assert.Equal(t, "a", cur.ID)
		cur.State = contact.StateFailed
		cur.Form.Name = "Ana"
		return cur, nil
	})
	require.NoError(t, err)
	assert.Equal(t, contact.StateFailed, out.State)

	got, ok, err := s.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ana", got.Form.Name)
}

func TestUpdateErrorWritesNothing(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = s.Update("a", func(cur contact.Session) (contact.Session, error) {
		cur.State = contact.StateSubmitting
		return cur, boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok, err := s.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateSerializes(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update("a", func(cur contact.Session) (contact.Session, error) {
				cur.Form.Message += "x"
				return cur, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _, err := s.Get("a")
	require.NoError(t, err)
	assert.Len(t, got.Form.Message, 50)
}

func TestCountByStateAndSweep(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	old := time.Now().Add(-48 * time.Hour)
	put := func(id string, st contact.State, at time.Time) {
		_, err := s.Update(id, func(cur contact.Session) (contact.Session, error) {
			cur.State = st
			cur.UpdatedAt = at
			return cur, nil
		})
		require.NoError(t, err)
	}
	put("idle-old", contact.StateIdle, old)
	put("failed-new", contact.StateFailed, time.Now())
	put("busy-old", contact.StateSubmitting, old)
	put("done-old", contact.StateSucceeded, old)

	counts, err := s.CountByState()
	require.NoError(t, err)
	assert.Equal(t, 1, counts[contact.StateIdle])
	assert.Equal(t, 1, counts[contact.StateSubmitting])

	n, err := s.Sweep(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok, _ := s.Get("busy-old")
	assert.True(t, ok)
	_, ok, _ = s.Get("idle-old")
	assert.False(t, ok)

	require.NoError(t, s.Delete("failed-new"))
	_, ok, _ = s.Get("failed-new")
	assert.False(t, ok)
}

func TestIDs(t *testing.T) {
	id := NewID()
	assert.True(t, ValidID(id))
	assert.False(t, ValidID("../../etc"))
}
