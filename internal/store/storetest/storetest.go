// Package storetest is the conformance suite for store backends. Both the
// memstore and sqlite packages run every test here against a fresh instance,
// which is what keeps the two backends behaviorally interchangeable.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitten/memento/internal/store"
)

// Factory builds a fresh, empty backend for one test.
type Factory func(t *testing.T) *store.Store

// Run exercises the full store contract against the backend the factory
// produces.
func Run(t *testing.T, factory Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, factory) })
	t.Run("Memories", func(t *testing.T) { testMemories(t, factory) })
	t.Run("FamilyMembers", func(t *testing.T) { testFamilyMembers(t, factory) })
	t.Run("Sessions", func(t *testing.T) { testSessions(t, factory) })
}

func testUsers(t *testing.T, factory Factory) {
	t.Run("CreateAssignsFreshIDs", func(t *testing.T) {
		s := factory(t)
		a, err := s.Users.Create("alice", "hash-a", "Alice A", "1990-01-01")
		require.NoError(t, err)
		b, err := s.Users.Create("bob", "hash-b", "Bob B", "1985-06-15")
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, "alice", a.Username)
		assert.Equal(t, "hash-a", a.Password)
	})

	t.Run("GetByIDAbsent", func(t *testing.T) {
		s := factory(t)
		u, err := s.Users.GetByID(42)
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("GetByUsernameExactMatch", func(t *testing.T) {
		s := factory(t)
		_, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)

		u, err := s.Users.GetByUsername("alice")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "Alice A", u.FullName)

		// Case-sensitive: "Alice" is a different username.
		miss, err := s.Users.GetByUsername("Alice")
		require.NoError(t, err)
		assert.Nil(t, miss)
	})

	t.Run("CreateRejectsDuplicateUsername", func(t *testing.T) {
		s := factory(t)
		_, err := s.Users.Create("alice", "h1", "Alice One", "1990-01-01")
		require.NoError(t, err)
		_, err = s.Users.Create("alice", "h2", "Alice Two", "1991-01-01")
		assert.ErrorIs(t, err, store.ErrUsernameTaken)
	})

	t.Run("SearchMatchesUsernameAndFullName", func(t *testing.T) {
		s := factory(t)
		_, err := s.Users.Create("alice", "h", "Alice Anderson", "1990-01-01")
		require.NoError(t, err)
		_, err = s.Users.Create("bob", "h", "Bob Alicework", "1990-01-01")
		require.NoError(t, err)
		_, err = s.Users.Create("carol", "h", "Carol C", "1990-01-01")
		require.NoError(t, err)

		got, err := s.Users.Search("alice", 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "alice", got[0].Username)
		assert.Equal(t, "bob", got[1].Username)

		limited, err := s.Users.Search("alice", 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		unbounded, err := s.Users.Search("alice", 0)
		require.NoError(t, err)
		assert.Len(t, unbounded, 2, "non-positive limit means no limit")
	})
}

func testMemories(t *testing.T, factory Factory) {
	t.Run("CreateThenListExactlyOnce", func(t *testing.T) {
		s := factory(t)
		u, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)

		m, err := s.Memories.Create(u.ID, 1, "First day", "It was sunny.", nil)
		require.NoError(t, err)
		assert.NotZero(t, m.ID)
		assert.False(t, m.CreatedAt.IsZero())
		assert.Nil(t, m.ImageURL)

		list, err := s.Memories.ListByUser(u.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, m.ID, list[0].ID)
	})

	t.Run("CategoriesPartitionUserMemories", func(t *testing.T) {
		s := factory(t)
		u, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)

		for i, cat := range []int64{1, 1, 2, 3} {
			_, err := s.Memories.Create(u.ID, cat, "t", "c", nil)
			require.NoError(t, err, "memory %d", i)
		}

		all, err := s.Memories.ListByUser(u.ID)
		require.NoError(t, err)
		require.Len(t, all, 4)

		seen := map[int64]bool{}
		total := 0
		for _, cat := range []int64{1, 2, 3} {
			ms, err := s.Memories.ListByUserAndCategory(u.ID, cat)
			require.NoError(t, err)
			for _, m := range ms {
				assert.Equal(t, cat, m.CategoryID)
				assert.False(t, seen[m.ID], "memory %d appeared in two categories", m.ID)
				seen[m.ID] = true
			}
			total += len(ms)
		}
		assert.Equal(t, len(all), total)
	})

	t.Run("ListByCategoryAppliesBothFilters", func(t *testing.T) {
		s := factory(t)
		alice, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)
		bob, err := s.Users.Create("bob", "h", "Bob B", "1990-01-01")
		require.NoError(t, err)

		_, err = s.Memories.Create(alice.ID, 1, "mine", "c", nil)
		require.NoError(t, err)
		_, err = s.Memories.Create(bob.ID, 1, "not mine", "c", nil)
		require.NoError(t, err)
		_, err = s.Memories.Create(alice.ID, 2, "other category", "c", nil)
		require.NoError(t, err)

		ms, err := s.Memories.ListByUserAndCategory(alice.ID, 1)
		require.NoError(t, err)
		require.Len(t, ms, 1)
		assert.Equal(t, "mine", ms[0].Title)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		s := factory(t)
		u, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)
		m, err := s.Memories.Create(u.ID, 1, "t", "c", nil)
		require.NoError(t, err)

		require.NoError(t, s.Memories.Delete(m.ID))
		require.NoError(t, s.Memories.Delete(m.ID))
		require.NoError(t, s.Memories.Delete(99999))

		list, err := s.Memories.ListByUser(u.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("SharedFeedIsUnscopedNewestFirst", func(t *testing.T) {
		s := factory(t)
		alice, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)
		bob, err := s.Users.Create("bob", "h", "Bob B", "1990-01-01")
		require.NoError(t, err)

		first, err := s.Memories.Create(alice.ID, 1, "first", "c", nil)
		require.NoError(t, err)
		second, err := s.Memories.Create(bob.ID, 2, "second", "c", nil)
		require.NoError(t, err)

		feed, err := s.Memories.ListShared(10)
		require.NoError(t, err)
		require.Len(t, feed, 2)
		assert.Equal(t, second.ID, feed[0].ID)
		assert.Equal(t, first.ID, feed[1].ID)

		limited, err := s.Memories.ListShared(1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		unbounded, err := s.Memories.ListShared(0)
		require.NoError(t, err)
		assert.Len(t, unbounded, 2, "non-positive limit means no limit")
	})

	t.Run("ImageURLRoundTrips", func(t *testing.T) {
		s := factory(t)
		u, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)

		img := "data:image/jpeg;base64,/9j/4AAQ"
		m, err := s.Memories.Create(u.ID, 1, "t", "c", &img)
		require.NoError(t, err)
		require.NotNil(t, m.ImageURL)
		assert.Equal(t, img, *m.ImageURL)
	})
}

func testFamilyMembers(t *testing.T, factory Factory) {
	t.Run("CreateUsesDefaults", func(t *testing.T) {
		s := factory(t)
		u, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)

		m, err := s.FamilyMembers.Create(u.ID, "Grandma June", "1940-03-20")
		require.NoError(t, err)
		assert.Equal(t, 100, m.X)
		assert.Equal(t, 100, m.Y)
		assert.Nil(t, m.PlatformUserID)
		assert.Equal(t, u.ID, m.UserID)
	})

	t.Run("UpdatePositionPersists", func(t *testing.T) {
		s := factory(t)
		u, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)
		m, err := s.FamilyMembers.Create(u.ID, "Grandma June", "1940-03-20")
		require.NoError(t, err)

		require.NoError(t, s.FamilyMembers.UpdatePosition(m.ID, 240, 355))

		got, err := s.FamilyMembers.GetByID(m.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 240, got.X)
		assert.Equal(t, 355, got.Y)
	})

	t.Run("UpdatePositionAbsentIsSilent", func(t *testing.T) {
		s := factory(t)
		require.NoError(t, s.FamilyMembers.UpdatePosition(12345, 1, 2))

		// No side effects: the store is still empty.
		got, err := s.FamilyMembers.GetByID(12345)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("LinkToUserSetsWeakReference", func(t *testing.T) {
		s := factory(t)
		alice, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)
		bob, err := s.Users.Create("bob", "h", "Bob B", "1990-01-01")
		require.NoError(t, err)
		m, err := s.FamilyMembers.Create(alice.ID, "Bob", "1960-01-01")
		require.NoError(t, err)

		require.NoError(t, s.FamilyMembers.LinkToUser(m.ID, bob.ID))

		got, err := s.FamilyMembers.GetByID(m.ID)
		require.NoError(t, err)
		require.NotNil(t, got.PlatformUserID)
		assert.Equal(t, bob.ID, *got.PlatformUserID)
	})

	t.Run("LinkToUserAbsentMemberIsSilent", func(t *testing.T) {
		s := factory(t)
		u, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)
		require.NoError(t, s.FamilyMembers.LinkToUser(9999, u.ID))
	})

	t.Run("ListScopedToOwner", func(t *testing.T) {
		s := factory(t)
		alice, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)
		bob, err := s.Users.Create("bob", "h", "Bob B", "1990-01-01")
		require.NoError(t, err)

		_, err = s.FamilyMembers.Create(alice.ID, "Mum", "1955-01-01")
		require.NoError(t, err)
		_, err = s.FamilyMembers.Create(bob.ID, "Dad", "1950-01-01")
		require.NoError(t, err)

		ms, err := s.FamilyMembers.ListByUser(alice.ID)
		require.NoError(t, err)
		require.Len(t, ms, 1)
		assert.Equal(t, "Mum", ms[0].Name)
	})
}

func testSessions(t *testing.T, factory Factory) {
	t.Run("CreateAndResolveToken", func(t *testing.T) {
		s := factory(t)
		u, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)

		sess, err := s.Sessions.Create(u.ID)
		require.NoError(t, err)
		assert.Len(t, sess.Token, 64)

		got, err := s.Sessions.GetByToken(sess.Token)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.UserID)
	})

	t.Run("UnknownTokenIsAbsent", func(t *testing.T) {
		s := factory(t)
		got, err := s.Sessions.GetByToken("nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("DeleteInvalidatesToken", func(t *testing.T) {
		s := factory(t)
		u, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
		require.NoError(t, err)
		sess, err := s.Sessions.Create(u.ID)
		require.NoError(t, err)

		require.NoError(t, s.Sessions.Delete(sess.ID))

		got, err := s.Sessions.GetByToken(sess.Token)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
