// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackedMap(t *testing.T) {
	src := map[string]int{"foo": 1}
	sm := New[string, int](func(key string) (int, bool, error) {
		v, ok := src[key]
		return v, ok, nil
	})

	assert.Equal(t, 0, sm.Push())

	v, ok, err := sm.Get("foo")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	sm.Put("foo", 2)
	sm.Put("bar", 3)

	depth := sm.Push()
	assert.Equal(t, 1, depth)
	sm.Put("foo", 4)
	sm.Put("foo", 5)

	v, _, _ = sm.Get("foo")
	assert.Equal(t, 5, v)

	sm.PopTo(depth)
	v, _, _ = sm.Get("foo")
	assert.Equal(t, 2, v, "inner level must be reverted as a whole")
	v, _, _ = sm.Get("bar")
	assert.Equal(t, 3, v)

	sm.PopTo(0)
	v, ok, _ = sm.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 1, v, "falls back to source")
	_, ok, _ = sm.Get("bar")
	assert.False(t, ok)
	assert.Equal(t, 0, sm.Depth())
}

func TestStackedMapJournal(t *testing.T) {
	sm := New[string, int](func(string) (int, bool, error) { return 0, false, nil })
	sm.Push()
	sm.Put("a", 1)
	sm.Push()
	sm.Put("b", 2)
	sm.Put("a", 3)

	var keys []string
	var values []int
	sm.Journal(func(k string, v int) bool {
		keys = append(keys, k)
		values = append(values, v)
		return true
	})
	assert.Equal(t, []string{"a", "b", "a"}, keys)
	assert.Equal(t, []int{1, 2, 3}, values)

	count := 0
	sm.Journal(func(string, int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestStackedMapSourceError(t *testing.T) {
	boom := errors.New("boom")
	sm := New[string, int](func(string) (int, bool, error) { return 0, false, boom })
	sm.Push()

	_, _, err := sm.Get("x")
	assert.ErrorIs(t, err, boom)

	sm.Put("x", 1)
	v, ok, err := sm.Get("x")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
